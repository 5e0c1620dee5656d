package network

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MRamiBalles/Drifting/server/internal/domain/world"
	"github.com/MRamiBalles/Drifting/server/internal/engine"
	"github.com/MRamiBalles/Drifting/server/internal/infra/storage"
	"github.com/MRamiBalles/Drifting/server/internal/platform/clock"
	"github.com/MRamiBalles/Drifting/server/internal/platform/config"
	"github.com/MRamiBalles/Drifting/server/internal/platform/logger"
	"github.com/MRamiBalles/Drifting/server/internal/platform/metrics"
	"github.com/MRamiBalles/Drifting/server/internal/platform/random"
	"github.com/MRamiBalles/Drifting/server/internal/session"
)

type testGame struct {
	session *session.Session
	hub     *Hub
	server  *httptest.Server
	metrics *metrics.Collector
}

func newTestGame(t *testing.T, journal storage.JournalRepository) *testGame {
	t.Helper()
	m := metrics.New()
	eng, err := engine.NewEngine(config.Default(), engine.Deps{
		Clock:   clock.NewManual(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)),
		Random:  random.NewSequence(0.99),
		Logger:  logger.NewDiscard(),
		Metrics: m,
	})
	require.NoError(t, err)

	sess := session.New(eng, eng.NewState("Kael"), time.Second, logger.NewDiscard())
	hub := NewHub(sess, logger.NewDiscard(), m)
	sess.SetPublisher(hub)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", ServeWS(hub))
	NewAPI(sess, journal, "GAME_1", logger.NewDiscard()).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &testGame{session: sess, hub: hub, server: srv, metrics: m}
}

type frame struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func dial(t *testing.T, g *testGame) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(g.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func readState(t *testing.T, conn *websocket.Conn) engine.Snapshot {
	t.Helper()
	f := readFrame(t, conn)
	require.Equal(t, MsgTypeState, f.Type)
	var snap engine.Snapshot
	require.NoError(t, json.Unmarshal(f.Payload, &snap))
	return snap
}

func TestWebSocketStateOnConnect(t *testing.T) {
	g := newTestGame(t, nil)
	conn := dial(t, g)

	snap := readState(t, conn)

	assert.Equal(t, "Capital", snap.Location)
	assert.Len(t, snap.Team, 3)
	assert.Equal(t, "Kael", snap.Team[0].Name)
}

func TestWebSocketActionBroadcasts(t *testing.T) {
	g := newTestGame(t, nil)
	first := dial(t, g)
	readState(t, first)
	second := dial(t, g)
	readState(t, second)

	require.NoError(t, first.WriteJSON(PlayerAction{Type: "TRAVEL_TO", City: "Harbor"}))

	for _, conn := range []*websocket.Conn{first, second} {
		snap := readState(t, conn)
		assert.True(t, snap.Traveling)
		assert.Equal(t, "Harbor", snap.Destination)
	}
	assert.EqualValues(t, 1, atomic.LoadInt64(&g.metrics.WSMessagesIn))
}

func TestWebSocketUnknownCommand(t *testing.T) {
	g := newTestGame(t, nil)
	conn := dial(t, g)
	readState(t, conn)

	require.NoError(t, conn.WriteJSON(PlayerAction{Type: "DANCE"}))

	f := readFrame(t, conn)
	assert.Equal(t, MsgTypeError, f.Type)
	assert.Contains(t, string(f.Payload), "unknown command")
}

func TestDispatchRoutesEveryCommand(t *testing.T) {
	g := newTestGame(t, nil)
	companion := g.session.Snapshot().Team[1].ID

	snap, err := Dispatch(g.session, PlayerAction{Type: "select", TargetID: companion})
	require.NoError(t, err)
	assert.Equal(t, companion, snap.SelectedID)

	snap, err = Dispatch(g.session, PlayerAction{Type: "TOGGLE_TRAVEL"})
	require.NoError(t, err)
	assert.True(t, snap.Traveling)

	for _, typ := range []string{"TALK", "ATTACK", "INVITE"} {
		_, err = Dispatch(g.session, PlayerAction{Type: typ, TargetID: "nobody"})
		assert.NoError(t, err, typ)
	}

	snap, err = Dispatch(g.session, PlayerAction{Type: "DISMISS", TargetID: companion})
	require.NoError(t, err)
	assert.Len(t, snap.Team, 2)
	assert.Equal(t, snap.PlayerID, snap.SelectedID)

	_, err = Dispatch(g.session, PlayerAction{Type: "FLY"})
	assert.True(t, errors.Is(err, ErrUnknownCommand))
}

func TestAPIState(t *testing.T) {
	g := newTestGame(t, nil)

	resp, err := http.Get(g.server.URL + "/api/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var snap engine.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "Capital", snap.Location)
	assert.ElementsMatch(t, []string{"Harbor", "Farmland"}, snap.Neighbors)
}

func TestAPIMap(t *testing.T) {
	g := newTestGame(t, nil)

	resp, err := http.Get(g.server.URL + "/api/map")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var graph world.Graph
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&graph))
	require.Contains(t, graph.Cities, "Capital")
	assert.ElementsMatch(t, []string{"Harbor", "Farmland"}, graph.Cities["Capital"].Neighbors)
	assert.Len(t, graph.Cities, len(world.DefaultMap().Cities))
}

func TestAPIAction(t *testing.T) {
	g := newTestGame(t, nil)

	resp, err := http.Post(g.server.URL+"/api/action", "application/json", strings.NewReader(`{"type":"TRAVEL_TO","city":"Farmland"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var snap engine.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "Farmland", snap.Destination)

	bad, err := http.Post(g.server.URL+"/api/action", "application/json", strings.NewReader(`{"type":"FLY"}`))
	require.NoError(t, err)
	bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)

	wrong, err := http.Get(g.server.URL + "/api/action")
	require.NoError(t, err)
	wrong.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, wrong.StatusCode)
}

func TestAPIJournal(t *testing.T) {
	db, err := storage.InitSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()
	repo := storage.NewSQLiteJournalRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Append(ctx, storage.JournalEntry{ID: "a", GameID: "GAME_1", Timestamp: time.Now(), EventType: "ARRIVAL", ActorID: "SYSTEM", Message: "arrived"}))
	require.NoError(t, repo.Append(ctx, storage.JournalEntry{ID: "b", GameID: "GAME_1", Timestamp: time.Now(), EventType: "WORLD_EVENT", ActorID: "SYSTEM", Message: "berries"}))

	g := newTestGame(t, repo)

	resp, err := http.Get(g.server.URL + "/api/journal?type=WORLD_EVENT")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Total   int                    `json:"total"`
		Entries []storage.JournalEntry `json:"entries"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, "berries", body.Entries[0].Message)
}

func TestAPIJournalDisabled(t *testing.T) {
	g := newTestGame(t, nil)

	resp, err := http.Get(g.server.URL + "/api/journal")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHubRefusesClientsAfterShutdown(t *testing.T) {
	g := newTestGame(t, nil)
	hub := NewHub(g.session, logger.NewDiscard(), metrics.New())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	cancel()

	select {
	case <-hub.Done():
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	registered := make(chan bool, 1)
	go func() { registered <- NewClient(hub, nil).Register() }()
	select {
	case ok := <-registered:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Register blocked on a stopped hub")
	}

	srv := httptest.NewServer(ServeWS(hub))
	defer srv.Close()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestConnectedClientReleasedOnShutdown(t *testing.T) {
	g := newTestGame(t, nil)
	hub := NewHub(g.session, logger.NewDiscard(), metrics.New())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(ServeWS(hub))
	defer srv.Close()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	readState(t, conn)

	cancel()

	// The server side closes the connection once the hub drops the client.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, hub.ClientCount())
}
