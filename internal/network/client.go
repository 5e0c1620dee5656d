package network

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Any browser front end may connect
	},
}

// Client is a middleman between one WebSocket connection and the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient creates a new WebSocket client and returns it.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// ServeWS upgrades the request and attaches the peer to hub.
func ServeWS(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.logger.Error("Failed to upgrade websocket connection: " + err.Error())
			hub.metrics.RecordWSError()
			return
		}

		client := NewClient(hub, conn)
		if !client.Register() {
			hub.logger.Warn("WebSocket hub stopped, refusing connection")
			conn.Close()
			return
		}

		// Allow collection of memory referenced by the caller by doing all work in
		// new goroutines.
		go client.WritePump()
		go client.ReadPump()
	}
}

// Register adds the client to the hub. It reports false when the hub has
// already stopped.
func (c *Client) Register() bool {
	select {
	case c.hub.register <- c:
		return true
	case <-c.hub.done:
		return false
	}
}

// ReadPump pumps commands from the websocket connection to the game.
func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("WebSocket read error: " + err.Error())
				c.hub.metrics.RecordWSError()
			}
			break
		}
		c.hub.metrics.RecordWSMessage(true)

		var action PlayerAction
		if err := json.Unmarshal(message, &action); err != nil {
			c.hub.logger.Error("Failed to parse PlayerAction from WebSocket. err: " + err.Error())
			c.reply(MsgTypeError, map[string]string{"error": "invalid json"})
			continue
		}

		c.handlePlayerAction(action)
	}
}

// handlePlayerAction applies the command. The resulting snapshot reaches
// every client through the session's publisher, so only failures are
// answered directly.
func (c *Client) handlePlayerAction(action PlayerAction) {
	if _, err := Dispatch(c.hub.controller, action); err != nil {
		c.hub.logger.Warn("Rejected PlayerAction: " + err.Error())
		c.reply(MsgTypeError, map[string]string{"error": err.Error()})
		return
	}
	c.hub.logger.Event("PLAYER_ACTION", action.TargetID, action.Type)
}

// reply queues a frame for this client only.
func (c *Client) reply(t MessageType, payload interface{}) {
	msg, err := encode(t, payload)
	if err != nil {
		return
	}
	// The hub closes send under its lock once the client is dropped.
	c.hub.mu.Lock()
	defer c.hub.mu.Unlock()
	if !c.hub.clients[c] {
		return
	}
	select {
	case c.send <- msg:
	default:
		c.hub.logger.Warn("Client send queue full, dropping reply")
	}
}

// WritePump pumps messages from the hub to the websocket connection, one
// frame per message.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.metrics.RecordWSError()
				return
			}
			c.hub.metrics.RecordWSMessage(false)
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
