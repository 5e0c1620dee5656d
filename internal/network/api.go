package network

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MRamiBalles/Drifting/server/internal/infra/storage"
	"github.com/MRamiBalles/Drifting/server/internal/platform/logger"
)

// API is the plain HTTP surface next to the WebSocket: state reads,
// one-shot commands and the stored journal.
type API struct {
	controller Controller
	journal    storage.JournalRepository
	gameID     string
	logger     *logger.Logger
}

// NewAPI creates the handlers. journal may be nil when nothing is stored.
func NewAPI(ctrl Controller, journal storage.JournalRepository, gameID string, log *logger.Logger) *API {
	return &API{
		controller: ctrl,
		journal:    journal,
		gameID:     gameID,
		logger:     log,
	}
}

// HandleState returns the current snapshot.
// GET /api/state
func (a *API) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.jsonSuccess(w, a.controller.Snapshot())
}

// HandleMap returns the whole road network.
// GET /api/map
func (a *API) HandleMap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.jsonSuccess(w, a.controller.Map())
}

// HandleAction applies one PlayerAction and returns the new snapshot.
// POST /api/action
func (a *API) HandleAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var action PlayerAction
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		a.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	snap, err := Dispatch(a.controller, action)
	if errors.Is(err, ErrUnknownCommand) {
		a.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		a.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	a.logger.Event("API_ACTION", action.TargetID, action.Type)
	a.jsonSuccess(w, snap)
}

// HandleJournal lists the stored narration, optionally filtered by type.
// GET /api/journal?type=ARRIVAL
func (a *API) HandleJournal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if a.journal == nil {
		a.jsonError(w, "Journal storage disabled", http.StatusNotFound)
		return
	}

	var (
		entries []storage.JournalEntry
		err     error
	)
	if t := r.URL.Query().Get("type"); t != "" {
		entries, err = a.journal.ListByType(r.Context(), a.gameID, t)
	} else {
		entries, err = a.journal.ListByGame(r.Context(), a.gameID)
	}
	if err != nil {
		a.logger.Error("Journal query failed: " + err.Error())
		a.jsonError(w, "Journal unavailable", http.StatusInternalServerError)
		return
	}

	a.jsonSuccess(w, map[string]interface{}{
		"game_id": a.gameID,
		"total":   len(entries),
		"entries": entries,
	})
}

// RegisterRoutes sets up the API routes.
func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/state", a.HandleState)
	mux.HandleFunc("/api/map", a.HandleMap)
	mux.HandleFunc("/api/action", a.HandleAction)
	mux.HandleFunc("/api/journal", a.HandleJournal)
}

// jsonError sends an error response.
func (a *API) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// jsonSuccess sends a success response.
func (a *API) jsonSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(data)
}
