package network

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MRamiBalles/Drifting/server/internal/engine"
)

// ErrUnknownCommand is returned for action types outside the protocol.
var ErrUnknownCommand = errors.New("unknown command")

// PlayerAction represents an incoming command from a client.
type PlayerAction struct {
	Type     string `json:"type"`                // "TOGGLE_TRAVEL", "SELECT", "TALK", "ATTACK", "INVITE", "DISMISS", "TRAVEL_TO"
	TargetID string `json:"target_id,omitempty"` // Character for SELECT, DISMISS and the interactions
	City     string `json:"city,omitempty"`      // Destination for TRAVEL_TO
}

// Dispatch applies action through ctrl and returns the resulting snapshot.
func Dispatch(ctrl Controller, action PlayerAction) (engine.Snapshot, error) {
	switch strings.ToUpper(action.Type) {
	case "TOGGLE_TRAVEL":
		return ctrl.ToggleTravel(), nil
	case "SELECT":
		return ctrl.Select(action.TargetID), nil
	case "TALK", "ATTACK", "INVITE":
		a, err := engine.ParseAction(action.Type)
		if err != nil {
			return engine.Snapshot{}, err
		}
		return ctrl.Interact(a, action.TargetID), nil
	case "DISMISS":
		return ctrl.Dismiss(action.TargetID), nil
	case "TRAVEL_TO":
		return ctrl.TravelTo(action.City), nil
	}
	return engine.Snapshot{}, fmt.Errorf("%q: %w", action.Type, ErrUnknownCommand)
}
