package engine

import (
	"math"
	"time"

	"github.com/MRamiBalles/Drifting/server/internal/domain/character"
	"github.com/MRamiBalles/Drifting/server/internal/domain/party"
	"github.com/MRamiBalles/Drifting/server/internal/events"
)

// HoursPerDay is the length of a game day.
const HoursPerDay = 24

// State is everything one simulation owns. The engine keeps nothing per
// simulation, so one engine can drive several states.
type State struct {
	Team      *party.Team
	Passersby []character.Passerby
	Log       *events.EventLog

	Now       time.Time
	Ticks     int64
	GameHours float64

	// LastTickAt is the boundary pause compensation measures from.
	LastTickAt time.Time
	// RestStartedAt is zero while traveling.
	RestStartedAt time.Time
}

// Day is the 1-based game day.
func (s *State) Day() int {
	return int(s.GameHours/HoursPerDay) + 1
}

// Hour is the hour within the current game day.
func (s *State) Hour() int {
	return int(math.Mod(s.GameHours, HoursPerDay))
}

// Passerby returns the present passerby with id, or nil.
func (s *State) Passerby(id string) *character.Passerby {
	for i := range s.Passersby {
		if s.Passersby[i].Character.ID == id {
			return &s.Passersby[i]
		}
	}
	return nil
}

// removePasserby drops the passerby with id and reports whether it was present.
func (s *State) removePasserby(id string) bool {
	for i, p := range s.Passersby {
		if p.Character.ID == id {
			s.Passersby = append(s.Passersby[:i], s.Passersby[i+1:]...)
			s.reconcileSelection()
			return true
		}
	}
	return false
}

// reconcileSelection falls back to the player once the selected character
// is neither a member nor on the road.
func (s *State) reconcileSelection() {
	id := s.Team.SelectedID
	if s.Team.Member(id) != nil || s.Passerby(id) != nil {
		return
	}
	s.Team.SelectedID = s.Team.PlayerID
}
