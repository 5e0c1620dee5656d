// Package party defines the player's traveling team.
// This package is PURE and must NOT import any infrastructure packages.
package party

import (
	"github.com/MRamiBalles/Drifting/server/internal/domain/character"
	"github.com/MRamiBalles/Drifting/server/internal/domain/item"
	"github.com/MRamiBalles/Drifting/server/internal/domain/rules"
)

// Team is the roster, its shared inventory and its travel progress.
// Members keep join order; the player is always Members[0].
type Team struct {
	Name       string                 `json:"name"`
	Members    []*character.Character `json:"members"`
	PlayerID   string                 `json:"player_id"`
	SelectedID string                 `json:"selected_id"`
	Capacity   int                    `json:"capacity"`

	Traveling bool           `json:"traveling"`
	Distance  float64        `json:"distance"`
	Items     item.Inventory `json:"items"`

	Location    string  `json:"location"`
	Destination string  `json:"destination,omitempty"`
	Remaining   float64 `json:"remaining"`
}

// NewTeam creates a resting team led by player, who starts selected.
func NewTeam(name string, player *character.Character, capacity int) *Team {
	return &Team{
		Name:       name,
		Members:    []*character.Character{player},
		PlayerID:   player.ID,
		SelectedID: player.ID,
		Capacity:   capacity,
	}
}

// Member returns the member with id, or nil.
func (t *Team) Member(id string) *character.Character {
	for _, m := range t.Members {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// Player returns the player character.
func (t *Team) Player() *character.Character {
	return t.Member(t.PlayerID)
}

// IsFull reports whether no one else can join.
func (t *Team) IsFull() bool {
	return len(t.Members) >= t.Capacity
}

// AddMember appends c. Returns false if the team is full or c is already
// a member.
func (t *Team) AddMember(c *character.Character) bool {
	if t.IsFull() || t.Member(c.ID) != nil {
		return false
	}
	t.Members = append(t.Members, c)
	return true
}

// RemoveMember drops the member with id. The player cannot leave.
func (t *Team) RemoveMember(id string) bool {
	if id == t.PlayerID {
		return false
	}
	for i, m := range t.Members {
		if m.ID == id {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			if t.SelectedID == id {
				t.SelectedID = t.PlayerID
			}
			return true
		}
	}
	return false
}

// Speed is derived from the slowest member.
func (t *Team) Speed() float64 {
	return rules.TeamSpeed(t.Members)
}

// Stats summarizes the roster's vitals.
type Stats struct {
	Size             int     `json:"size"`
	AverageSatiety   float64 `json:"average_satiety"`
	AverageHydration float64 `json:"average_hydration"`
	AverageStamina   float64 `json:"average_stamina"`
	AverageMood      float64 `json:"average_mood"`
}

// Stats averages vitals across members.
func (t *Team) Stats() Stats {
	s := Stats{Size: len(t.Members)}
	if s.Size == 0 {
		return s
	}
	for _, m := range t.Members {
		s.AverageSatiety += m.Vitals.Satiety
		s.AverageHydration += m.Vitals.Hydration
		s.AverageStamina += m.Vitals.Stamina
		s.AverageMood += m.Vitals.Mood
	}
	n := float64(s.Size)
	s.AverageSatiety /= n
	s.AverageHydration /= n
	s.AverageStamina /= n
	s.AverageMood /= n
	return s
}
