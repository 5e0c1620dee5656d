package engine

import (
	"time"

	"github.com/MRamiBalles/Drifting/server/internal/domain/character"
	"github.com/MRamiBalles/Drifting/server/internal/domain/item"
	"github.com/MRamiBalles/Drifting/server/internal/domain/party"
)

// Snapshot is a deep copy of what a display needs. Mutating it never
// touches the State it came from.
type Snapshot struct {
	Now       time.Time `json:"now"`
	Tick      int64     `json:"tick"`
	Day       int       `json:"day"`
	Hour      int       `json:"hour"`
	Traveling bool      `json:"traveling"`
	Distance  float64   `json:"distance"`

	Location    string   `json:"location"`
	Destination string   `json:"destination,omitempty"`
	Remaining   float64  `json:"remaining"`
	Neighbors   []string `json:"neighbors"`

	Team       []*character.Character `json:"team"`
	PlayerID   string                 `json:"player_id"`
	SelectedID string                 `json:"selected_id"`
	Selected   *character.Character   `json:"selected,omitempty"`
	Stats      party.Stats            `json:"stats"`
	Items      item.Inventory         `json:"items"`

	Passersby []character.Passerby `json:"passersby"`
	Log       []string             `json:"log"`
}

// Snapshot copies st for display.
func (e *Engine) Snapshot(st *State) Snapshot {
	team := st.Team
	snap := Snapshot{
		Now:         st.Now,
		Tick:        st.Ticks,
		Day:         st.Day(),
		Hour:        st.Hour(),
		Traveling:   team.Traveling,
		Distance:    team.Distance,
		Location:    team.Location,
		Destination: team.Destination,
		Remaining:   team.Remaining,
		Neighbors:   e.worldMap.NeighborsOf(team.Location),
		PlayerID:    team.PlayerID,
		SelectedID:  team.SelectedID,
		Stats:       team.Stats(),
		Items:       team.Items.Clone(),
		Log:         st.Log.Narration(),
	}

	snap.Team = make([]*character.Character, len(team.Members))
	for i, m := range team.Members {
		snap.Team[i] = m.Clone()
	}
	snap.Passersby = make([]character.Passerby, len(st.Passersby))
	for i, p := range st.Passersby {
		snap.Passersby[i] = character.Passerby{Character: p.Character.Clone(), ExpiresAt: p.ExpiresAt}
	}

	if m := team.Member(team.SelectedID); m != nil {
		snap.Selected = m.Clone()
	} else if p := st.Passerby(team.SelectedID); p != nil {
		snap.Selected = p.Character.Clone()
	}
	return snap
}
