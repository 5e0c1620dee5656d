package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MRamiBalles/Drifting/server/internal/events"
)

// ErrUnknownAction is returned by ParseAction for names outside the enum.
var ErrUnknownAction = errors.New("unknown action")

// Action is what the player can do to a passerby.
type Action int

const (
	ActionTalk Action = iota + 1
	ActionAttack
	ActionInvite
)

func (a Action) String() string {
	switch a {
	case ActionTalk:
		return "TALK"
	case ActionAttack:
		return "ATTACK"
	case ActionInvite:
		return "INVITE"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// ParseAction maps a wire name such as "talk" or "INVITE" to an Action.
func ParseAction(s string) (Action, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TALK":
		return ActionTalk, nil
	case "ATTACK":
		return ActionAttack, nil
	case "INVITE":
		return ActionInvite, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownAction)
}

// Select focuses a team member or a passerby on the road. Unknown ids are
// ignored. It reports whether id is now selected.
func (e *Engine) Select(st *State, id string) bool {
	if st.Team.Member(id) == nil && st.Passerby(id) == nil {
		e.logger.Warn("select: no character " + id)
		return false
	}
	st.Team.SelectedID = id
	return true
}

// IsPlayer reports whether id is the player character.
func (e *Engine) IsPlayer(st *State, id string) bool {
	return id != "" && id == st.Team.PlayerID
}

// Dismiss sends a member other than the player away. It reports whether
// the member left.
func (e *Engine) Dismiss(st *State, id string) bool {
	player := st.Team.Player()
	if e.IsPlayer(st, id) {
		e.ignore(st, player.ID, fmt.Sprintf("%s cannot leave the party they lead.", player.Name))
		return false
	}
	m := st.Team.Member(id)
	if m == nil || !st.Team.RemoveMember(id) {
		e.ignore(st, player.ID, fmt.Sprintf("%s has no companion like that to send away.", player.Name))
		return false
	}

	st.Log.Narrate(events.EventTypeMemberDismissed, player.ID, m.ID,
		fmt.Sprintf("%s parts ways with the party.", m.Name))
	e.metrics.RecordInteraction()
	e.logger.Event("DISMISS", player.ID, m.ID)
	return true
}

// Interact resolves action against the passerby with id. It reports whether
// the action took effect; a refused invite reports false.
func (e *Engine) Interact(st *State, action Action, id string) bool {
	player := st.Team.Player()

	p := st.Passerby(id)
	if p == nil {
		e.ignore(st, player.ID, fmt.Sprintf("%s looks around, but no one like that is on the road.", player.Name))
		return false
	}
	stranger := p.Character

	switch action {
	case ActionTalk:
		st.Log.Narrate(events.EventTypePasserbyTalk, player.ID, stranger.ID,
			fmt.Sprintf("%s trades news with %s.", player.Name, stranger.Name))
	case ActionAttack:
		st.Log.Narrate(events.EventTypePasserbyAttack, player.ID, stranger.ID,
			fmt.Sprintf("%s attacks %s, who flees into the wilds.", player.Name, stranger.Name))
		st.removePasserby(stranger.ID)
	case ActionInvite:
		if st.Team.IsFull() {
			st.Log.Narrate(events.EventTypeInviteRefused, player.ID, stranger.ID,
				fmt.Sprintf("The party is full; %s walks on alone.", stranger.Name))
			return false
		}
		st.Team.AddMember(stranger)
		st.removePasserby(stranger.ID)
		st.Log.Narrate(events.EventTypeInviteAccepted, player.ID, stranger.ID,
			fmt.Sprintf("%s joins the party.", stranger.Name))
	default:
		e.ignore(st, player.ID, fmt.Sprintf("%s hesitates: %v is not something one can do.", player.Name, action))
		return false
	}

	e.metrics.RecordInteraction()
	e.logger.Event(action.String(), player.ID, stranger.ID)
	return true
}
