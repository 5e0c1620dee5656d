package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MRamiBalles/Drifting/server/internal/events"
	"github.com/MRamiBalles/Drifting/server/internal/platform/random"
)

func TestParseAction(t *testing.T) {
	for in, want := range map[string]Action{"talk": ActionTalk, "ATTACK": ActionAttack, " Invite ": ActionInvite} {
		got, err := ParseAction(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseAction("dance")
	assert.True(t, errors.Is(err, ErrUnknownAction))
	assert.Equal(t, "INVITE", ActionInvite.String())
}

func TestSelectIsIdempotent(t *testing.T) {
	e, clk := newTestEngine(t, random.NewSequence(0.99))
	st := newTestState(clk)
	st.Team.AddMember(walker("mira"))
	addPasserby(st, "stranger", epoch.Add(time.Minute))

	assert.True(t, e.Select(st, "mira"))
	assert.True(t, e.Select(st, "mira"))
	assert.Equal(t, "mira", st.Team.SelectedID)

	assert.True(t, e.Select(st, "stranger"))
	assert.Equal(t, "stranger", st.Team.SelectedID)

	assert.False(t, e.Select(st, "ghost"))
	assert.Equal(t, "stranger", st.Team.SelectedID)
}

func TestIsPlayer(t *testing.T) {
	e, clk := newTestEngine(t, random.NewSequence(0.99))
	st := newTestState(clk)
	st.Team.AddMember(walker("mira"))

	assert.True(t, e.IsPlayer(st, "player"))
	assert.False(t, e.IsPlayer(st, "mira"))
	assert.False(t, e.IsPlayer(st, ""))
}

func TestTalkOnlyNarrates(t *testing.T) {
	e, clk := newTestEngine(t, random.NewSequence(0.99))
	st := newTestState(clk)
	addPasserby(st, "stranger", epoch.Add(time.Minute))

	assert.True(t, e.Interact(st, ActionTalk, "stranger"))

	assert.Len(t, st.Passersby, 1)
	assert.Len(t, st.Team.Members, 1)
	assert.Len(t, st.Log.GetByType(events.EventTypePasserbyTalk), 1)
}

func TestAttackRemovesPasserby(t *testing.T) {
	e, clk := newTestEngine(t, random.NewSequence(0.99))
	st := newTestState(clk)
	addPasserby(st, "stranger", epoch.Add(time.Minute))
	require.True(t, e.Select(st, "stranger"))

	assert.True(t, e.Interact(st, ActionAttack, "stranger"))

	assert.Empty(t, st.Passersby)
	assert.Len(t, st.Team.Members, 1)
	assert.Equal(t, "player", st.Team.SelectedID)
	assert.Len(t, st.Log.GetByType(events.EventTypePasserbyAttack), 1)
}

func TestInviteBelowCapacity(t *testing.T) {
	e, clk := newTestEngine(t, random.NewSequence(0.99))
	st := newTestState(clk)
	addPasserby(st, "stranger", epoch.Add(time.Minute))
	require.True(t, e.Select(st, "stranger"))

	assert.True(t, e.Interact(st, ActionInvite, "stranger"))

	assert.Empty(t, st.Passersby)
	require.Len(t, st.Team.Members, 2)
	assert.Equal(t, "stranger", st.Team.Members[1].ID)
	assert.Equal(t, "stranger", st.Team.SelectedID, "a new member stays selected")
	assert.Len(t, st.Log.GetByType(events.EventTypeInviteAccepted), 1)
}

func TestInviteAtCapacityChangesNothing(t *testing.T) {
	// Setup: full party of four
	e, clk := newTestEngine(t, random.NewSequence(0.99))
	st := newTestState(clk)
	for i := 1; i < 4; i++ {
		require.True(t, st.Team.AddMember(walker(fmt.Sprintf("member-%d", i))))
	}
	addPasserby(st, "stranger", epoch.Add(time.Minute))

	// Act
	ok := e.Interact(st, ActionInvite, "stranger")

	// Assert
	assert.False(t, ok)
	assert.Len(t, st.Team.Members, 4)
	assert.Len(t, st.Passersby, 1)
	assert.Len(t, st.Log.GetByType(events.EventTypeInviteRefused), 1)
}

func TestInteractWithAbsentPasserby(t *testing.T) {
	e, clk := newTestEngine(t, random.NewSequence(0.99))
	st := newTestState(clk)
	addPasserby(st, "stranger", epoch.Add(time.Minute))

	for _, a := range []Action{ActionTalk, ActionAttack, ActionInvite} {
		assert.False(t, e.Interact(st, a, "ghost"))
	}
	assert.False(t, e.Interact(st, Action(99), "stranger"))

	assert.Len(t, st.Passersby, 1)
	assert.Len(t, st.Team.Members, 1)
	assert.Len(t, st.Log.GetByType(events.EventTypeActionIgnored), 4)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	e, clk := newTestEngine(t, random.New(3))
	st := e.NewState("Kael")
	addPasserby(st, "stranger", epoch.Add(time.Minute))
	require.True(t, e.Select(st, "stranger"))

	snap := e.Snapshot(st)
	snap.Team[0].Vitals.Mood = 1
	snap.Passersby[0].Character.Name = "changed"
	snap.Items[0].Quantity = 999
	snap.Selected.Age = 999

	assert.Equal(t, 100.0, st.Team.Members[0].Vitals.Mood)
	assert.Equal(t, "stranger", st.Passersby[0].Character.Name)
	assert.NotEqual(t, 999, st.Team.Items[0].Quantity)
	assert.Zero(t, st.Passersby[0].Character.Age)
	assert.Equal(t, "Capital", snap.Location)
	assert.ElementsMatch(t, []string{"Harbor", "Farmland"}, snap.Neighbors)
	assert.Equal(t, 1, snap.Day)
	assert.Equal(t, clk.Now(), snap.Now)
}

func TestDismissCompanion(t *testing.T) {
	e, clk := newTestEngine(t, random.NewSequence(0.99))
	st := newTestState(clk)
	st.Team.AddMember(walker("mira"))
	require.True(t, e.Select(st, "mira"))

	assert.True(t, e.Dismiss(st, "mira"))

	assert.Len(t, st.Team.Members, 1)
	assert.Equal(t, "player", st.Team.SelectedID)
	assert.Len(t, st.Log.GetByType(events.EventTypeMemberDismissed), 1)
	assert.EqualValues(t, 1, e.metrics.Interactions)
}

func TestDismissPlayerOrStrangerIgnored(t *testing.T) {
	e, clk := newTestEngine(t, random.NewSequence(0.99))
	st := newTestState(clk)
	addPasserby(st, "stranger", epoch.Add(time.Minute))

	assert.False(t, e.Dismiss(st, "player"))
	assert.False(t, e.Dismiss(st, "stranger"))
	assert.False(t, e.Dismiss(st, "ghost"))

	assert.Len(t, st.Team.Members, 1)
	assert.Len(t, st.Passersby, 1)
	assert.Len(t, st.Log.GetByType(events.EventTypeActionIgnored), 3)
	assert.Empty(t, st.Log.GetByType(events.EventTypeMemberDismissed))
}
