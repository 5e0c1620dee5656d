package main

import (
	"testing"

	"github.com/MRamiBalles/Drifting/server/internal/domain/character"
	"github.com/MRamiBalles/Drifting/server/internal/engine"
	"github.com/MRamiBalles/Drifting/server/internal/platform/random"
)

func TestChooseActionTargetsPasserby(t *testing.T) {
	snap := engine.Snapshot{
		Passersby: []character.Passerby{{Character: &character.Character{ID: "stranger"}}},
	}

	action := chooseAction(snap, random.NewSequence(0, 0.5))

	if action.Type != "ATTACK" || action.TargetID != "stranger" {
		t.Errorf("Expected ATTACK on stranger, got %+v", action)
	}
}

func TestChooseActionTravels(t *testing.T) {
	snap := engine.Snapshot{Neighbors: []string{"Harbor", "Farmland"}}

	action := chooseAction(snap, random.NewSequence(0.1, 0.9))

	if action.Type != "TRAVEL_TO" || action.City != "Farmland" {
		t.Errorf("Expected TRAVEL_TO Farmland, got %+v", action)
	}
}

func TestChooseActionFallsBackToToggle(t *testing.T) {
	snap := engine.Snapshot{Destination: "Harbor"}

	action := chooseAction(snap, random.NewSequence(0.9))

	if action.Type != "TOGGLE_TRAVEL" {
		t.Errorf("Expected TOGGLE_TRAVEL, got %+v", action)
	}
}
