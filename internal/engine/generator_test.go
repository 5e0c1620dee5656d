package engine

import (
	"testing"

	"github.com/MRamiBalles/Drifting/server/internal/domain/character"
	"github.com/MRamiBalles/Drifting/server/internal/platform/config"
	"github.com/MRamiBalles/Drifting/server/internal/platform/random"
)

func TestGenerateLowerBounds(t *testing.T) {
	// Setup
	g := NewGenerator(config.Default(), random.NewSequence(0))

	// Act
	c := g.Generate()

	// Assert
	if c.Name != DefaultNames[0] || c.Gender != DefaultGenders[0] {
		t.Errorf("Expected first pool entries, got %s/%s", c.Name, c.Gender)
	}
	if c.Age != 16 {
		t.Errorf("Expected age 16, got %d", c.Age)
	}
	if c.Attributes != (character.Attributes{Strength: 1, Agility: 1, Charisma: 1, Intelligence: 1}) {
		t.Errorf("Expected minimum attributes, got %+v", c.Attributes)
	}
	if c.WalkingSpeed != 70 || c.RidingSpeed != 100 || c.IsRiding {
		t.Errorf("Expected walking 70, riding 100 on foot, got %v/%v/%v", c.WalkingSpeed, c.RidingSpeed, c.IsRiding)
	}
	if c.Vitals != character.FullVitals() {
		t.Errorf("Expected full vitals, got %+v", c.Vitals)
	}
	if c.ID == "" {
		t.Error("Expected an id")
	}
}

func TestGenerateUpperBounds(t *testing.T) {
	g := NewGenerator(config.Default(), random.NewSequence(0.999999))

	c := g.Generate()

	if c.Name != DefaultNames[len(DefaultNames)-1] {
		t.Errorf("Expected last name, got %s", c.Name)
	}
	if c.Age != 60 || c.Attributes.Intelligence != 10 || c.RidingSpeed != 150 {
		t.Errorf("Expected upper bounds, got age %d int %d riding %v", c.Age, c.Attributes.Intelligence, c.RidingSpeed)
	}
}

func TestGeneratorPoolsGrow(t *testing.T) {
	g := NewGenerator(config.Default(), random.NewSequence(0.999999))
	g.AddNames("Zed")
	g.AddGenders("nonbinary")

	c := g.Generate()

	if c.Name != "Zed" || c.Gender != "nonbinary" {
		t.Errorf("Expected appended entries, got %s/%s", c.Name, c.Gender)
	}
	if len(DefaultNames) != 15 {
		t.Errorf("Default pool must not change, has %d", len(DefaultNames))
	}
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	g := NewGenerator(config.Default(), random.New(1))
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		c := g.Generate()
		if seen[c.ID] {
			t.Fatalf("duplicate id %s", c.ID)
		}
		seen[c.ID] = true
	}
}
