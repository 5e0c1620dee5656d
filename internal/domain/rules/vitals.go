// Package rules contains the pure calculation logic for game mechanics.
// This package is PURE and must NOT import any infrastructure packages.
package rules

import (
	"math"

	"github.com/MRamiBalles/Drifting/server/internal/domain/character"
)

// DecayRates are the per-tick losses applied while traveling.
type DecayRates struct {
	Satiety   float64
	Hydration float64
	Stamina   float64
	Mood      float64
}

// RecoveryRates are the per-tick gains applied while resting.
type RecoveryRates struct {
	Stamina float64
	Mood    float64
}

// ApplyTravelDecay lowers every vital by its rate, floored at 0.
func ApplyTravelDecay(c *character.Character, r DecayRates) {
	v := &c.Vitals
	v.Satiety = decay(v.Satiety, r.Satiety)
	v.Hydration = decay(v.Hydration, r.Hydration)
	v.Stamina = decay(v.Stamina, r.Stamina)
	v.Mood = decay(v.Mood, r.Mood)
}

// ApplyRestRecovery raises stamina and mood by their rates, capped at
// character.MaxStatValue.
func ApplyRestRecovery(c *character.Character, r RecoveryRates) {
	v := &c.Vitals
	v.Stamina = regen(v.Stamina, r.Stamina)
	v.Mood = regen(v.Mood, r.Mood)
}

// ApplyMoodPenalty lowers mood by amount, floored at 0.
func ApplyMoodPenalty(c *character.Character, amount float64) {
	c.Vitals.Mood = decay(c.Vitals.Mood, amount)
}

func decay(value, rate float64) float64 {
	return round2(math.Max(value-rate, 0))
}

func regen(value, rate float64) float64 {
	return round2(math.Min(value+rate, character.MaxStatValue))
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TeamSpeed is the slowest effective speed among members; zero for none.
func TeamSpeed(members []*character.Character) float64 {
	if len(members) == 0 {
		return 0
	}
	speed := members[0].EffectiveSpeed()
	for _, m := range members[1:] {
		speed = math.Min(speed, m.EffectiveSpeed())
	}
	return speed
}
