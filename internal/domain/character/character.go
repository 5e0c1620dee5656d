// Package character defines the travelers of the simulation: party members
// and the passersby met on the road.
// This package is PURE and must NOT import any infrastructure packages.
package character

import "time"

// MaxStatValue is the ceiling of every vital.
const MaxStatValue = 100.0

// Attributes are fixed at generation, each in [1,10].
type Attributes struct {
	Strength     int `json:"strength"`
	Agility      int `json:"agility"`
	Charisma     int `json:"charisma"`
	Intelligence int `json:"intelligence"`
}

// Vitals decay while traveling and partly recover while resting.
// Each lies in [0, MaxStatValue].
type Vitals struct {
	Satiety   float64 `json:"satiety"`
	Hydration float64 `json:"hydration"`
	Stamina   float64 `json:"stamina"`
	Mood      float64 `json:"mood"`
}

// FullVitals returns vitals at their maximum.
func FullVitals() Vitals {
	return Vitals{
		Satiety:   MaxStatValue,
		Hydration: MaxStatValue,
		Stamina:   MaxStatValue,
		Mood:      MaxStatValue,
	}
}

// Character is any person in the world.
type Character struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Gender     string     `json:"gender"`
	Age        int        `json:"age"`
	Attributes Attributes `json:"attributes"`

	WalkingSpeed float64 `json:"walking_speed"`
	RidingSpeed  float64 `json:"riding_speed"`
	IsRiding     bool    `json:"is_riding"`

	Vitals Vitals `json:"vitals"`
}

// EffectiveSpeed is the riding speed when mounted, else the walking speed.
func (c *Character) EffectiveSpeed() float64 {
	if c.IsRiding {
		return c.RidingSpeed
	}
	return c.WalkingSpeed
}

// Clone returns an independent copy.
func (c *Character) Clone() *Character {
	cp := *c
	return &cp
}

// Passerby is a generated character that leaves the road at ExpiresAt.
type Passerby struct {
	Character *Character `json:"character"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Expired reports whether the passerby is gone at now.
func (p Passerby) Expired(now time.Time) bool {
	return !p.ExpiresAt.After(now)
}
