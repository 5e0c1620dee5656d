package engine

import (
	"github.com/google/uuid"

	"github.com/MRamiBalles/Drifting/server/internal/domain/character"
	"github.com/MRamiBalles/Drifting/server/internal/platform/config"
	"github.com/MRamiBalles/Drifting/server/internal/platform/random"
)

// DefaultNames is the starting name pool.
var DefaultNames = []string{
	"Arin", "Lukan", "Marek", "Daro", "Renn",
	"Seris", "Lyra", "Mira", "Elin", "Tala",
	"Ash", "Rune", "Sol", "Drift", "Vale",
}

// DefaultGenders is the starting gender pool.
var DefaultGenders = []string{"male", "female", "unknown"}

// Generator builds random characters from bounded ranges.
// Pools only grow; extend them between ticks.
type Generator struct {
	rng     random.Source
	cfg     config.Config
	names   []string
	genders []string
}

// NewGenerator creates a generator seeded with the default pools.
func NewGenerator(cfg config.Config, rng random.Source) *Generator {
	return &Generator{
		rng:     rng,
		cfg:     cfg,
		names:   append([]string(nil), DefaultNames...),
		genders: append([]string(nil), DefaultGenders...),
	}
}

// AddNames extends the name pool.
func (g *Generator) AddNames(names ...string) {
	g.names = append(g.names, names...)
}

// AddGenders extends the gender pool.
func (g *Generator) AddGenders(genders ...string) {
	g.genders = append(g.genders, genders...)
}

// Generate returns a fresh character at full vitals, on foot.
func (g *Generator) Generate() *character.Character {
	c := &character.Character{
		ID:     uuid.NewString(),
		Name:   random.Pick(g.rng, g.names),
		Gender: random.Pick(g.rng, g.genders),
		Age:    random.IntRange(g.rng, g.cfg.AgeMin, g.cfg.AgeMax),
	}
	c.Attributes = character.Attributes{
		Strength:     g.attribute(),
		Agility:      g.attribute(),
		Charisma:     g.attribute(),
		Intelligence: g.attribute(),
	}
	c.WalkingSpeed = g.cfg.WalkingSpeed
	c.RidingSpeed = float64(random.IntRange(g.rng, g.cfg.RidingMin, g.cfg.RidingMax))
	c.Vitals = character.FullVitals()
	return c
}

func (g *Generator) attribute() int {
	return random.IntRange(g.rng, g.cfg.AttributeMin, g.cfg.AttributeMax)
}
