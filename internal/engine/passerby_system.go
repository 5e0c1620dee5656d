package engine

import (
	"time"

	"github.com/MRamiBalles/Drifting/server/internal/domain/character"
	"github.com/MRamiBalles/Drifting/server/internal/platform/config"
	"github.com/MRamiBalles/Drifting/server/internal/platform/random"
)

// PasserbySystem spawns and expires the strangers met on the road.
type PasserbySystem struct {
	rng         random.Source
	generator   *Generator
	max         int
	probability float64
	minDuration time.Duration
	maxDuration time.Duration
}

// NewPasserbySystem creates a lifecycle manager.
func NewPasserbySystem(cfg config.Config, rng random.Source, gen *Generator) *PasserbySystem {
	return &PasserbySystem{
		rng:         rng,
		generator:   gen,
		max:         cfg.MaxPassersby,
		probability: cfg.AppearanceProbability,
		minDuration: cfg.PasserbyMinDuration,
		maxDuration: cfg.PasserbyMaxDuration,
	}
}

// Tick drops everyone expired at now, then maybe spawns one newcomer when
// there is room. The spawned passerby, if any, is also returned alone.
func (ps *PasserbySystem) Tick(now time.Time, list []character.Passerby) ([]character.Passerby, *character.Passerby) {
	present := make([]character.Passerby, 0, len(list)+1)
	for _, p := range list {
		if !p.Expired(now) {
			present = append(present, p)
		}
	}

	if len(present) >= ps.max {
		return present, nil
	}
	if ps.rng.Float64() >= ps.probability {
		return present, nil
	}

	p := character.Passerby{
		Character: ps.generator.Generate(),
		ExpiresAt: now.Add(ps.duration()),
	}
	present = append(present, p)
	return present, &present[len(present)-1]
}

// duration samples uniformly at millisecond resolution.
func (ps *PasserbySystem) duration() time.Duration {
	lo := int(ps.minDuration / time.Millisecond)
	hi := int(ps.maxDuration / time.Millisecond)
	return time.Duration(random.IntRange(ps.rng, lo, hi)) * time.Millisecond
}

// Compensate pushes every expiration forward by shift. Negative shifts are
// ignored so expirations never move backward.
func (ps *PasserbySystem) Compensate(list []character.Passerby, shift time.Duration) {
	if shift <= 0 {
		return
	}
	for i := range list {
		list[i].ExpiresAt = list[i].ExpiresAt.Add(shift)
	}
}
