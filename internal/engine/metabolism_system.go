package engine

import (
	"github.com/MRamiBalles/Drifting/server/internal/domain/character"
	"github.com/MRamiBalles/Drifting/server/internal/domain/item"
	"github.com/MRamiBalles/Drifting/server/internal/domain/rules"
	"github.com/MRamiBalles/Drifting/server/internal/platform/config"
)

// MetabolismSystem applies the vital formulas to the whole roster and feeds
// it from the shared inventory.
type MetabolismSystem struct {
	decay    rules.DecayRates
	recovery rules.RecoveryRates

	rations int
	penalty float64
}

// rationTypes are drawn once per game day on the road.
var rationTypes = []item.ItemType{item.ItemFood, item.ItemWater}

// NewMetabolismSystem reads the per-tick rates from cfg.
func NewMetabolismSystem(cfg config.Config) *MetabolismSystem {
	return &MetabolismSystem{
		decay: rules.DecayRates{
			Satiety:   cfg.SatietyDecay,
			Hydration: cfg.HydrationDecay,
			Stamina:   cfg.StaminaDecay,
			Mood:      cfg.MoodDecay,
		},
		recovery: rules.RecoveryRates{
			Stamina: cfg.StaminaRecovery,
			Mood:    cfg.MoodRecovery,
		},
		rations: cfg.RationsPerMember,
		penalty: cfg.ShortageMoodPenalty,
	}
}

// OnTravelTick decays every member's vitals.
func (ms *MetabolismSystem) OnTravelTick(members []*character.Character) {
	for _, m := range members {
		rules.ApplyTravelDecay(m, ms.decay)
	}
}

// OnRestTick recovers every member's stamina and mood.
func (ms *MetabolismSystem) OnRestTick(members []*character.Character) {
	for _, m := range members {
		rules.ApplyRestRecovery(m, ms.recovery)
	}
}

// ConsumeRations draws a day's food and water for every member. A stack
// that cannot cover the draw is emptied and costs each member the shortage
// penalty in mood. It returns the types that ran short.
func (ms *MetabolismSystem) ConsumeRations(members []*character.Character, items *item.Inventory) []item.ItemType {
	need := ms.rations * len(members)
	if need == 0 {
		return nil
	}

	var short []item.ItemType
	for _, t := range rationTypes {
		if items.Remove(t, need) {
			continue
		}
		items.Remove(t, items.Quantity(t))
		short = append(short, t)
		for _, m := range members {
			rules.ApplyMoodPenalty(m, ms.penalty)
		}
	}
	return short
}
