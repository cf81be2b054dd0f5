package character

import "github.com/calder-games/vagabond/internal/game/content"

// Vitals are the bounded survival stats. Each value is clamped to
// [0, Maxima] on every application; lower hunger, thirst, and stress
// are better, higher health and mood are better.
type Vitals struct {
	Health int `json:"health"`
	Mood   int `json:"mood"`
	Hunger int `json:"hunger"`
	Thirst int `json:"thirst"`
	Stress int `json:"stress"`
}

// Maxima are the upper bounds for each vital. Only health varies; the
// rest are fixed at 100.
type Maxima struct {
	Health int
	Mood   int
	Hunger int
	Thirst int
	Stress int
}

const fixedVitalMax = 100

// MaximaFor computes the vital upper bounds for a level and constitution
// score. maxHealth = 10 + level*10 + con*2.
func MaximaFor(level, con int) Maxima {
	return Maxima{
		Health: 10 + level*10 + con*2,
		Mood:   fixedVitalMax,
		Hunger: fixedVitalMax,
		Thirst: fixedVitalMax,
		Stress: fixedVitalMax,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Apply returns a new Vitals with the delta applied and every field clamped
// to [0, max]. Pure function; v is unchanged.
//
// Postcondition: every field of the result is within its [0, max] bound.
func (v Vitals) Apply(delta content.Effects, max Maxima) Vitals {
	return Vitals{
		Health: clamp(v.Health+delta.Health, 0, max.Health),
		Mood:   clamp(v.Mood+delta.Mood, 0, max.Mood),
		Hunger: clamp(v.Hunger+delta.Hunger, 0, max.Hunger),
		Thirst: clamp(v.Thirst+delta.Thirst, 0, max.Thirst),
		Stress: clamp(v.Stress+delta.Stress, 0, max.Stress),
	}
}

// lethal reports whether the vitals describe a dead character: zero health,
// or hunger or thirst pegged at maximum.
func (v Vitals) lethal(max Maxima) bool {
	return v.Health == 0 || v.Hunger == max.Hunger || v.Thirst == max.Thirst
}
