// Package quest generates the day's available action pools. Pools are drawn
// from tiered content unlocked by character progression, with a shared daily
// chance of one bonus action from the next tier up.
package quest

import (
	"github.com/calder-games/vagabond/internal/game/content"
	"github.com/calder-games/vagabond/internal/game/dice"
)

// PoolSize is the number of actions drawn per category each day.
const PoolSize = 3

// BonusChance is the shared daily probability that one category receives an
// extra action from the tier above the unlocked maximum.
const BonusChance = 0.20

// Pools holds one day's generated action lists keyed by category. Bonus
// names the category that received a rare-opportunity action, or is empty.
type Pools struct {
	ByCategory map[content.Category][]*content.Action
	Bonus      content.Category
}

// Actions returns the generated list for a category.
func (p Pools) Actions(cat content.Category) []*content.Action {
	return p.ByCategory[cat]
}

// Contains reports whether the given action id appears in any pool.
func (p Pools) Contains(actionID string) bool {
	for _, actions := range p.ByCategory {
		for _, a := range actions {
			if a.ID == actionID {
				return true
			}
		}
	}
	return false
}

// Generator draws daily pools from the content registry.
type Generator struct {
	reg *content.Registry
	src dice.Source
}

// NewGenerator returns a Generator drawing randomness from src.
func NewGenerator(reg *content.Registry, src dice.Source) *Generator {
	return &Generator{reg: reg, src: src}
}

// Generate builds the day's pools for every quest category.
//
// Per category: the eligible pool is the union of all tiers in [1, maxTier],
// from which PoolSize distinct actions are drawn (fewer if the pool is
// smaller). One shared BonusChance roll then picks a single category
// uniformly and appends one action from tier maxTier+1, provided that tier
// exists and has content; otherwise the roll is spent with no effect.
//
// Postcondition: every category list has between min(PoolSize, poolSize) and
// PoolSize+1 entries, and at most one category exceeds PoolSize.
func (g *Generator) Generate(maxTier int) Pools {
	pools := Pools{ByCategory: make(map[content.Category][]*content.Action, len(content.QuestCategories))}

	for _, cat := range content.QuestCategories {
		var eligible []*content.Action
		for tier := 1; tier <= maxTier; tier++ {
			eligible = append(eligible, g.reg.QuestPool(cat, tier)...)
		}
		pools.ByCategory[cat] = drawDistinct(g.src, eligible, PoolSize)
	}

	if maxTier+1 <= content.MaxTier && dice.Chance(g.src, BonusChance) {
		cat := content.QuestCategories[dice.PickIndex(g.src, len(content.QuestCategories))]
		if next := g.reg.QuestPool(cat, maxTier+1); len(next) > 0 {
			bonus := next[dice.PickIndex(g.src, len(next))]
			pools.ByCategory[cat] = append(pools.ByCategory[cat], bonus)
			pools.Bonus = cat
		}
	}
	return pools
}

// drawDistinct picks up to n distinct entries via a partial Fisher-Yates
// shuffle of a copy; the source pool is never reordered.
func drawDistinct(src dice.Source, pool []*content.Action, n int) []*content.Action {
	if len(pool) <= n {
		out := make([]*content.Action, len(pool))
		copy(out, pool)
		return out
	}
	scratch := make([]*content.Action, len(pool))
	copy(scratch, pool)
	out := make([]*content.Action, 0, n)
	for i := 0; i < n; i++ {
		j := i + dice.PickIndex(src, len(scratch)-i)
		scratch[i], scratch[j] = scratch[j], scratch[i]
		out = append(out, scratch[i])
	}
	return out
}
