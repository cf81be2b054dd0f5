package quest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/calder-games/vagabond/internal/game/content"
	"github.com/calder-games/vagabond/internal/game/dice"
	"github.com/calder-games/vagabond/internal/game/quest"
)

// tieredRegistry builds a catalog with count actions per quest category and
// tier, ids like "labor_t2_1".
func tieredRegistry(t *testing.T, perTier int) *content.Registry {
	t.Helper()
	var actions []*content.Action
	for _, cat := range content.QuestCategories {
		for tier := 1; tier <= content.MaxTier; tier++ {
			for i := 0; i < perTier; i++ {
				actions = append(actions, &content.Action{
					ID:       string(cat) + "_t" + string(rune('0'+tier)) + "_" + string(rune('a'+i)),
					Category: cat,
					Tier:     tier,
					Risk:     0.40,
					Days:     1,
				})
			}
		}
	}
	reg, err := content.NewRegistry(content.Catalogs{Actions: actions})
	require.NoError(t, err)
	return reg
}

func TestGenerate_ThreePerCategory(t *testing.T) {
	reg := tieredRegistry(t, 5)
	// Float 0.99 fails the bonus roll.
	src := &dice.StubSource{Floats: []float64{0.99}, Ints: []int{0, 1, 2, 0, 1, 2, 0, 1, 2}}
	pools := quest.NewGenerator(reg, src).Generate(1)

	for _, cat := range content.QuestCategories {
		actions := pools.Actions(cat)
		assert.Len(t, actions, quest.PoolSize)
		for _, a := range actions {
			assert.Equal(t, cat, a.Category)
			assert.Equal(t, 1, a.Tier, "maxTier 1 must only draw tier-1 content")
		}
	}
	assert.Empty(t, pools.Bonus)
}

func TestGenerate_DistinctWithinCategory(t *testing.T) {
	reg := tieredRegistry(t, 5)
	src := dice.NewCryptoSource()
	for i := 0; i < 50; i++ {
		pools := quest.NewGenerator(reg, src).Generate(2)
		for _, cat := range content.QuestCategories {
			seen := map[string]bool{}
			for _, a := range pools.Actions(cat) {
				assert.False(t, seen[a.ID], "duplicate %s in %s pool", a.ID, cat)
				seen[a.ID] = true
			}
		}
	}
}

func TestGenerate_SmallPoolReturnsAll(t *testing.T) {
	reg := tieredRegistry(t, 2)
	src := &dice.StubSource{Floats: []float64{0.99}}
	pools := quest.NewGenerator(reg, src).Generate(1)
	for _, cat := range content.QuestCategories {
		assert.Len(t, pools.Actions(cat), 2)
	}
}

func TestGenerate_BonusAppendsOneHigherTierAction(t *testing.T) {
	reg := tieredRegistry(t, 5)
	// Float 0.10 triggers the 20% bonus; first int after the per-category
	// draws selects the category (index 1 = adventure), the next selects the
	// action within tier 2.
	src := &dice.StubSource{
		Floats: []float64{0.10},
		Ints:   []int{0, 1, 2, 0, 1, 2, 0, 1, 2, 1, 0},
	}
	pools := quest.NewGenerator(reg, src).Generate(1)

	assert.Equal(t, content.CategoryAdventure, pools.Bonus)
	adventure := pools.Actions(content.CategoryAdventure)
	require.Len(t, adventure, quest.PoolSize+1)
	assert.Equal(t, 2, adventure[quest.PoolSize].Tier)

	// The other categories stay at the base size.
	assert.Len(t, pools.Actions(content.CategoryLabor), quest.PoolSize)
	assert.Len(t, pools.Actions(content.CategorySocial), quest.PoolSize)
}

func TestGenerate_NoBonusAboveMaxDefinedTier(t *testing.T) {
	reg := tieredRegistry(t, 5)
	src := &dice.StubSource{Floats: []float64{0.0}, Ints: []int{0, 1, 2, 0, 1, 2, 0, 1, 2}}
	pools := quest.NewGenerator(reg, src).Generate(content.MaxTier)

	assert.Empty(t, pools.Bonus)
	for _, cat := range content.QuestCategories {
		assert.Len(t, pools.Actions(cat), quest.PoolSize)
	}
}

func TestGenerate_PoolSizeBounds_Property(t *testing.T) {
	reg := tieredRegistry(t, 4)
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		maxTier := rapid.IntRange(1, content.MaxTier).Draw(rt, "maxTier")
		pools := quest.NewGenerator(reg, src).Generate(maxTier)

		oversized := 0
		for _, cat := range content.QuestCategories {
			n := len(pools.Actions(cat))
			assert.GreaterOrEqual(rt, n, quest.PoolSize)
			assert.LessOrEqual(rt, n, quest.PoolSize+1)
			if n == quest.PoolSize+1 {
				oversized++
			}
		}
		assert.LessOrEqual(rt, oversized, 1, "at most one category gets the bonus")
		if pools.Bonus != "" {
			assert.Equal(rt, 1, oversized)
		}
	})
}

func TestPools_Contains(t *testing.T) {
	reg := tieredRegistry(t, 5)
	src := &dice.StubSource{Floats: []float64{0.99}, Ints: []int{0, 1, 2, 0, 1, 2, 0, 1, 2}}
	pools := quest.NewGenerator(reg, src).Generate(1)

	first := pools.Actions(content.CategoryLabor)[0]
	assert.True(t, pools.Contains(first.ID))
	assert.False(t, pools.Contains("no_such_action"))
}
