package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/calder-games/vagabond/internal/game/character"
	"github.com/calder-games/vagabond/internal/game/content"
)

func TestFailureChance_Formulas(t *testing.T) {
	d := character.Derived{AC: 10, Str: 12, Dex: 11, Con: 14, Cha: 13}

	labor := &content.Action{Category: content.CategoryLabor, Risk: 0.40}
	assert.InDelta(t, 0.40-0.26+0.02, failureChance(labor, d, 10), 1e-9)

	adventure := &content.Action{Category: content.CategoryAdventure, Risk: 0.60}
	assert.InDelta(t, 0.60-0.33+0.02, failureChance(adventure, d, 10), 1e-9)

	social := &content.Action{Category: content.CategorySocial, Risk: 0.40}
	assert.InDelta(t, 0.40-0.26+0.02, failureChance(social, d, 10), 1e-9)
}

func TestFailureChance_ClampsAtFloor(t *testing.T) {
	d := character.Derived{Str: 15, Con: 15}
	a := &content.Action{Category: content.CategoryLabor, Risk: 0.05}
	assert.Equal(t, minFailureChance, failureChance(a, d, 0))
}

func TestFailureChance_ClampsAtCeiling(t *testing.T) {
	d := character.Derived{}
	a := &content.Action{Category: content.CategoryAdventure, Risk: 0.95}
	assert.Equal(t, maxFailureChance, failureChance(a, d, 100))
}

func TestFailureChance_Bounds_Property(t *testing.T) {
	cats := []content.Category{content.CategoryLabor, content.CategoryAdventure, content.CategorySocial}
	rapid.Check(t, func(rt *rapid.T) {
		a := &content.Action{
			Category: cats[rapid.IntRange(0, 2).Draw(rt, "cat")],
			Risk:     rapid.Float64Range(0, 1).Draw(rt, "risk"),
		}
		d := character.Derived{
			AC:  rapid.IntRange(0, 40).Draw(rt, "ac"),
			Str: rapid.IntRange(0, 40).Draw(rt, "str"),
			Dex: rapid.IntRange(0, 40).Draw(rt, "dex"),
			Con: rapid.IntRange(0, 40).Draw(rt, "con"),
			Cha: rapid.IntRange(0, 40).Draw(rt, "cha"),
		}
		stress := rapid.IntRange(0, 100).Draw(rt, "stress")

		p := failureChance(a, d, stress)
		assert.GreaterOrEqual(rt, p, minFailureChance)
		assert.LessOrEqual(rt, p, maxFailureChance)
	})
}
