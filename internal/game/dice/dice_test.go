package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/calder-games/vagabond/internal/game/dice"
)

// TestCryptoSource_Intn_InRange verifies the postcondition:
// every value returned by Intn(6) is in [0, 6).
func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

// TestCryptoSource_Intn_PanicsOnZero verifies the precondition:
// Intn panics when called with n <= 0.
func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

// TestCryptoSource_Float64_InRange verifies every draw is in [0, 1).
func TestCryptoSource_Float64_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

// TestChance_Extremes verifies p<=0 never triggers and p>=1 always triggers.
func TestChance_Extremes(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 100; i++ {
		assert.False(t, dice.Chance(src, 0))
		assert.False(t, dice.Chance(src, -0.5))
		assert.True(t, dice.Chance(src, 1))
		assert.True(t, dice.Chance(src, 1.5))
	}
}

// TestChance_StubThreshold verifies the draw-below-probability rule with a
// scripted source.
func TestChance_StubThreshold(t *testing.T) {
	src := &dice.StubSource{Floats: []float64{0.25, 0.75}}
	assert.True(t, dice.Chance(src, 0.30), "0.25 < 0.30 must trigger")
	assert.False(t, dice.Chance(src, 0.30), "0.75 >= 0.30 must not trigger")
}

// TestStubSource_Replay_Property verifies the stub replays queued ints modulo n
// for arbitrary queues.
func TestStubSource_Replay_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		vals := rapid.SliceOfN(rapid.IntRange(0, 1000), 1, 20).Draw(rt, "vals")
		n := rapid.IntRange(1, 100).Draw(rt, "n")

		src := &dice.StubSource{Ints: vals}
		for _, want := range vals {
			assert.Equal(rt, want%n, src.Intn(n))
		}
		// Exhausted queue repeats the final value.
		assert.Equal(rt, vals[len(vals)-1]%n, src.Intn(n))
	})
}
