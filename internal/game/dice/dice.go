// Package dice provides the core randomness abstraction for the Vagabond
// simulation engine. Every stochastic decision in the game (risk rolls, loot
// rolls, incident selection, quest selection) draws through a Source so tests
// can substitute deterministic values.
package dice

// Source is the randomness provider for the simulation.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int

	// Float64 returns a uniform random float64 in [0, 1).
	Float64() float64
}

// Chance rolls a single probability check against src.
//
// Precondition: src must be non-nil.
// Postcondition: Returns true with probability clamp(p, 0, 1).
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// PickIndex selects a uniform random index into a collection of length n.
//
// Precondition: n > 0; src must be non-nil.
func PickIndex(src Source, n int) int {
	return src.Intn(n)
}
