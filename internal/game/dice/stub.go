package dice

// StubSource is a deterministic Source for tests. It replays queued values in
// order; when a queue is exhausted it repeats the last value, or returns zero
// if never populated.
//
// StubSource is NOT safe for concurrent use; it exists for single-threaded tests.
type StubSource struct {
	Ints   []int
	Floats []float64

	intIdx   int
	floatIdx int
}

// Intn returns the next queued int modulo n.
//
// Precondition: n > 0.
func (s *StubSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[min(s.intIdx, len(s.Ints)-1)]
	s.intIdx++
	return v % n
}

// Float64 returns the next queued float.
func (s *StubSource) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[min(s.floatIdx, len(s.Floats)-1)]
	s.floatIdx++
	return v
}
