package board

// Sequence is a deterministic draw stream: a seed plus a monotonically
// increasing counter. Every draw is a fixed integer transform of
// (seed, counter), so two sequences built from the same seed produce the
// same draws across independent invocations. That reproducibility is the
// whole contract: both players' boards are generated from the same stream
// and must match. Statistical quality is not a requirement.
type Sequence struct {
	seed    int64
	counter int64
}

// NewSequence creates a draw stream starting at counter zero
func NewSequence(seed int64) *Sequence {
	return &Sequence{seed: seed}
}

// NewSequenceAt creates a draw stream resuming at the given counter.
// A room persists its draw count so later draws (e.g. the first-click cell)
// continue the same stream that placed the mines.
func NewSequenceAt(seed int64, counter int64) *Sequence {
	return &Sequence{seed: seed, counter: counter}
}

// Counter returns the number of draws consumed so far
func (s *Sequence) Counter() int64 {
	return s.counter
}

// next advances the counter and returns the raw draw.
// splitmix64-style avalanche of seed+counter.
func (s *Sequence) next() uint64 {
	z := uint64(s.seed) + uint64(s.counter)*0x9E3779B97F4A7C15
	s.counter++
	z ^= z >> 30
	z *= 0xBF58476D1CE4E5B9
	z ^= z >> 27
	z *= 0x94D049BB133111EB
	z ^= z >> 31
	return z
}

// Intn returns a deterministic draw in [0, n)
func (s *Sequence) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.next() % uint64(n))
}
