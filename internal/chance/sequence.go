package chance

// Sequence is a Source that replays a fixed list of floats, wrapping
// around at the end. An empty Sequence always yields 0.
type Sequence struct {
	values []float64
	next   int
}

var _ Source = (*Sequence)(nil)

// NewSequence creates a Sequence over values. Each value should be in [0, 1).
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// IntN maps the next float onto [0, n).
func (s *Sequence) IntN(n int) int {
	if n <= 0 {
		panic("chance: IntN with non-positive n")
	}
	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Drawn reports how many values have been consumed.
func (s *Sequence) Drawn() int {
	return s.next
}
