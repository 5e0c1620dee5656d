package random

// Sequence replays fixed draws in order and wraps around when exhausted.
//
// Float64 returns the next value as is. Intn maps the next value onto [0,n)
// by scaling, so 0.0 picks the first index and 0.99 picks the last.
type Sequence struct {
	values []float64
	next   int
}

// NewSequence creates a Sequence. With no values every draw is 0.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) draw() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Float64 implements Source.
func (s *Sequence) Float64() float64 {
	return s.draw()
}

// Intn implements Source.
func (s *Sequence) Intn(n int) int {
	i := int(s.draw() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Draws reports how many values have been consumed.
func (s *Sequence) Draws() int {
	return s.next
}
