// Package roll provides the uniform random samples behind every chance
// check in the engine. Samples are rounded to three decimals.
package roll

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// Source produces uniform samples in [0,1] with 3-decimal precision.
type Source interface {
	Sample() float64
}

// Round3 rounds x to three decimals.
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

// PCG is a seeded, goroutine-safe Source.
type PCG struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ Source = (*PCG)(nil)

// New creates a reproducible source from two seed words.
func New(seed1, seed2 uint64) *PCG {
	return &PCG{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// NewRandom creates a source seeded from the clock.
func NewRandom() *PCG {
	now := uint64(time.Now().UnixNano())
	return New(now, now>>17|now<<47)
}

func (p *PCG) Sample() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Round3(p.rng.Float64())
}

// Sequence replays a fixed list of samples, cycling when exhausted.
type Sequence struct {
	mu      sync.Mutex
	samples []float64
	next    int
	drawn   int
}

var _ Source = (*Sequence)(nil)

// Fixed returns a Source that yields samples in order. With no samples it
// always yields 0.
func Fixed(samples ...float64) *Sequence {
	return &Sequence{samples: samples}
}

func (s *Sequence) Sample() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawn++
	if len(s.samples) == 0 {
		return 0
	}
	v := s.samples[s.next%len(s.samples)]
	s.next++
	return Round3(v)
}

// Drawn reports how many samples have been taken.
func (s *Sequence) Drawn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawn
}
