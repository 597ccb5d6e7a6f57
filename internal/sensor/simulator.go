// Package sensor provides vital-sign sources for the demo deployment.
// The decision core only sees the Source interface, so the simulator can be
// swapped for a real device feed without touching routing or triage.
package sensor

import (
	"math/rand"
	"sync"

	"lifeline-ai/backend/internal/routing"
)

// Source produces vital-sign snapshots.
type Source interface {
	Sample() routing.Vitals
}

// Simulator generates plausible vitals by random-walking around a baseline.
type Simulator struct {
	mu   sync.Mutex
	rng  *rand.Rand
	last routing.Vitals
}

// Baseline vitals for a resting adult.
var baseline = routing.Vitals{
	HeartRate:   72,
	SpO2:        98,
	Temperature: 36.8,
}

// NewSimulator creates a simulator seeded for reproducible sequences.
func NewSimulator(seed int64) *Simulator {
	return &Simulator{
		rng:  rand.New(rand.NewSource(seed)),
		last: baseline,
	}
}

// Sample returns the next simulated vitals snapshot. Each call drifts the
// previous reading slightly and pulls it back toward the baseline so the
// sequence stays within realistic bounds.
func (s *Simulator) Sample() routing.Vitals {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.last.HeartRate = drift(s.rng, s.last.HeartRate, baseline.HeartRate, 4, 45, 160)
	s.last.SpO2 = drift(s.rng, s.last.SpO2, baseline.SpO2, 1, 85, 100)
	s.last.Temperature = drift(s.rng, s.last.Temperature, baseline.Temperature, 0.15, 35, 41)
	return s.last
}

func drift(rng *rand.Rand, current, target, step, min, max float64) float64 {
	next := current + (rng.Float64()*2-1)*step + (target-current)*0.1
	if next < min {
		return min
	}
	if next > max {
		return max
	}
	return next
}
