// Package credibility holds the local, network-free heuristics that score
// content, pick authoritative sources and build fact-check results.
package credibility

import "math"

// Source is the randomness used for score jitter. *rand.Rand satisfies it.
// Float64 must return a value in [0, 1).
type Source interface {
	Float64() float64
}

// Fixed is a Source that always returns the same value. Fixed(0.5) yields
// zero jitter.
type Fixed float64

func (f Fixed) Float64() float64 { return float64(f) }

// NoJitter removes randomness from every score.
const NoJitter = Fixed(0.5)

// jitter returns a value in [-amplitude, +amplitude).
func jitter(src Source, amplitude float64) float64 {
	if src == nil || amplitude == 0 {
		return 0
	}
	return (src.Float64()*2 - 1) * amplitude
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampScore rounds v and bounds it to [lo, hi].
func ClampScore(v float64, lo, hi int) int {
	return clamp(int(math.Round(v)), lo, hi)
}
