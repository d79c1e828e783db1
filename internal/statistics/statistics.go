// Package statistics aggregates per-round results from Flip 7
// simulations into summary statistics.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// RoundResult represents the outcome of a single simulated round for
// one player
type RoundResult struct {
	Score     int   // Final banked score (0 on bust)
	Draws     int   // Cards drawn by this hand, forced draws included
	Busted    bool  // Hand ended the round busted
	Frozen    bool  // Hand ended the round frozen
	FlipSeven bool  // Hand claimed the Flip 7 bonus
	Seed      int64 // RNG seed for the round (for replay)
}

// Statistics tracks aggregate results across a simulation run
type Statistics struct {
	Rounds int
	Sum    float64
	Sum2   float64   // Sum of squares for variance calculation
	Values []float64 // All scores, kept for median/percentile calculation

	Busts      int
	Freezes    int
	FlipSevens int
	TotalDraws int
	MaxScore   int
}

// Add incorporates one round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	score := float64(result.Score)
	s.Rounds++
	s.Sum += score
	s.Sum2 += score * score
	s.Values = append(s.Values, score)

	if result.Busted {
		s.Busts++
	}
	if result.Frozen {
		s.Freezes++
	}
	if result.FlipSeven {
		s.FlipSevens++
	}
	s.TotalDraws += result.Draws
	if result.Score > s.MaxScore {
		s.MaxScore = result.Score
	}
}

// Merge folds another statistics block into this one. Used to combine
// per-worker results after a parallel run.
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.Sum += other.Sum
	s.Sum2 += other.Sum2
	s.Values = append(s.Values, other.Values...)
	s.Busts += other.Busts
	s.Freezes += other.Freezes
	s.FlipSevens += other.FlipSevens
	s.TotalDraws += other.TotalDraws
	if other.MaxScore > s.MaxScore {
		s.MaxScore = other.MaxScore
	}
}

// Mean returns the arithmetic mean score per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.Sum / float64(s.Rounds)
}

// Variance returns the sample variance of round scores
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of round scores
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median round score
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the p-th percentile (p in [0,1]) of round scores,
// linearly interpolated
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// BustRate returns the fraction of rounds that ended in a bust
func (s *Statistics) BustRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Busts) / float64(s.Rounds)
}

// FlipSevenRate returns the fraction of rounds that claimed Flip 7
func (s *Statistics) FlipSevenRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.FlipSevens) / float64(s.Rounds)
}

// Validate checks internal consistency of the aggregates
func (s *Statistics) Validate() error {
	if s.Rounds != len(s.Values) {
		return fmt.Errorf("rounds (%d) does not match recorded values (%d)", s.Rounds, len(s.Values))
	}
	if s.Busts+s.FlipSevens > s.Rounds {
		return fmt.Errorf("busts (%d) + flip sevens (%d) exceed rounds (%d)", s.Busts, s.FlipSevens, s.Rounds)
	}
	return nil
}
