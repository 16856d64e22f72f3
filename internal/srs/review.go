package srs

import (
	"math"
	"math/rand"
	"time"
)

// Grade is the discrete review quality derived from a raw quiz score.
// 0=Again, 1=Hard, 2=Good, 3=Easy
type Grade int

const (
	GradeAgain Grade = iota
	GradeHard
	GradeGood
	GradeEasy
)

// GradeForScore maps a raw quiz score in [0,100] to a Grade. Callers are
// responsible for range-checking the score before calling.
func GradeForScore(score int) Grade {
	switch {
	case score < 50:
		return GradeAgain
	case score < 75:
		return GradeHard
	case score < 90:
		return GradeGood
	default:
		return GradeEasy
	}
}

// State is the scheduling state of one card.
type State struct {
	Easiness           float64
	Interval           int
	ConsecutiveCorrect int
	NextReview         time.Time
}

// Fuzzer supplies the randomness for interval fuzzing. Tests inject a fixed
// implementation to pin the outcome.
type Fuzzer interface {
	// Uniform returns a uniformly distributed float in [lo, hi).
	Uniform(lo, hi float64) float64
}

type randFuzzer struct{}

func (randFuzzer) Uniform(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

// DefaultFuzzer returns the production randomness source.
func DefaultFuzzer() Fuzzer { return randFuzzer{} }

const (
	minEasiness  = 1.3
	relearnDelay = 10 * time.Minute
)

// Review computes the next scheduling state for a card, SM-2 style.
//
// A failed review (GradeAgain) drops easiness by 0.20 (floored at 1.3),
// resets the interval and streak, and schedules a short-term relearning step
// 10 minutes out. Successful reviews adjust easiness by the classic SM-2
// formula, use fixed intervals of 1 and 6 days for the first two of a streak,
// then grow the interval by easiness with a grade-dependent multiplier.
// Intervals of 7 days or more are fuzzed so cards reviewed together do not
// all land on the same future day.
func Review(s State, grade Grade, now time.Time, fuzz Fuzzer) State {
	if grade == GradeAgain {
		return State{
			Easiness:           math.Max(minEasiness, s.Easiness-0.20),
			Interval:           0,
			ConsecutiveCorrect: 0,
			NextReview:         now.Add(relearnDelay),
		}
	}

	q := float64(grade)
	easiness := s.Easiness + (0.1 - (3-q)*(0.08+(3-q)*0.02))
	easiness = math.Max(minEasiness, easiness)

	var interval int
	switch {
	case s.ConsecutiveCorrect < 1:
		interval = 1
	case s.ConsecutiveCorrect == 1:
		interval = 6
	default:
		multiplier := 1.0
		if grade == GradeHard {
			multiplier = 1.2
		} else if grade == GradeEasy {
			multiplier = 1.3
		}
		interval = int(float64(s.Interval) * easiness * multiplier)
		if interval < 1 {
			interval = 1
		}
	}

	if interval >= 7 {
		f := fuzz.Uniform(0.925, 1.075)
		interval = int(float64(interval)*f + 0.5)
		if interval < 1 {
			interval = 1
		}
	}

	return State{
		Easiness:           roundEasiness(easiness),
		Interval:           interval,
		ConsecutiveCorrect: s.ConsecutiveCorrect + 1,
		NextReview:         now.AddDate(0, 0, interval),
	}
}

// easiness is stored with 4 decimal places to avoid floating drift in
// storage and comparisons.
func roundEasiness(e float64) float64 {
	return math.Round(e*10000) / 10000
}
