package srs

import (
	"time"

	"github.com/lcharvet/flashlingo/internal/models"
)

// Bucket is the three-way study status of a card at a point in time.
type Bucket int

const (
	BucketMastered Bucket = iota
	BucketReview
	BucketLearning
)

// Classify places a card in a bucket given its scheduling state and the
// current time. Priority order matters: a card with a positive interval that
// is not yet due counts as mastered; anything due or overdue is up for
// review; what remains (interval 0, not yet due - freshly created or just
// failed) is still learning.
func Classify(interval int, nextReview, now time.Time) Bucket {
	switch {
	case interval > 0 && nextReview.After(now):
		return BucketMastered
	case !nextReview.After(now):
		return BucketReview
	default:
		return BucketLearning
	}
}

// BucketCounts holds the per-deck tally of card buckets.
type BucketCounts struct {
	Mastered int
	Learning int
	Review   int
}

// CountBuckets fully recomputes the bucket counts for a deck's cards. The
// three counts always sum to len(cards); recomputing from scratch on every
// score event keeps the counters immune to incremental-update drift.
func CountBuckets(cards []models.Card, now time.Time) BucketCounts {
	var c BucketCounts
	for _, card := range cards {
		switch Classify(card.Interval, card.NextReview, now) {
		case BucketMastered:
			c.Mastered++
		case BucketReview:
			c.Review++
		case BucketLearning:
			c.Learning++
		}
	}
	return c
}
