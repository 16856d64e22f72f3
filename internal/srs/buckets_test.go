package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lcharvet/flashlingo/internal/models"
	"github.com/lcharvet/flashlingo/internal/srs"
)

func TestClassify(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		interval   int
		nextReview time.Time
		expected   srs.Bucket
	}{
		{
			name:       "scheduled ahead with positive interval is mastered",
			interval:   6,
			nextReview: now.AddDate(0, 0, 3),
			expected:   srs.BucketMastered,
		},
		{
			name:       "due exactly now is review",
			interval:   6,
			nextReview: now,
			expected:   srs.BucketReview,
		},
		{
			name:       "overdue is review",
			interval:   0,
			nextReview: now.Add(-time.Hour),
			expected:   srs.BucketReview,
		},
		{
			name:       "fresh card not yet due is learning",
			interval:   0,
			nextReview: now.Add(24 * time.Hour),
			expected:   srs.BucketLearning,
		},
		{
			name:       "just failed card in its relearning window is learning",
			interval:   0,
			nextReview: now.Add(10 * time.Minute),
			expected:   srs.BucketLearning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, srs.Classify(tt.interval, tt.nextReview, now))
		})
	}
}

func TestCountBuckets_Completeness(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cards := []models.Card{
		{Interval: 6, NextReview: base.AddDate(0, 0, 3)},   // mastered
		{Interval: 1, NextReview: base.AddDate(0, 0, 1)},   // mastered
		{Interval: 10, NextReview: base.Add(-time.Minute)}, // review
		{Interval: 0, NextReview: base.Add(-time.Hour)},    // review
		{Interval: 0, NextReview: base.Add(time.Hour)},     // learning
	}

	// The three counts must sum to the deck size for any choice of now.
	for _, now := range []time.Time{
		base.AddDate(-1, 0, 0),
		base.Add(-time.Second),
		base,
		base.Add(time.Second),
		base.AddDate(0, 0, 2),
		base.AddDate(1, 0, 0),
	} {
		c := srs.CountBuckets(cards, now)
		assert.Equal(t, len(cards), c.Mastered+c.Learning+c.Review, "now=%v", now)
	}

	c := srs.CountBuckets(cards, base)
	assert.Equal(t, 2, c.Mastered)
	assert.Equal(t, 2, c.Review)
	assert.Equal(t, 1, c.Learning)
}

func TestCountBuckets_EmptyDeck(t *testing.T) {
	c := srs.CountBuckets(nil, time.Now())
	assert.Zero(t, c.Mastered)
	assert.Zero(t, c.Learning)
	assert.Zero(t, c.Review)
}
