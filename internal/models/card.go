package models

import "time"

// DefaultEasiness is the ease factor assigned to a newly created card.
const DefaultEasiness = 2.5

type Deck struct {
	ID        int64     `json:"deck_pk"`
	PublicID  string    `json:"id_json"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Card struct {
	ID            int64  `json:"card_pk"`
	PublicID      string `json:"id_json"`
	DeckID        int64  `json:"deck_pk"`
	Front         string `json:"front"`
	Back          string `json:"back"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Image         string `json:"image,omitempty"`
	Tags          string `json:"tags"`
	Box           int    `json:"box"`

	// Scheduling state, mutated only by review processing.
	Easiness           float64    `json:"easiness"`
	Interval           int        `json:"interval"`
	ConsecutiveCorrect int        `json:"consecutive_correct"`
	LastReviewedAt     *time.Time `json:"last_reviewed_at"`
	NextReview         time.Time  `json:"next_review"`

	CreatedAt time.Time `json:"created_at"`
}

// CardUpdate carries the editable content fields; nil means "leave unchanged".
// Scheduling state is never editable through the CRUD surface.
type CardUpdate struct {
	Front         *string `json:"front"`
	Back          *string `json:"back"`
	Pronunciation *string `json:"pronunciation"`
	Image         *string `json:"image"`
	Tags          *string `json:"tags"`
}

type CardFilter struct {
	DeckID  int64
	Search  string
	MinBox  *int
	DueOnly bool
	DueAt   time.Time
	Limit   int
	Offset  int
}

type DeckFilter struct {
	Search string
	Limit  int
	Offset int
}
