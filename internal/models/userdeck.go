package models

import "time"

// UserDeck is the per-(user, deck) aggregate, created lazily on the first
// score event that references the pair. Bucket counts are recomputed from the
// deck's cards on every score event; Points holds per-quiz-type totals.
type UserDeck struct {
	ID     int64 `json:"user_deck_pk"`
	UserID int64 `json:"user_pk"`
	DeckID int64 `json:"deck_pk"`

	Deck *Deck `json:"deck,omitempty"`

	MasteredCards int `json:"mastered_cards"`
	LearningCards int `json:"learning_cards"`
	ReviewCards   int `json:"review_cards"`

	TotalPoints        int `json:"total_points"`
	TotalAttempts      int `json:"total_attempts"`
	SuccessfulAttempts int `json:"successful_attempts"`

	Points map[string]int `json:"-"`

	AddedAt     time.Time  `json:"added_at"`
	LastStudied *time.Time `json:"last_studied"`
}

// Progress is the mastered share of the deck in percent, derived at read
// time and never stored.
func (d *UserDeck) Progress() float64 {
	total := d.MasteredCards + d.LearningCards + d.ReviewCards
	if total == 0 {
		return 0.0
	}
	return round2(float64(d.MasteredCards) / float64(total) * 100)
}

// SuccessRate is the share of successful attempts in percent, derived at
// read time and never stored.
func (d *UserDeck) SuccessRate() float64 {
	if d.TotalAttempts == 0 {
		return 0.0
	}
	return round2(float64(d.SuccessfulAttempts) / float64(d.TotalAttempts) * 100)
}

// PointsFor returns the accumulated points for one quiz type.
func (d *UserDeck) PointsFor(quizType string) int {
	return d.Points[quizType]
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
