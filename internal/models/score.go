package models

import "time"

// Quiz types known to the scoring boundary. Per-type point totals are stored
// as an open map keyed by these strings, so adding a type does not require a
// schema change.
const (
	QuizTypeFrappe      = "frappe"
	QuizTypeAssociation = "association"
	QuizTypeQCM         = "qcm"
	QuizTypeClassique   = "classique"
)

// KnownQuizType reports whether t is one of the quiz types accepted by the
// score submission boundary.
func KnownQuizType(t string) bool {
	switch t {
	case QuizTypeFrappe, QuizTypeAssociation, QuizTypeQCM, QuizTypeClassique:
		return true
	}
	return false
}

// ScoreEvent is the immutable record of one submitted answer.
type ScoreEvent struct {
	ID        int64     `json:"score_pk"`
	UserID    int64     `json:"user_pk"`
	DeckID    *int64    `json:"deck_pk"`
	CardID    *int64    `json:"card_pk"`
	QuizType  string    `json:"quiz_type"`
	Score     int       `json:"score"`
	IsCorrect bool      `json:"is_correct"`
	TimeSpent *int      `json:"time_spent"`
	CreatedAt time.Time `json:"created_at"`
}

// ScoreSubmission is the score submission input from the request boundary.
type ScoreSubmission struct {
	DeckID    *int64 `json:"deck_pk"`
	CardID    *int64 `json:"card_pk"`
	Score     int    `json:"score"`
	IsCorrect bool   `json:"is_correct"`
	TimeSpent *int   `json:"time_spent"`
	QuizType  string `json:"quiz_type"`
}
