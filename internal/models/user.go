package models

import "time"

type User struct {
	ID                 int64      `json:"user_pk"`
	Email              string     `json:"email"`
	Username           string     `json:"username"`
	HashedPassword     string     `json:"-"`
	FirstName          string     `json:"first_name,omitempty"`
	LastName           string     `json:"last_name,omitempty"`
	Bio                string     `json:"bio,omitempty"`
	ProfilePicture     string     `json:"profile_picture,omitempty"`
	IsActive           bool       `json:"is_active"`
	TotalScore         int        `json:"total_score"`
	TotalCardsReviewed int        `json:"total_cards_reviewed"`
	TotalCardsLearned  int        `json:"total_cards_learned"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	LastLogin          *time.Time `json:"last_login"`
}

// UserUpdate carries the mutable profile fields; nil means "leave unchanged".
type UserUpdate struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
}

// UserStats is the summary returned by GET /api/users/stats.
type UserStats struct {
	TotalScore         int        `json:"total_score"`
	TotalCardsLearned  int        `json:"total_cards_learned"`
	TotalCardsReviewed int        `json:"total_cards_reviewed"`
	TotalDecks         int        `json:"total_decks"`
	TotalAudioRecords  int        `json:"total_audio_records"`
	LastLogin          *time.Time `json:"last_login"`
}
