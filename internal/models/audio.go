package models

import "time"

// UserAudio is a user-recorded pronunciation attempt. Only the metadata is
// stored here; the file itself lives wherever AudioURL points.
type UserAudio struct {
	ID           int64     `json:"audio_pk"`
	UserID       int64     `json:"user_pk"`
	CardID       *int64    `json:"card_pk"`
	Filename     string    `json:"filename"`
	AudioURL     string    `json:"audio_url"`
	Duration     *int      `json:"duration"`
	QualityScore *int      `json:"quality_score"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
