package sqlite

import (
	"context"

	"github.com/lcharvet/flashlingo/internal/logger"
	"github.com/lcharvet/flashlingo/internal/models"
	"github.com/lcharvet/flashlingo/internal/repository"
)

type audioRepository struct {
	db DBTX
}

// NewAudioRepository creates a new AudioRepository implementation
func NewAudioRepository(db DBTX) repository.AudioRepository {
	return &audioRepository{db: db}
}

func (r *audioRepository) Insert(ctx context.Context, a models.UserAudio) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("audio_repo")
	log.Debug("inserting audio record: user_id=%d, filename=%s", a.UserID, a.Filename)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO user_audio (user_id, card_id, filename, audio_url, duration, quality_score, notes)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, a.UserID, a.CardID, a.Filename, a.AudioURL, a.Duration, a.QualityScore, a.Notes)
	if err != nil {
		log.Error("failed to insert audio record: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get audio id: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *audioRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.UserAudio, error) {
	log := logger.FromContext(ctx).WithPrefix("audio_repo")

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, card_id, filename, audio_url, duration, quality_score, notes, created_at
FROM user_audio
WHERE user_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`, userID, limit, offset)
	if err != nil {
		log.Error("failed to query audio records: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.UserAudio
	for rows.Next() {
		var a models.UserAudio
		err := rows.Scan(&a.ID, &a.UserID, &a.CardID, &a.Filename, &a.AudioURL,
			&a.Duration, &a.QualityScore, &a.Notes, &a.CreatedAt)
		if err != nil {
			log.Error("failed to scan audio row: %v", err)
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

func (r *audioRepository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM user_audio WHERE id = ? AND user_id = ?
`, id, userID)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("audio_repo").Error("failed to delete audio record: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *audioRepository) CountForUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_audio WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}
