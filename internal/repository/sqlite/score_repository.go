package sqlite

import (
	"context"

	"github.com/lcharvet/flashlingo/internal/logger"
	"github.com/lcharvet/flashlingo/internal/models"
	"github.com/lcharvet/flashlingo/internal/repository"
)

type scoreRepository struct {
	db DBTX
}

// NewScoreRepository creates a new ScoreRepository implementation
func NewScoreRepository(db DBTX) repository.ScoreRepository {
	return &scoreRepository{db: db}
}

const scoreColumns = `id, user_id, deck_id, card_id, quiz_type, score, is_correct, time_spent, created_at`

func (r *scoreRepository) Insert(ctx context.Context, ev models.ScoreEvent) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("score_repo")
	log.Debug("inserting score event: user_id=%d, score=%d, quiz_type=%s", ev.UserID, ev.Score, ev.QuizType)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO user_scores (user_id, deck_id, card_id, quiz_type, score, is_correct, time_spent, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, ev.UserID, ev.DeckID, ev.CardID, ev.QuizType, ev.Score, ev.IsCorrect, ev.TimeSpent, ev.CreatedAt)
	if err != nil {
		log.Error("failed to insert score event: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get score id: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *scoreRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.ScoreEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return r.queryScores(ctx, `
SELECT `+scoreColumns+` FROM user_scores
WHERE user_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`, userID, limit, offset)
}

func (r *scoreRepository) ListByUserDeck(ctx context.Context, userID, deckID int64) ([]models.ScoreEvent, error) {
	return r.queryScores(ctx, `
SELECT `+scoreColumns+` FROM user_scores
WHERE user_id = ? AND deck_id = ?
ORDER BY created_at DESC, id DESC
`, userID, deckID)
}

func (r *scoreRepository) queryScores(ctx context.Context, sqlStr string, args ...any) ([]models.ScoreEvent, error) {
	log := logger.FromContext(ctx).WithPrefix("score_repo")

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query scores: %v", err)
		return nil, err
	}
	defer rows.Close()

	var events []models.ScoreEvent
	for rows.Next() {
		var ev models.ScoreEvent
		err := rows.Scan(&ev.ID, &ev.UserID, &ev.DeckID, &ev.CardID, &ev.QuizType,
			&ev.Score, &ev.IsCorrect, &ev.TimeSpent, &ev.CreatedAt)
		if err != nil {
			log.Error("failed to scan score row: %v", err)
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
