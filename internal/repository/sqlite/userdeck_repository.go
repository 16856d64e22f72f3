package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lcharvet/flashlingo/internal/logger"
	"github.com/lcharvet/flashlingo/internal/models"
	"github.com/lcharvet/flashlingo/internal/repository"
	"github.com/lcharvet/flashlingo/internal/srs"
)

type userDeckRepository struct {
	db DBTX
}

// NewUserDeckRepository creates a new UserDeckRepository implementation
func NewUserDeckRepository(db DBTX) repository.UserDeckRepository {
	return &userDeckRepository{db: db}
}

const userDeckColumns = `ud.id, ud.user_id, ud.deck_id, ud.mastered_cards, ud.learning_cards, ud.review_cards,
       ud.total_points, ud.total_attempts, ud.successful_attempts, ud.added_at, ud.last_studied`

func scanUserDeck(scan func(dest ...any) error) (models.UserDeck, error) {
	var ud models.UserDeck
	err := scan(&ud.ID, &ud.UserID, &ud.DeckID, &ud.MasteredCards, &ud.LearningCards,
		&ud.ReviewCards, &ud.TotalPoints, &ud.TotalAttempts, &ud.SuccessfulAttempts,
		&ud.AddedAt, &ud.LastStudied)
	return ud, err
}

func (r *userDeckRepository) Add(ctx context.Context, userID, deckID int64) (*models.UserDeck, error) {
	log := logger.FromContext(ctx).WithPrefix("userdeck_repo")
	log.Debug("adding deck to collection: user_id=%d, deck_id=%d", userID, deckID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_decks (user_id, deck_id) VALUES (?, ?)
`, userID, deckID)
	if err != nil {
		log.Error("failed to add user deck: %v", err)
		return nil, err
	}
	return r.Get(ctx, userID, deckID)
}

func (r *userDeckRepository) Get(ctx context.Context, userID, deckID int64) (*models.UserDeck, error) {
	log := logger.FromContext(ctx).WithPrefix("userdeck_repo")

	row := r.db.QueryRowContext(ctx, `
SELECT `+userDeckColumns+` FROM user_decks ud WHERE ud.user_id = ? AND ud.deck_id = ?
`, userID, deckID)
	ud, err := scanUserDeck(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user deck: %v", err)
		return nil, err
	}
	if err := r.loadPoints(ctx, &ud); err != nil {
		return nil, err
	}
	return &ud, nil
}

func (r *userDeckRepository) ListForUser(ctx context.Context, userID int64) ([]models.UserDeck, error) {
	log := logger.FromContext(ctx).WithPrefix("userdeck_repo")
	log.Debug("listing user decks: user_id=%d", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT `+userDeckColumns+`, d.id, d.public_id, d.name, d.created_at
FROM user_decks ud
JOIN decks d ON d.id = ud.deck_id
WHERE ud.user_id = ?
ORDER BY ud.added_at, ud.id
`, userID)
	if err != nil {
		log.Error("failed to list user decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.UserDeck
	for rows.Next() {
		var ud models.UserDeck
		var d models.Deck
		err := rows.Scan(&ud.ID, &ud.UserID, &ud.DeckID, &ud.MasteredCards, &ud.LearningCards,
			&ud.ReviewCards, &ud.TotalPoints, &ud.TotalAttempts, &ud.SuccessfulAttempts,
			&ud.AddedAt, &ud.LastStudied, &d.ID, &d.PublicID, &d.Name, &d.CreatedAt)
		if err != nil {
			log.Error("failed to scan user deck row: %v", err)
			return nil, err
		}
		ud.Deck = &d
		decks = append(decks, ud)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range decks {
		if err := r.loadPoints(ctx, &decks[i]); err != nil {
			return nil, err
		}
	}
	return decks, nil
}

// ListAllDecksForUser returns every deck in the catalog with the user's
// aggregate when one exists, or zeroed aggregates otherwise.
func (r *userDeckRepository) ListAllDecksForUser(ctx context.Context, userID int64) ([]models.UserDeck, error) {
	log := logger.FromContext(ctx).WithPrefix("userdeck_repo")
	log.Debug("listing all decks with aggregates: user_id=%d", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT COALESCE(ud.id, 0), COALESCE(ud.user_id, ?), d.id,
       COALESCE(ud.mastered_cards, 0), COALESCE(ud.learning_cards, 0), COALESCE(ud.review_cards, 0),
       COALESCE(ud.total_points, 0), COALESCE(ud.total_attempts, 0), COALESCE(ud.successful_attempts, 0),
       COALESCE(ud.added_at, d.created_at), ud.last_studied,
       d.id, d.public_id, d.name, d.created_at
FROM decks d
LEFT JOIN user_decks ud ON ud.deck_id = d.id AND ud.user_id = ?
ORDER BY d.id
`, userID, userID)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.UserDeck
	for rows.Next() {
		var ud models.UserDeck
		var d models.Deck
		err := rows.Scan(&ud.ID, &ud.UserID, &ud.DeckID, &ud.MasteredCards, &ud.LearningCards,
			&ud.ReviewCards, &ud.TotalPoints, &ud.TotalAttempts, &ud.SuccessfulAttempts,
			&ud.AddedAt, &ud.LastStudied, &d.ID, &d.PublicID, &d.Name, &d.CreatedAt)
		if err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		ud.Deck = &d
		decks = append(decks, ud)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range decks {
		if decks[i].ID != 0 {
			if err := r.loadPoints(ctx, &decks[i]); err != nil {
				return nil, err
			}
		}
	}
	return decks, nil
}

func (r *userDeckRepository) Remove(ctx context.Context, userID, deckID int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("userdeck_repo")
	log.Debug("removing deck from collection: user_id=%d, deck_id=%d", userID, deckID)

	res, err := r.db.ExecContext(ctx, `
DELETE FROM user_decks WHERE user_id = ? AND deck_id = ?
`, userID, deckID)
	if err != nil {
		log.Error("failed to remove user deck: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *userDeckRepository) CountForUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_decks WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}

// Ensure creates the (user, deck) aggregate if missing and returns its id.
// The upsert keeps concurrent first-time submissions from racing to insert.
func (r *userDeckRepository) Ensure(ctx context.Context, userID, deckID int64, now time.Time) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("userdeck_repo")

	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_decks (user_id, deck_id, added_at)
VALUES (?, ?, ?)
ON CONFLICT(user_id, deck_id) DO NOTHING
`, userID, deckID, now)
	if err != nil {
		log.Error("failed to ensure user deck: %v", err)
		return 0, err
	}

	var id int64
	err = r.db.QueryRowContext(ctx, `
SELECT id FROM user_decks WHERE user_id = ? AND deck_id = ?
`, userID, deckID).Scan(&id)
	if err != nil {
		log.Error("failed to read user deck id: %v", err)
		return 0, err
	}
	return id, nil
}

// ApplyScore folds one score event into the aggregate's running totals and
// the per-quiz-type points map.
func (r *userDeckRepository) ApplyScore(ctx context.Context, id int64, score int, isCorrect bool, quizType string, studiedAt time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("userdeck_repo")
	log.Debug("applying score to user deck: id=%d, score=%d, quiz_type=%s", id, score, quizType)

	success := 0
	if isCorrect {
		success = 1
	}
	_, err := r.db.ExecContext(ctx, `
UPDATE user_decks
SET total_points = total_points + ?,
    total_attempts = total_attempts + 1,
    successful_attempts = successful_attempts + ?,
    last_studied = ?
WHERE id = ?
`, score, success, studiedAt, id)
	if err != nil {
		log.Error("failed to update user deck totals: %v", err)
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO user_deck_points (user_deck_id, quiz_type, points)
VALUES (?, ?, ?)
ON CONFLICT(user_deck_id, quiz_type) DO UPDATE SET points = points + excluded.points
`, id, quizType, score)
	if err != nil {
		log.Error("failed to update quiz type points: %v", err)
	}
	return err
}

func (r *userDeckRepository) UpdateBuckets(ctx context.Context, id int64, counts srs.BucketCounts) error {
	log := logger.FromContext(ctx).WithPrefix("userdeck_repo")
	log.Debug("updating buckets: id=%d, mastered=%d, learning=%d, review=%d",
		id, counts.Mastered, counts.Learning, counts.Review)

	_, err := r.db.ExecContext(ctx, `
UPDATE user_decks
SET mastered_cards = ?, learning_cards = ?, review_cards = ?
WHERE id = ?
`, counts.Mastered, counts.Learning, counts.Review, id)
	if err != nil {
		log.Error("failed to update buckets: %v", err)
	}
	return err
}

func (r *userDeckRepository) loadPoints(ctx context.Context, ud *models.UserDeck) error {
	rows, err := r.db.QueryContext(ctx, `
SELECT quiz_type, points FROM user_deck_points WHERE user_deck_id = ?
`, ud.ID)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("userdeck_repo").Error("failed to load points: %v", err)
		return err
	}
	defer rows.Close()

	ud.Points = make(map[string]int)
	for rows.Next() {
		var quizType string
		var points int
		if err := rows.Scan(&quizType, &points); err != nil {
			return err
		}
		ud.Points[quizType] = points
	}
	return rows.Err()
}
