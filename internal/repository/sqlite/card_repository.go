package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/lcharvet/flashlingo/internal/logger"
	"github.com/lcharvet/flashlingo/internal/models"
	"github.com/lcharvet/flashlingo/internal/repository"
)

type cardRepository struct {
	db DBTX
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db DBTX) repository.CardRepository {
	return &cardRepository{db: db}
}

const cardColumns = `id, public_id, deck_id, front, back, pronunciation, image, tags, box,
       easiness, interval, consecutive_correct, last_reviewed_at, next_review, created_at`

func scanCard(scan func(dest ...any) error) (models.Card, error) {
	var c models.Card
	err := scan(&c.ID, &c.PublicID, &c.DeckID, &c.Front, &c.Back, &c.Pronunciation, &c.Image,
		&c.Tags, &c.Box, &c.Easiness, &c.Interval, &c.ConsecutiveCorrect,
		&c.LastReviewedAt, &c.NextReview, &c.CreatedAt)
	return c, err
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: deck_id=%d", c.DeckID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cards (public_id, deck_id, front, back, pronunciation, image, tags,
                   box, easiness, interval, consecutive_correct, next_review)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, c.PublicID, c.DeckID, c.Front, c.Back, c.Pronunciation, c.Image, c.Tags,
		c.Box, c.Easiness, c.Interval, c.ConsecutiveCorrect, c.NextReview)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return 0, err
	}
	log.Debug("card inserted: id=%d", id)
	return id, nil
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.Card, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	c, err := scanCard(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromContext(ctx).WithPrefix("card_repo").Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) List(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: deck_id=%d, search=%q, due_only=%t", filter.DeckID, filter.Search, filter.DueOnly)

	query := sqlBuilder.Select("id", "public_id", "deck_id", "front", "back", "pronunciation", "image",
		"tags", "box", "easiness", "interval", "consecutive_correct", "last_reviewed_at",
		"next_review", "created_at").From("cards")
	if filter.DeckID > 0 {
		query = query.Where(squirrel.Eq{"deck_id": filter.DeckID})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.Like{"front": pattern},
			squirrel.Like{"back": pattern},
		})
	}
	if filter.MinBox != nil {
		query = query.Where(squirrel.GtOrEq{"box": *filter.MinBox})
	}
	if filter.DueOnly {
		query = query.Where(squirrel.LtOrEq{"next_review": filter.DueAt})
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.OrderBy("id").Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	return r.queryCards(ctx, sqlStr, args...)
}

func (r *cardRepository) ListByDeck(ctx context.Context, deckID int64) ([]models.Card, error) {
	return r.queryCards(ctx, `SELECT `+cardColumns+` FROM cards WHERE deck_id = ? ORDER BY id`, deckID)
}

// DueForUser returns due cards across every deck in the user's collection,
// oldest due date first.
func (r *cardRepository) DueForUser(ctx context.Context, userID int64, now time.Time, limit int) ([]models.Card, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.queryCards(ctx, `
SELECT c.id, c.public_id, c.deck_id, c.front, c.back, c.pronunciation, c.image, c.tags, c.box,
       c.easiness, c.interval, c.consecutive_correct, c.last_reviewed_at, c.next_review, c.created_at
FROM cards c
JOIN user_decks ud ON ud.deck_id = c.deck_id
WHERE ud.user_id = ? AND c.next_review <= ?
ORDER BY c.next_review
LIMIT ?
`, userID, now, limit)
}

func (r *cardRepository) queryCards(ctx context.Context, sqlStr string, args ...any) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows.Scan)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *cardRepository) UpdateContent(ctx context.Context, id int64, upd models.CardUpdate) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card content: id=%d", id)

	query := sqlBuilder.Update("cards").Where("id = ?", id)
	changed := false
	if upd.Front != nil {
		query = query.Set("front", *upd.Front)
		changed = true
	}
	if upd.Back != nil {
		query = query.Set("back", *upd.Back)
		changed = true
	}
	if upd.Pronunciation != nil {
		query = query.Set("pronunciation", *upd.Pronunciation)
		changed = true
	}
	if upd.Image != nil {
		query = query.Set("image", *upd.Image)
		changed = true
	}
	if upd.Tags != nil {
		query = query.Set("tags", *upd.Tags)
		changed = true
	}
	if !changed {
		exists, err := r.exists(ctx, id)
		return exists, err
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build update query: %v", err)
		return false, err
	}
	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to update card: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// UpdateScheduling persists the card's review state after a score event.
func (r *cardRepository) UpdateScheduling(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card scheduling: id=%d, interval=%d, next_review=%s", c.ID, c.Interval, c.NextReview)

	_, err := r.db.ExecContext(ctx, `
UPDATE cards
SET box = ?, easiness = ?, interval = ?, consecutive_correct = ?,
    last_reviewed_at = ?, next_review = ?
WHERE id = ?
`, c.Box, c.Easiness, c.Interval, c.ConsecutiveCorrect, c.LastReviewedAt, c.NextReview, c.ID)
	if err != nil {
		log.Error("failed to update card scheduling: %v", err)
	}
	return err
}

func (r *cardRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("card_repo").Error("failed to delete card: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *cardRepository) exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM cards WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
