package repository

import (
	"context"
	"time"

	"github.com/lcharvet/flashlingo/internal/models"
	"github.com/lcharvet/flashlingo/internal/srs"
)

// UserRepository handles user data access
type UserRepository interface {
	Insert(ctx context.Context, user models.User) (int64, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, upd models.UserUpdate) error
	UpdateLastLogin(ctx context.Context, id int64, t time.Time) error
	ApplyScore(ctx context.Context, id int64, score int, isCorrect bool) error
}

// DeckRepository handles deck data access
type DeckRepository interface {
	Insert(ctx context.Context, deck models.Deck) (int64, error)
	Get(ctx context.Context, id int64) (*models.Deck, error)
	List(ctx context.Context, filter models.DeckFilter) ([]models.Deck, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// CardRepository handles card data access, including scheduling state
type CardRepository interface {
	Insert(ctx context.Context, card models.Card) (int64, error)
	Get(ctx context.Context, id int64) (*models.Card, error)
	List(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	ListByDeck(ctx context.Context, deckID int64) ([]models.Card, error)
	DueForUser(ctx context.Context, userID int64, now time.Time, limit int) ([]models.Card, error)
	UpdateContent(ctx context.Context, id int64, upd models.CardUpdate) (bool, error)
	UpdateScheduling(ctx context.Context, card models.Card) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// UserDeckRepository handles the per-(user, deck) aggregates
type UserDeckRepository interface {
	Add(ctx context.Context, userID, deckID int64) (*models.UserDeck, error)
	Get(ctx context.Context, userID, deckID int64) (*models.UserDeck, error)
	ListForUser(ctx context.Context, userID int64) ([]models.UserDeck, error)
	ListAllDecksForUser(ctx context.Context, userID int64) ([]models.UserDeck, error)
	Remove(ctx context.Context, userID, deckID int64) (bool, error)
	CountForUser(ctx context.Context, userID int64) (int, error)
	// Ensure creates the aggregate row for (user, deck) if it does not exist
	// yet and returns its id. Implemented as an atomic upsert so concurrent
	// first-time submissions cannot create duplicate rows.
	Ensure(ctx context.Context, userID, deckID int64, now time.Time) (int64, error)
	ApplyScore(ctx context.Context, id int64, score int, isCorrect bool, quizType string, studiedAt time.Time) error
	UpdateBuckets(ctx context.Context, id int64, counts srs.BucketCounts) error
}

// ScoreRepository handles the append-only score event log
type ScoreRepository interface {
	Insert(ctx context.Context, ev models.ScoreEvent) (int64, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.ScoreEvent, error)
	ListByUserDeck(ctx context.Context, userID, deckID int64) ([]models.ScoreEvent, error)
}

// AudioRepository handles user audio records
type AudioRepository interface {
	Insert(ctx context.Context, audio models.UserAudio) (int64, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.UserAudio, error)
	Delete(ctx context.Context, id, userID int64) (bool, error)
	CountForUser(ctx context.Context, userID int64) (int, error)
}
