package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/lcharvet/flashlingo/internal/db"
	"github.com/lcharvet/flashlingo/internal/errors"
	"github.com/lcharvet/flashlingo/internal/logger"
	"github.com/lcharvet/flashlingo/internal/models"
	"github.com/lcharvet/flashlingo/internal/repository/sqlite"
	"github.com/lcharvet/flashlingo/internal/srs"
)

// ScoreService processes score submissions and serves score history
type ScoreService interface {
	SubmitScore(ctx context.Context, userID int64, sub models.ScoreSubmission, now time.Time) (*models.ScoreEvent, error)
	ListScores(ctx context.Context, userID int64, limit, offset int) ([]models.ScoreEvent, error)
	ListDeckScores(ctx context.Context, userID, deckID int64) ([]models.ScoreEvent, error)
}

type scoreService struct {
	db   *db.DB
	fuzz srs.Fuzzer
}

// NewScoreService creates a new ScoreService. The fuzzer supplies the
// randomness for interval fuzzing; pass srs.DefaultFuzzer() in production.
func NewScoreService(database *db.DB, fuzz srs.Fuzzer) ScoreService {
	return &scoreService{db: database, fuzz: fuzz}
}

// SubmitScore records a score event and applies all its side effects in a
// single transaction: the user's lifetime totals, the card's scheduling
// state, and the per-(user, deck) aggregate with its bucket counts. A card
// or deck reference that no longer resolves does not fail the submission;
// the event is still recorded and the remaining updates still apply.
func (s *scoreService) SubmitScore(ctx context.Context, userID int64, sub models.ScoreSubmission, now time.Time) (*models.ScoreEvent, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting score: user_id=%d, score=%d, quiz_type=%s", userID, sub.Score, sub.QuizType)

	if sub.Score < 0 || sub.Score > 100 {
		return nil, errors.NewValidationError("score", "must be between 0 and 100")
	}
	if sub.QuizType == "" {
		sub.QuizType = models.QuizTypeClassique
	}
	if !models.KnownQuizType(sub.QuizType) {
		return nil, errors.NewValidationError("quiz_type", "unknown quiz type")
	}

	event := models.ScoreEvent{
		UserID:    userID,
		DeckID:    sub.DeckID,
		CardID:    sub.CardID,
		QuizType:  sub.QuizType,
		Score:     sub.Score,
		IsCorrect: sub.IsCorrect,
		TimeSpent: sub.TimeSpent,
		CreatedAt: now,
	}

	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		scoreRepo := sqlite.NewScoreRepository(tx)
		userRepo := sqlite.NewUserRepository(tx)
		cardRepo := sqlite.NewCardRepository(tx)
		deckRepo := sqlite.NewDeckRepository(tx)
		userDeckRepo := sqlite.NewUserDeckRepository(tx)

		id, err := scoreRepo.Insert(ctx, event)
		if err != nil {
			return err
		}
		event.ID = id

		if err := userRepo.ApplyScore(ctx, userID, sub.Score, sub.IsCorrect); err != nil {
			return err
		}

		if sub.CardID != nil {
			card, err := cardRepo.Get(ctx, *sub.CardID)
			if err != nil {
				return err
			}
			if card == nil {
				log.Warn("score references missing card, skipping scheduling update: card_id=%d", *sub.CardID)
			} else {
				grade := srs.GradeForScore(sub.Score)
				next := srs.Review(srs.State{
					Easiness:           card.Easiness,
					Interval:           card.Interval,
					ConsecutiveCorrect: card.ConsecutiveCorrect,
					NextReview:         card.NextReview,
				}, grade, now, s.fuzz)

				card.Easiness = next.Easiness
				card.Interval = next.Interval
				card.ConsecutiveCorrect = next.ConsecutiveCorrect
				card.NextReview = next.NextReview
				card.LastReviewedAt = &now

				// The box only moves on a clear outcome: forward for good
				// and easy reviews, back to the start on a failure. A hard
				// review leaves it where it is.
				switch {
				case grade == srs.GradeAgain:
					card.Box = 0
				case grade >= srs.GradeGood:
					card.Box++
				}

				if err := cardRepo.UpdateScheduling(ctx, *card); err != nil {
					return err
				}
			}
		}

		if sub.DeckID != nil {
			exists, err := deckRepo.Exists(ctx, *sub.DeckID)
			if err != nil {
				return err
			}
			if !exists {
				log.Warn("score references missing deck, skipping aggregate update: deck_id=%d", *sub.DeckID)
				return nil
			}

			udID, err := userDeckRepo.Ensure(ctx, userID, *sub.DeckID, now)
			if err != nil {
				return err
			}
			if err := userDeckRepo.ApplyScore(ctx, udID, sub.Score, sub.IsCorrect, sub.QuizType, now); err != nil {
				return err
			}

			cards, err := cardRepo.ListByDeck(ctx, *sub.DeckID)
			if err != nil {
				return err
			}
			if err := userDeckRepo.UpdateBuckets(ctx, udID, srs.CountBuckets(cards, now)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Error("score submission failed: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("score recorded: id=%d, user_id=%d, score=%d", event.ID, userID, sub.Score)
	return &event, nil
}

func (s *scoreService) ListScores(ctx context.Context, userID int64, limit, offset int) ([]models.ScoreEvent, error) {
	events, err := sqlite.NewScoreRepository(s.db).ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return events, nil
}

func (s *scoreService) ListDeckScores(ctx context.Context, userID, deckID int64) ([]models.ScoreEvent, error) {
	events, err := sqlite.NewScoreRepository(s.db).ListByUserDeck(ctx, userID, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return events, nil
}
