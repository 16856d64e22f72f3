package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/lcharvet/flashlingo/internal/db"
	apperrors "github.com/lcharvet/flashlingo/internal/errors"
	"github.com/lcharvet/flashlingo/internal/models"
	"github.com/lcharvet/flashlingo/internal/repository"
	"github.com/lcharvet/flashlingo/internal/repository/sqlite"
	"github.com/lcharvet/flashlingo/internal/services"
)

// fixedFuzzer pins interval fuzzing so scheduling outcomes are exact.
type fixedFuzzer struct{ value float64 }

func (f fixedFuzzer) Uniform(lo, hi float64) float64 { return f.value }

type ScoreServiceSuite struct {
	suite.Suite
	db      *db.DB
	service services.ScoreService

	userRepo     repository.UserRepository
	cardRepo     repository.CardRepository
	userDeckRepo repository.UserDeckRepository

	userID int64
	deckID int64
	cardID int64
	now    time.Time
}

func (s *ScoreServiceSuite) SetupTest() {
	var err error
	s.db, err = db.Open(":memory:")
	s.Require().NoError(err)

	s.service = services.NewScoreService(s.db, fixedFuzzer{value: 1.0})
	s.userRepo = sqlite.NewUserRepository(s.db)
	s.cardRepo = sqlite.NewCardRepository(s.db)
	s.userDeckRepo = sqlite.NewUserDeckRepository(s.db)

	ctx := context.Background()
	s.now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	s.userID, err = s.userRepo.Insert(ctx, models.User{
		Email: "a@b.c", Username: "alice", IsActive: true,
	})
	s.Require().NoError(err)

	deckRepo := sqlite.NewDeckRepository(s.db)
	s.deckID, err = deckRepo.Insert(ctx, models.Deck{PublicID: "deck-1", Name: "Vocabulaire"})
	s.Require().NoError(err)

	s.cardID, err = s.cardRepo.Insert(ctx, models.Card{
		PublicID:   "card-1",
		DeckID:     s.deckID,
		Front:      "chien",
		Back:       "dog",
		Tags:       "[]",
		Easiness:   models.DefaultEasiness,
		NextReview: s.now.AddDate(0, 0, 1),
	})
	s.Require().NoError(err)
}

func (s *ScoreServiceSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

func (s *ScoreServiceSuite) submit(sub models.ScoreSubmission) *models.ScoreEvent {
	event, err := s.service.SubmitScore(context.Background(), s.userID, sub, s.now)
	s.Require().NoError(err)
	s.Require().NotNil(event)
	return event
}

func (s *ScoreServiceSuite) TestRejectsInvalidScore() {
	for _, score := range []int{-1, 101, 500} {
		_, err := s.service.SubmitScore(context.Background(), s.userID,
			models.ScoreSubmission{Score: score, QuizType: models.QuizTypeQCM}, s.now)
		s.Require().Error(err)
		appErr, ok := err.(*apperrors.AppError)
		s.Require().True(ok)
		s.Assert().Equal(apperrors.ErrCodeValidation, appErr.Code)
	}
}

func (s *ScoreServiceSuite) TestRejectsUnknownQuizType() {
	_, err := s.service.SubmitScore(context.Background(), s.userID,
		models.ScoreSubmission{Score: 80, QuizType: "dictee"}, s.now)
	s.Require().Error(err)
	appErr, ok := err.(*apperrors.AppError)
	s.Require().True(ok)
	s.Assert().Equal(apperrors.ErrCodeValidation, appErr.Code)
}

func (s *ScoreServiceSuite) TestEmptyQuizTypeDefaultsToClassique() {
	event := s.submit(models.ScoreSubmission{Score: 60, IsCorrect: true})
	s.Assert().Equal(models.QuizTypeClassique, event.QuizType)
}

func (s *ScoreServiceSuite) TestFullSubmission() {
	ctx := context.Background()
	event := s.submit(models.ScoreSubmission{
		DeckID:    &s.deckID,
		CardID:    &s.cardID,
		Score:     95,
		IsCorrect: true,
		QuizType:  models.QuizTypeQCM,
	})
	s.Assert().Greater(event.ID, int64(0))
	s.Assert().Equal(s.now, event.CreatedAt)

	// User lifetime totals
	user, err := s.userRepo.Get(ctx, s.userID)
	s.Require().NoError(err)
	s.Assert().Equal(95, user.TotalScore)
	s.Assert().Equal(1, user.TotalCardsReviewed)
	s.Assert().Equal(1, user.TotalCardsLearned)

	// Card scheduling: first successful review of a fresh card
	card, err := s.cardRepo.Get(ctx, s.cardID)
	s.Require().NoError(err)
	s.Assert().Equal(2.6, card.Easiness)
	s.Assert().Equal(1, card.Interval)
	s.Assert().Equal(1, card.ConsecutiveCorrect)
	s.Assert().Equal(1, card.Box)
	s.Require().NotNil(card.LastReviewedAt)
	s.Assert().WithinDuration(s.now, *card.LastReviewedAt, time.Second)
	s.Assert().WithinDuration(s.now.AddDate(0, 0, 1), card.NextReview, time.Second)

	// Lazily created deck aggregate
	ud, err := s.userDeckRepo.Get(ctx, s.userID, s.deckID)
	s.Require().NoError(err)
	s.Require().NotNil(ud)
	s.Assert().Equal(95, ud.TotalPoints)
	s.Assert().Equal(1, ud.TotalAttempts)
	s.Assert().Equal(1, ud.SuccessfulAttempts)
	s.Assert().Equal(95, ud.PointsFor(models.QuizTypeQCM))
	s.Require().NotNil(ud.LastStudied)

	// The reviewed card now sits one day out, so it counts as mastered
	s.Assert().Equal(1, ud.MasteredCards)
	s.Assert().Equal(0, ud.LearningCards)
	s.Assert().Equal(0, ud.ReviewCards)
}

func (s *ScoreServiceSuite) TestFailedReviewResetsCard() {
	ctx := context.Background()
	s.submit(models.ScoreSubmission{
		DeckID: &s.deckID, CardID: &s.cardID, Score: 30, IsCorrect: false, QuizType: models.QuizTypeFrappe,
	})

	card, err := s.cardRepo.Get(ctx, s.cardID)
	s.Require().NoError(err)
	s.Assert().Equal(2.3, card.Easiness)
	s.Assert().Equal(0, card.Interval)
	s.Assert().Equal(0, card.ConsecutiveCorrect)
	s.Assert().Equal(0, card.Box)
	s.Assert().WithinDuration(s.now.Add(10*time.Minute), card.NextReview, time.Second)

	ud, err := s.userDeckRepo.Get(ctx, s.userID, s.deckID)
	s.Require().NoError(err)
	s.Assert().Equal(1, ud.TotalAttempts)
	s.Assert().Equal(0, ud.SuccessfulAttempts)

	// Card due 10 minutes out with interval 0 is relearning
	s.Assert().Equal(1, ud.LearningCards)
	s.Assert().Equal(0, ud.MasteredCards)
}

func (s *ScoreServiceSuite) TestHardReviewKeepsBox() {
	ctx := context.Background()
	s.submit(models.ScoreSubmission{
		DeckID: &s.deckID, CardID: &s.cardID, Score: 60, IsCorrect: true, QuizType: models.QuizTypeQCM,
	})

	card, err := s.cardRepo.Get(ctx, s.cardID)
	s.Require().NoError(err)
	s.Assert().Equal(0, card.Box)
	s.Assert().Equal(1, card.Interval)
	s.Assert().Equal(1, card.ConsecutiveCorrect)
}

func (s *ScoreServiceSuite) TestMissingCardStillRecordsEvent() {
	ctx := context.Background()
	missing := int64(9999)
	event := s.submit(models.ScoreSubmission{
		DeckID: &s.deckID, CardID: &missing, Score: 80, IsCorrect: true, QuizType: models.QuizTypeQCM,
	})
	s.Assert().Greater(event.ID, int64(0))

	user, err := s.userRepo.Get(ctx, s.userID)
	s.Require().NoError(err)
	s.Assert().Equal(80, user.TotalScore)

	ud, err := s.userDeckRepo.Get(ctx, s.userID, s.deckID)
	s.Require().NoError(err)
	s.Require().NotNil(ud)
	s.Assert().Equal(80, ud.TotalPoints)
}

func (s *ScoreServiceSuite) TestMissingDeckStillRecordsEvent() {
	ctx := context.Background()
	missing := int64(9999)
	event := s.submit(models.ScoreSubmission{
		DeckID: &missing, CardID: &s.cardID, Score: 80, IsCorrect: true, QuizType: models.QuizTypeQCM,
	})
	s.Assert().Greater(event.ID, int64(0))

	user, err := s.userRepo.Get(ctx, s.userID)
	s.Require().NoError(err)
	s.Assert().Equal(80, user.TotalScore)

	// Card scheduling still applied even though the deck was gone
	card, err := s.cardRepo.Get(ctx, s.cardID)
	s.Require().NoError(err)
	s.Assert().Equal(1, card.Interval)
}

func (s *ScoreServiceSuite) TestPointsAccumulatePerQuizType() {
	ctx := context.Background()
	s.submit(models.ScoreSubmission{DeckID: &s.deckID, Score: 70, IsCorrect: true, QuizType: models.QuizTypeQCM})
	s.submit(models.ScoreSubmission{DeckID: &s.deckID, Score: 90, IsCorrect: true, QuizType: models.QuizTypeQCM})
	s.submit(models.ScoreSubmission{DeckID: &s.deckID, Score: 40, IsCorrect: false, QuizType: models.QuizTypeFrappe})

	ud, err := s.userDeckRepo.Get(ctx, s.userID, s.deckID)
	s.Require().NoError(err)
	s.Assert().Equal(200, ud.TotalPoints)
	s.Assert().Equal(3, ud.TotalAttempts)
	s.Assert().Equal(2, ud.SuccessfulAttempts)
	s.Assert().Equal(160, ud.PointsFor(models.QuizTypeQCM))
	s.Assert().Equal(40, ud.PointsFor(models.QuizTypeFrappe))

	s.Assert().Equal(66.67, ud.SuccessRate())
}

func (s *ScoreServiceSuite) TestHistory() {
	s.submit(models.ScoreSubmission{DeckID: &s.deckID, Score: 70, IsCorrect: true, QuizType: models.QuizTypeQCM})
	s.submit(models.ScoreSubmission{Score: 50, IsCorrect: false, QuizType: models.QuizTypeClassique})

	all, err := s.service.ListScores(context.Background(), s.userID, 10, 0)
	s.Require().NoError(err)
	s.Assert().Len(all, 2)

	byDeck, err := s.service.ListDeckScores(context.Background(), s.userID, s.deckID)
	s.Require().NoError(err)
	s.Require().Len(byDeck, 1)
	s.Assert().Equal(70, byDeck[0].Score)
}

func TestScoreServiceSuite(t *testing.T) {
	suite.Run(t, new(ScoreServiceSuite))
}
