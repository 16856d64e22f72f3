package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/lcharvet/flashlingo/internal/models"
	"github.com/lcharvet/flashlingo/internal/repository"
	"github.com/lcharvet/flashlingo/internal/repository/sqlite"
	"github.com/lcharvet/flashlingo/internal/testutil"
)

type CardRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.CardRepository
}

func (s *CardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCardRepository(s.db)
}

func (s *CardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CardRepositorySuite) setupDeck(publicID string) int64 {
	ctx := context.Background()
	res, err := s.db.ExecContext(ctx, `INSERT INTO decks (public_id, name) VALUES (?, ?)`, publicID, "Vocabulaire")
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *CardRepositorySuite) insertCard(deckID int64, front, back string, nextReview time.Time) int64 {
	id, err := s.repo.Insert(context.Background(), models.Card{
		PublicID:   front + "-pub",
		DeckID:     deckID,
		Front:      front,
		Back:       back,
		Tags:       "[]",
		Easiness:   models.DefaultEasiness,
		NextReview: nextReview,
	})
	s.Require().NoError(err)
	return id
}

func (s *CardRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	deckID := s.setupDeck("deck-1")
	now := time.Now().UTC()

	id := s.insertCard(deckID, "chien", "dog", now.AddDate(0, 0, 1))
	s.Assert().Greater(id, int64(0))

	card, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(card)
	s.Assert().Equal("chien", card.Front)
	s.Assert().Equal("dog", card.Back)
	s.Assert().Equal(models.DefaultEasiness, card.Easiness)
	s.Assert().Equal(0, card.Interval)
	s.Assert().Nil(card.LastReviewedAt)
}

func (s *CardRepositorySuite) TestGetMissingReturnsNil() {
	card, err := s.repo.Get(context.Background(), 9999)
	s.Require().NoError(err)
	s.Assert().Nil(card)
}

func (s *CardRepositorySuite) TestListFilters() {
	ctx := context.Background()
	deckID := s.setupDeck("deck-1")
	otherDeckID := s.setupDeck("deck-2")
	now := time.Now().UTC()

	s.insertCard(deckID, "chien", "dog", now.Add(-time.Hour))
	s.insertCard(deckID, "chat", "cat", now.Add(24*time.Hour))
	s.insertCard(otherDeckID, "chienne", "dog (f)", now.Add(-time.Hour))

	byDeck, err := s.repo.List(ctx, models.CardFilter{DeckID: deckID})
	s.Require().NoError(err)
	s.Assert().Len(byDeck, 2)

	bySearch, err := s.repo.List(ctx, models.CardFilter{Search: "chien"})
	s.Require().NoError(err)
	s.Assert().Len(bySearch, 2)

	due, err := s.repo.List(ctx, models.CardFilter{DeckID: deckID, DueOnly: true, DueAt: now})
	s.Require().NoError(err)
	s.Require().Len(due, 1)
	s.Assert().Equal("chien", due[0].Front)
}

func (s *CardRepositorySuite) TestListMinBox() {
	ctx := context.Background()
	deckID := s.setupDeck("deck-1")
	now := time.Now().UTC()

	id := s.insertCard(deckID, "chien", "dog", now)
	s.insertCard(deckID, "chat", "cat", now)

	_, err := s.db.ExecContext(ctx, `UPDATE cards SET box = 3 WHERE id = ?`, id)
	s.Require().NoError(err)

	minBox := 2
	cards, err := s.repo.List(ctx, models.CardFilter{DeckID: deckID, MinBox: &minBox})
	s.Require().NoError(err)
	s.Require().Len(cards, 1)
	s.Assert().Equal("chien", cards[0].Front)
}

func (s *CardRepositorySuite) TestUpdateContent() {
	ctx := context.Background()
	deckID := s.setupDeck("deck-1")
	id := s.insertCard(deckID, "chien", "dog", time.Now().UTC())

	newBack := "dog, hound"
	updated, err := s.repo.UpdateContent(ctx, id, models.CardUpdate{Back: &newBack})
	s.Require().NoError(err)
	s.Assert().True(updated)

	card, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal("chien", card.Front)
	s.Assert().Equal("dog, hound", card.Back)

	updated, err = s.repo.UpdateContent(ctx, 9999, models.CardUpdate{Back: &newBack})
	s.Require().NoError(err)
	s.Assert().False(updated)
}

func (s *CardRepositorySuite) TestUpdateScheduling() {
	ctx := context.Background()
	deckID := s.setupDeck("deck-1")
	now := time.Now().UTC().Truncate(time.Second)
	id := s.insertCard(deckID, "chien", "dog", now)

	card, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)

	card.Box = 1
	card.Easiness = 2.6
	card.Interval = 6
	card.ConsecutiveCorrect = 2
	card.LastReviewedAt = &now
	card.NextReview = now.AddDate(0, 0, 6)

	s.Require().NoError(s.repo.UpdateScheduling(ctx, *card))

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal(1, got.Box)
	s.Assert().Equal(2.6, got.Easiness)
	s.Assert().Equal(6, got.Interval)
	s.Assert().Equal(2, got.ConsecutiveCorrect)
	s.Require().NotNil(got.LastReviewedAt)
	s.Assert().WithinDuration(now, *got.LastReviewedAt, time.Second)
	s.Assert().WithinDuration(now.AddDate(0, 0, 6), got.NextReview, time.Second)
}

func (s *CardRepositorySuite) TestDueForUser() {
	ctx := context.Background()
	deckID := s.setupDeck("deck-1")
	strayDeckID := s.setupDeck("deck-2")
	now := time.Now().UTC()

	s.insertCard(deckID, "chien", "dog", now.Add(-2*time.Hour))
	s.insertCard(deckID, "chat", "cat", now.Add(-time.Hour))
	s.insertCard(deckID, "oiseau", "bird", now.Add(24*time.Hour))
	s.insertCard(strayDeckID, "cheval", "horse", now.Add(-time.Hour))

	_, err := s.db.ExecContext(ctx, `INSERT INTO users (email, username) VALUES (?, ?)`, "a@b.c", "alice")
	s.Require().NoError(err)
	_, err = s.db.ExecContext(ctx, `INSERT INTO user_decks (user_id, deck_id) VALUES (1, ?)`, deckID)
	s.Require().NoError(err)

	due, err := s.repo.DueForUser(ctx, 1, now, 10)
	s.Require().NoError(err)
	s.Require().Len(due, 2)
	s.Assert().Equal("chien", due[0].Front)
	s.Assert().Equal("chat", due[1].Front)
}

func (s *CardRepositorySuite) TestDelete() {
	ctx := context.Background()
	deckID := s.setupDeck("deck-1")
	id := s.insertCard(deckID, "chien", "dog", time.Now().UTC())

	deleted, err := s.repo.Delete(ctx, id)
	s.Require().NoError(err)
	s.Assert().True(deleted)

	deleted, err = s.repo.Delete(ctx, id)
	s.Require().NoError(err)
	s.Assert().False(deleted)
}

func TestCardRepositorySuite(t *testing.T) {
	suite.Run(t, new(CardRepositorySuite))
}
