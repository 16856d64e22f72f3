package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/lcharvet/flashlingo/internal/models"
	"github.com/lcharvet/flashlingo/internal/srs"
)

// MockUserDeckRepository is a mock implementation of repository.UserDeckRepository
type MockUserDeckRepository struct {
	mock.Mock
}

func (m *MockUserDeckRepository) Add(ctx context.Context, userID, deckID int64) (*models.UserDeck, error) {
	args := m.Called(ctx, userID, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserDeck), args.Error(1)
}

func (m *MockUserDeckRepository) Get(ctx context.Context, userID, deckID int64) (*models.UserDeck, error) {
	args := m.Called(ctx, userID, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserDeck), args.Error(1)
}

func (m *MockUserDeckRepository) ListForUser(ctx context.Context, userID int64) ([]models.UserDeck, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserDeck), args.Error(1)
}

func (m *MockUserDeckRepository) ListAllDecksForUser(ctx context.Context, userID int64) ([]models.UserDeck, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserDeck), args.Error(1)
}

func (m *MockUserDeckRepository) Remove(ctx context.Context, userID, deckID int64) (bool, error) {
	args := m.Called(ctx, userID, deckID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserDeckRepository) CountForUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockUserDeckRepository) Ensure(ctx context.Context, userID, deckID int64, now time.Time) (int64, error) {
	args := m.Called(ctx, userID, deckID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserDeckRepository) ApplyScore(ctx context.Context, id int64, score int, isCorrect bool, quizType string, studiedAt time.Time) error {
	args := m.Called(ctx, id, score, isCorrect, quizType, studiedAt)
	return args.Error(0)
}

func (m *MockUserDeckRepository) UpdateBuckets(ctx context.Context, id int64, counts srs.BucketCounts) error {
	args := m.Called(ctx, id, counts)
	return args.Error(0)
}
