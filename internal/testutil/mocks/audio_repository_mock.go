package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lcharvet/flashlingo/internal/models"
)

// MockAudioRepository is a mock implementation of repository.AudioRepository
type MockAudioRepository struct {
	mock.Mock
}

func (m *MockAudioRepository) Insert(ctx context.Context, audio models.UserAudio) (int64, error) {
	args := m.Called(ctx, audio)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAudioRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.UserAudio, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserAudio), args.Error(1)
}

func (m *MockAudioRepository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAudioRepository) CountForUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
