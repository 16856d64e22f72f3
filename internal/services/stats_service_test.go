package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lcharvet/flashlingo/internal/errors"
	"github.com/lcharvet/flashlingo/internal/models"
	"github.com/lcharvet/flashlingo/internal/services"
	"github.com/lcharvet/flashlingo/internal/testutil/mocks"
)

func TestStatsService_GetUserStats(t *testing.T) {
	ctx := context.Background()
	lastLogin := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	userRepo := new(mocks.MockUserRepository)
	userDeckRepo := new(mocks.MockUserDeckRepository)
	audioRepo := new(mocks.MockAudioRepository)
	service := services.NewStatsService(userRepo, userDeckRepo, audioRepo)

	userRepo.On("Get", mock.Anything, int64(1)).Return(&models.User{
		ID:                 1,
		TotalScore:         420,
		TotalCardsReviewed: 12,
		TotalCardsLearned:  9,
		LastLogin:          &lastLogin,
	}, nil)
	userDeckRepo.On("CountForUser", mock.Anything, int64(1)).Return(3, nil)
	audioRepo.On("CountForUser", mock.Anything, int64(1)).Return(5, nil)

	stats, err := service.GetUserStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 420, stats.TotalScore)
	assert.Equal(t, 12, stats.TotalCardsReviewed)
	assert.Equal(t, 9, stats.TotalCardsLearned)
	assert.Equal(t, 3, stats.TotalDecks)
	assert.Equal(t, 5, stats.TotalAudioRecords)
	require.NotNil(t, stats.LastLogin)
	assert.Equal(t, lastLogin, *stats.LastLogin)
}

func TestStatsService_GetUserStats_UnknownUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	userDeckRepo := new(mocks.MockUserDeckRepository)
	audioRepo := new(mocks.MockAudioRepository)
	service := services.NewStatsService(userRepo, userDeckRepo, audioRepo)

	userRepo.On("Get", mock.Anything, int64(99)).Return(nil, nil)

	_, err := service.GetUserStats(context.Background(), 99)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
	userDeckRepo.AssertNotCalled(t, "CountForUser", mock.Anything, mock.Anything)
}
