package services

import (
	"context"

	"github.com/lcharvet/flashlingo/internal/errors"
	"github.com/lcharvet/flashlingo/internal/logger"
	"github.com/lcharvet/flashlingo/internal/models"
	"github.com/lcharvet/flashlingo/internal/repository"
)

// StatsService handles user statistics
type StatsService interface {
	GetUserStats(ctx context.Context, userID int64) (*models.UserStats, error)
}

type statsService struct {
	userRepo     repository.UserRepository
	userDeckRepo repository.UserDeckRepository
	audioRepo    repository.AudioRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(userRepo repository.UserRepository, userDeckRepo repository.UserDeckRepository, audioRepo repository.AudioRepository) StatsService {
	return &statsService{userRepo: userRepo, userDeckRepo: userDeckRepo, audioRepo: audioRepo}
}

func (s *statsService) GetUserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting user stats: user_id=%d", userID)

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}

	deckCount, err := s.userDeckRepo.CountForUser(ctx, userID)
	if err != nil {
		log.Error("failed to count user decks: %v", err)
		return nil, errors.NewInternalError(err)
	}
	audioCount, err := s.audioRepo.CountForUser(ctx, userID)
	if err != nil {
		log.Error("failed to count audio records: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &models.UserStats{
		TotalScore:         user.TotalScore,
		TotalCardsLearned:  user.TotalCardsLearned,
		TotalCardsReviewed: user.TotalCardsReviewed,
		TotalDecks:         deckCount,
		TotalAudioRecords:  audioCount,
		LastLogin:          user.LastLogin,
	}, nil
}
