package services

import (
	"context"
	"strings"

	"github.com/lcharvet/flashlingo/internal/errors"
	"github.com/lcharvet/flashlingo/internal/logger"
	"github.com/lcharvet/flashlingo/internal/models"
	"github.com/lcharvet/flashlingo/internal/repository"
)

// AudioInput is the payload for recording an audio attempt.
type AudioInput struct {
	CardID       *int64 `json:"card_pk"`
	Filename     string `json:"filename"`
	AudioURL     string `json:"audio_url"`
	Duration     *int   `json:"duration"`
	QualityScore *int   `json:"quality_score"`
	Notes        string `json:"notes"`
}

// AudioService handles user audio records
type AudioService interface {
	Create(ctx context.Context, userID int64, input AudioInput) (*models.UserAudio, error)
	List(ctx context.Context, userID int64, limit, offset int) ([]models.UserAudio, error)
	Delete(ctx context.Context, id, userID int64) error
}

type audioService struct {
	audioRepo repository.AudioRepository
	cardRepo  repository.CardRepository
}

// NewAudioService creates a new AudioService
func NewAudioService(audioRepo repository.AudioRepository, cardRepo repository.CardRepository) AudioService {
	return &audioService{audioRepo: audioRepo, cardRepo: cardRepo}
}

func (s *audioService) Create(ctx context.Context, userID int64, input AudioInput) (*models.UserAudio, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating audio record: user_id=%d, filename=%s", userID, input.Filename)

	if strings.TrimSpace(input.Filename) == "" {
		return nil, errors.NewValidationError("filename", "must not be empty")
	}
	if strings.TrimSpace(input.AudioURL) == "" {
		return nil, errors.NewValidationError("audio_url", "must not be empty")
	}
	if input.QualityScore != nil && (*input.QualityScore < 0 || *input.QualityScore > 100) {
		return nil, errors.NewValidationError("quality_score", "must be between 0 and 100")
	}

	if input.CardID != nil {
		card, err := s.cardRepo.Get(ctx, *input.CardID)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
		if card == nil {
			return nil, errors.NewNotFoundError("card", *input.CardID)
		}
	}

	audio := models.UserAudio{
		UserID:       userID,
		CardID:       input.CardID,
		Filename:     input.Filename,
		AudioURL:     input.AudioURL,
		Duration:     input.Duration,
		QualityScore: input.QualityScore,
		Notes:        input.Notes,
	}
	id, err := s.audioRepo.Insert(ctx, audio)
	if err != nil {
		log.Error("failed to insert audio record: %v", err)
		return nil, errors.NewInternalError(err)
	}
	audio.ID = id
	return &audio, nil
}

func (s *audioService) List(ctx context.Context, userID int64, limit, offset int) ([]models.UserAudio, error) {
	records, err := s.audioRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return records, nil
}

func (s *audioService) Delete(ctx context.Context, id, userID int64) error {
	deleted, err := s.audioRepo.Delete(ctx, id, userID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if !deleted {
		return errors.NewNotFoundError("audio record", id)
	}
	return nil
}
