package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lcharvet/flashlingo/internal/errors"
	"github.com/lcharvet/flashlingo/internal/logger"
	"github.com/lcharvet/flashlingo/internal/models"
	"github.com/lcharvet/flashlingo/internal/repository"
)

// CardInput is the payload for creating a card.
type CardInput struct {
	Front         string `json:"front"`
	Back          string `json:"back"`
	Pronunciation string `json:"pronunciation"`
	Image         string `json:"image"`
	Tags          string `json:"tags"`
}

// DeckService handles deck and card content management
type DeckService interface {
	CreateDeck(ctx context.Context, name string) (*models.Deck, error)
	GetDeck(ctx context.Context, id int64) (*models.Deck, []models.Card, error)
	ListDecks(ctx context.Context, filter models.DeckFilter) ([]models.Deck, error)
	CreateCard(ctx context.Context, deckID int64, input CardInput, now time.Time) (*models.Card, error)
	GetCard(ctx context.Context, id int64) (*models.Card, error)
	ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	UpdateCard(ctx context.Context, id int64, upd models.CardUpdate) (*models.Card, error)
	DeleteCard(ctx context.Context, id int64) error
	DueCards(ctx context.Context, userID int64, now time.Time, limit int) ([]models.Card, error)
}

type deckService struct {
	deckRepo repository.DeckRepository
	cardRepo repository.CardRepository
}

// NewDeckService creates a new DeckService
func NewDeckService(deckRepo repository.DeckRepository, cardRepo repository.CardRepository) DeckService {
	return &deckService{deckRepo: deckRepo, cardRepo: cardRepo}
}

func (s *deckService) CreateDeck(ctx context.Context, name string) (*models.Deck, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "must not be empty")
	}

	deck := models.Deck{PublicID: uuid.NewString(), Name: name}
	id, err := s.deckRepo.Insert(ctx, deck)
	if err != nil {
		log.Error("failed to create deck: %v", err)
		return nil, errors.NewInternalError(err)
	}

	created, err := s.deckRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Info("deck created: id=%d, name=%s", id, name)
	return created, nil
}

func (s *deckService) GetDeck(ctx context.Context, id int64) (*models.Deck, []models.Card, error) {
	deck, err := s.deckRepo.Get(ctx, id)
	if err != nil {
		return nil, nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, nil, errors.NewNotFoundError("deck", id)
	}

	cards, err := s.cardRepo.ListByDeck(ctx, id)
	if err != nil {
		return nil, nil, errors.NewInternalError(err)
	}
	return deck, cards, nil
}

func (s *deckService) ListDecks(ctx context.Context, filter models.DeckFilter) ([]models.Deck, error) {
	decks, err := s.deckRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

func (s *deckService) CreateCard(ctx context.Context, deckID int64, input CardInput, now time.Time) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating card: deck_id=%d", deckID)

	if strings.TrimSpace(input.Front) == "" {
		return nil, errors.NewValidationError("front", "must not be empty")
	}
	if strings.TrimSpace(input.Back) == "" {
		return nil, errors.NewValidationError("back", "must not be empty")
	}

	exists, err := s.deckRepo.Exists(ctx, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if !exists {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	tags := input.Tags
	if tags == "" {
		tags = "[]"
	}

	// New cards start unscheduled with a first review one day out.
	card := models.Card{
		PublicID:      uuid.NewString(),
		DeckID:        deckID,
		Front:         input.Front,
		Back:          input.Back,
		Pronunciation: input.Pronunciation,
		Image:         input.Image,
		Tags:          tags,
		Easiness:      models.DefaultEasiness,
		NextReview:    now.AddDate(0, 0, 1),
	}
	id, err := s.cardRepo.Insert(ctx, card)
	if err != nil {
		log.Error("failed to create card: %v", err)
		return nil, errors.NewInternalError(err)
	}

	created, err := s.cardRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return created, nil
}

func (s *deckService) GetCard(ctx context.Context, id int64) (*models.Card, error) {
	card, err := s.cardRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", id)
	}
	return card, nil
}

func (s *deckService) ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	cards, err := s.cardRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *deckService) UpdateCard(ctx context.Context, id int64, upd models.CardUpdate) (*models.Card, error) {
	log := logger.FromContext(ctx)

	found, err := s.cardRepo.UpdateContent(ctx, id, upd)
	if err != nil {
		log.Error("failed to update card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if !found {
		return nil, errors.NewNotFoundError("card", id)
	}
	return s.cardRepo.Get(ctx, id)
}

func (s *deckService) DeleteCard(ctx context.Context, id int64) error {
	deleted, err := s.cardRepo.Delete(ctx, id)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if !deleted {
		return errors.NewNotFoundError("card", id)
	}
	return nil
}

func (s *deckService) DueCards(ctx context.Context, userID int64, now time.Time, limit int) ([]models.Card, error) {
	cards, err := s.cardRepo.DueForUser(ctx, userID, now, limit)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}
