package services

import (
	"context"

	"github.com/lcharvet/flashlingo/internal/errors"
	"github.com/lcharvet/flashlingo/internal/logger"
	"github.com/lcharvet/flashlingo/internal/models"
	"github.com/lcharvet/flashlingo/internal/repository"
)

// CollectionService handles the user's personal deck collection
type CollectionService interface {
	AddDeck(ctx context.Context, userID, deckID int64) (*models.UserDeck, error)
	RemoveDeck(ctx context.Context, userID, deckID int64) error
	GetDeck(ctx context.Context, userID, deckID int64) (*models.UserDeck, error)
	ListDecks(ctx context.Context, userID int64) ([]models.UserDeck, error)
	ListAllDecks(ctx context.Context, userID int64) ([]models.UserDeck, error)
}

type collectionService struct {
	deckRepo     repository.DeckRepository
	userDeckRepo repository.UserDeckRepository
}

// NewCollectionService creates a new CollectionService
func NewCollectionService(deckRepo repository.DeckRepository, userDeckRepo repository.UserDeckRepository) CollectionService {
	return &collectionService{deckRepo: deckRepo, userDeckRepo: userDeckRepo}
}

func (s *collectionService) AddDeck(ctx context.Context, userID, deckID int64) (*models.UserDeck, error) {
	log := logger.FromContext(ctx)
	log.Debug("adding deck to collection: user_id=%d, deck_id=%d", userID, deckID)

	exists, err := s.deckRepo.Exists(ctx, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if !exists {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	existing, err := s.userDeckRepo.Get(ctx, userID, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("deck already in collection")
	}

	ud, err := s.userDeckRepo.Add(ctx, userID, deckID)
	if err != nil {
		log.Error("failed to add deck to collection: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("deck added to collection: user_id=%d, deck_id=%d", userID, deckID)
	return ud, nil
}

func (s *collectionService) RemoveDeck(ctx context.Context, userID, deckID int64) error {
	removed, err := s.userDeckRepo.Remove(ctx, userID, deckID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if !removed {
		return errors.NewNotFoundError("deck", deckID)
	}
	return nil
}

func (s *collectionService) GetDeck(ctx context.Context, userID, deckID int64) (*models.UserDeck, error) {
	ud, err := s.userDeckRepo.Get(ctx, userID, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if ud == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}
	return ud, nil
}

func (s *collectionService) ListDecks(ctx context.Context, userID int64) ([]models.UserDeck, error) {
	decks, err := s.userDeckRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

func (s *collectionService) ListAllDecks(ctx context.Context, userID int64) ([]models.UserDeck, error) {
	decks, err := s.userDeckRepo.ListAllDecksForUser(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}
