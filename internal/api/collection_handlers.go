package api

import (
	"net/http"

	"github.com/lcharvet/flashlingo/internal/logger"
)

func (s *Server) handleListUserDecks(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	decks, err := s.Collection.ListDecks(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newUserDeckResponses(decks))
}

func (s *Server) handleListAllDecks(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	decks, err := s.Collection.ListAllDecks(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newUserDeckResponses(decks))
}

func (s *Server) handleAddUserDeck(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	deckID, err := pathID(r, "deckID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	ud, err := s.Collection.AddDeck(r.Context(), userID, deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("deck added to collection: deck_id=%d", deckID)
	respondJSON(w, http.StatusCreated, newUserDeckResponse(*ud))
}

func (s *Server) handleRemoveUserDeck(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	deckID, err := pathID(r, "deckID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Collection.RemoveDeck(r.Context(), userID, deckID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "deck removed from collection"})
}
