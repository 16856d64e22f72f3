package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/lcharvet/flashlingo/internal/logger"
	"github.com/lcharvet/flashlingo/internal/models"
	"github.com/lcharvet/flashlingo/internal/services"
)

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.Decks.CreateDeck(r.Context(), input.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, deck)
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	filter := models.DeckFilter{
		Search: r.URL.Query().Get("search"),
		Limit:  queryInt(r, "limit", 10),
		Offset: queryInt(r, "skip", 0),
	}

	decks, err := s.Decks.ListDecks(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, decks)
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "deckID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	deck, cards, err := s.Decks.GetDeck(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"deck_pk":    deck.ID,
		"id_json":    deck.PublicID,
		"name":       deck.Name,
		"created_at": deck.CreatedAt,
		"cards":      cards,
	})
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var input struct {
		DeckID int64 `json:"deck_pk"`
		services.CardInput
	}
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Decks.CreateCard(r.Context(), input.DeckID, input.CardInput, time.Now().UTC())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, card)
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.CardFilter{
		Search: q.Get("search"),
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "skip", 0),
	}
	if raw := q.Get("deck_pk"); raw != "" {
		deckID, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			filter.DeckID = deckID
		}
	}
	if raw := q.Get("min_box"); raw != "" {
		if minBox, err := strconv.Atoi(raw); err == nil {
			filter.MinBox = &minBox
		}
	}
	if q.Get("due_only") == "true" {
		filter.DueOnly = true
		filter.DueAt = time.Now().UTC()
	}

	cards, err := s.Decks.ListCards(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Decks.GetCard(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var upd models.CardUpdate
	if err := decodeJSON(r, &upd); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Decks.UpdateCard(r.Context(), id, upd)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "cardID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Decks.DeleteCard(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("card deleted: id=%d", id)
	respondJSON(w, http.StatusOK, map[string]any{"message": "card deleted"})
}

func (s *Server) handleDueCards(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	limit := queryInt(r, "limit", 50)

	cards, err := s.Decks.DueCards(r.Context(), userID, time.Now().UTC(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cards)
}
