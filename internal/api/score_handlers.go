package api

import (
	"net/http"
	"time"

	"github.com/lcharvet/flashlingo/internal/models"
)

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var sub models.ScoreSubmission
	if err := decodeJSON(r, &sub); err != nil {
		handleError(w, r, err)
		return
	}

	event, err := s.Scores.SubmitScore(r.Context(), userID, sub, time.Now().UTC())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, event)
}

func (s *Server) handleListScores(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	events, err := s.Scores.ListScores(r.Context(), userID, limit, offset)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

func (s *Server) handleListDeckScores(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	deckID, err := pathID(r, "deckID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	events, err := s.Scores.ListDeckScores(r.Context(), userID, deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}
