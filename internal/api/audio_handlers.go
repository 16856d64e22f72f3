package api

import (
	"net/http"

	"github.com/lcharvet/flashlingo/internal/services"
)

func (s *Server) handleCreateAudio(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var input services.AudioInput
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	audio, err := s.Audio.Create(r.Context(), userID, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, audio)
}

func (s *Server) handleListAudio(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	records, err := s.Audio.List(r.Context(), userID, limit, offset)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (s *Server) handleDeleteAudio(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	id, err := pathID(r, "audioID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Audio.Delete(r.Context(), id, userID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "audio record deleted"})
}
