package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lcharvet/flashlingo/internal/errors"
	"github.com/lcharvet/flashlingo/internal/models"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body")
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewBadRequestError("invalid " + name)
	}
	return id, nil
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// userDeckResponse is the wire shape of a collection aggregate. The per-type
// point fields and the derived progress and success rate are computed at
// serialization time.
type userDeckResponse struct {
	models.UserDeck

	PointsFrappe      int `json:"points_frappe"`
	PointsAssociation int `json:"points_association"`
	PointsQCM         int `json:"points_qcm"`
	PointsClassique   int `json:"points_classique"`

	Progress    float64 `json:"progress"`
	SuccessRate float64 `json:"success_rate"`
}

func newUserDeckResponse(ud models.UserDeck) userDeckResponse {
	return userDeckResponse{
		UserDeck:          ud,
		PointsFrappe:      ud.PointsFor(models.QuizTypeFrappe),
		PointsAssociation: ud.PointsFor(models.QuizTypeAssociation),
		PointsQCM:         ud.PointsFor(models.QuizTypeQCM),
		PointsClassique:   ud.PointsFor(models.QuizTypeClassique),
		Progress:          ud.Progress(),
		SuccessRate:       ud.SuccessRate(),
	}
}

func newUserDeckResponses(decks []models.UserDeck) []userDeckResponse {
	out := make([]userDeckResponse, 0, len(decks))
	for _, ud := range decks {
		out = append(out, newUserDeckResponse(ud))
	}
	return out
}
