package api

import (
	"net/http"

	"github.com/lcharvet/flashlingo/internal/errors"
	"github.com/lcharvet/flashlingo/internal/logger"
	"github.com/lcharvet/flashlingo/internal/models"
	"github.com/lcharvet/flashlingo/internal/services"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.Auth.Register(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	user, token, err := s.Auth.Login(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

// handleLogout exists for client symmetry. Bearer tokens are stateless, so
// there is nothing to revoke server-side; clients drop the token.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	logger.FromContext(r.Context()).Debug("logout")
	respondJSON(w, http.StatusOK, map[string]any{"message": "logged out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	user, err := s.Auth.GetUser(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var upd models.UserUpdate
	if err := decodeJSON(r, &upd); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.Auth.UpdateProfile(r.Context(), userID, upd)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// handleGetUser returns another user's public profile.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.Auth.GetUser(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if !user.IsActive {
		handleError(w, r, errors.NewNotFoundError("user", id))
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"user_pk":         user.ID,
		"username":        user.Username,
		"first_name":      user.FirstName,
		"last_name":       user.LastName,
		"bio":             user.Bio,
		"profile_picture": user.ProfilePicture,
	})
}

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	stats, err := s.Stats.GetUserStats(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
