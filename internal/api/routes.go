package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/register", s.handleRegister)
		r.Post("/users/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/users/me", s.handleMe)
			r.Put("/users/me", s.handleUpdateProfile)
			r.Post("/users/logout", s.handleLogout)
			r.Get("/users/stats", s.handleUserStats)
			r.Get("/users/scores", s.handleListScores)
			r.Post("/users/scores", s.handleSubmitScore)
			r.Get("/users/scores/deck/{deckID}", s.handleListDeckScores)
			r.Get("/users/decks", s.handleListUserDecks)
			r.Get("/users/decks/all", s.handleListAllDecks)
			r.Post("/users/decks/{deckID}", s.handleAddUserDeck)
			r.Delete("/users/decks/{deckID}", s.handleRemoveUserDeck)
			r.Get("/users/cards/due", s.handleDueCards)
			r.Post("/users/audio", s.handleCreateAudio)
			r.Get("/users/audio", s.handleListAudio)
			r.Delete("/users/audio/{audioID}", s.handleDeleteAudio)
			r.Get("/users/{userID}", s.handleGetUser)

			r.Post("/decks", s.handleCreateDeck)
			r.Get("/decks", s.handleListDecks)
			r.Get("/decks/{deckID}", s.handleGetDeck)
			r.Post("/cards", s.handleCreateCard)
			r.Get("/cards", s.handleListCards)
			r.Get("/cards/{cardID}", s.handleGetCard)
			r.Put("/cards/{cardID}", s.handleUpdateCard)
			r.Delete("/cards/{cardID}", s.handleDeleteCard)
		})
	})

	return r
}
