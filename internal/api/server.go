package api

import (
	"github.com/lcharvet/flashlingo/internal/auth"
	"github.com/lcharvet/flashlingo/internal/db"
	"github.com/lcharvet/flashlingo/internal/services"
)

type Server struct {
	DB         *db.DB
	Tokens     *auth.TokenIssuer
	Auth       services.AuthService
	Decks      services.DeckService
	Collection services.CollectionService
	Scores     services.ScoreService
	Stats      services.StatsService
	Audio      services.AudioService
}
