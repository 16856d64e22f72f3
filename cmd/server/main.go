package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lcharvet/flashlingo/internal/api"
	"github.com/lcharvet/flashlingo/internal/auth"
	"github.com/lcharvet/flashlingo/internal/config"
	"github.com/lcharvet/flashlingo/internal/db"
	"github.com/lcharvet/flashlingo/internal/logger"
	"github.com/lcharvet/flashlingo/internal/repository/sqlite"
	"github.com/lcharvet/flashlingo/internal/services"
	"github.com/lcharvet/flashlingo/internal/srs"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Flashlingo Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("token_ttl_minutes=%d", cfg.TokenTTLMinutes)
	log.Debug("bcrypt_cost=%d", cfg.BcryptCost)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)

	userRepo := sqlite.NewUserRepository(database)
	deckRepo := sqlite.NewDeckRepository(database)
	cardRepo := sqlite.NewCardRepository(database)
	userDeckRepo := sqlite.NewUserDeckRepository(database)
	audioRepo := sqlite.NewAudioRepository(database)

	srv := &api.Server{
		DB:         database,
		Tokens:     tokens,
		Auth:       services.NewAuthService(userRepo, tokens, cfg.BcryptCost),
		Decks:      services.NewDeckService(deckRepo, cardRepo),
		Collection: services.NewCollectionService(deckRepo, userDeckRepo),
		Scores:     services.NewScoreService(database, srs.DefaultFuzzer()),
		Stats:      services.NewStatsService(userRepo, userDeckRepo, audioRepo),
		Audio:      services.NewAudioService(audioRepo, cardRepo),
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("Flashlingo Server Stopped")
	log.Info("===========================================")
}
