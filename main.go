package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kwtplay/logoquiz/internal/history"
	"github.com/kwtplay/logoquiz/internal/httpserver"
	"github.com/kwtplay/logoquiz/internal/logos"
	"github.com/kwtplay/logoquiz/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	// One-shot pool load. A failed fetch is not fatal: the server runs with
	// an empty pool and every level reports as unavailable.
	if err := logos.Init(context.Background()); err != nil {
		log.Warn().Err(err).Msg("logo pool unavailable, starting with empty pool")
	}
	total, perLevel := logos.Stats()
	log.Info().Int("total", total).Interface("perLevel", perLevel).Msg("logo pool loaded")

	// Results history is best effort too; nil disables persistence only.
	var hist *history.Store
	if db, err := openDB(getEnv("DB_PATH", "./data/results.db")); err != nil {
		log.Warn().Err(err).Msg("results db unavailable, history disabled")
	} else if err := ensureSchema(db); err != nil {
		log.Warn().Err(err).Msg("results schema bootstrap failed, history disabled")
	} else {
		hist = history.NewStore(db)
	}

	srv := httpserver.New(store.NewMemoryStore(), hist)
	port := getEnv("PORT", "5180")
	log.Info().Str("port", port).Msg("starting logoquiz server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
