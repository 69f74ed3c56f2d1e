package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Melissportakall/WordGameAPP/internal/game"
	"github.com/Melissportakall/WordGameAPP/internal/httpserver"
	"github.com/Melissportakall/WordGameAPP/internal/match"
	"github.com/Melissportakall/WordGameAPP/internal/notify"
	"github.com/Melissportakall/WordGameAPP/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := createSchema(db); err != nil {
		log.Fatal().Err(err).Msg("failed to create schema")
	}

	sessions := store.NewSQLiteStore(db)
	hub := notify.NewHub()

	queue := match.NewQueue(sessions, func(ctx context.Context, initiator, opponent string, mode game.Mode) (*game.Session, error) {
		sess := game.NewSession(initiator, opponent, mode)
		if err := sessions.CreateSession(ctx, sess); err != nil {
			return nil, err
		}
		return sess, nil
	})
	if secs := envInt("MATCH_TIMEOUT_SECONDS", 15); secs > 0 {
		queue.SetTimeout(time.Duration(secs) * time.Second)
	}

	srv := httpserver.New(db, sessions, queue, hub, game.PassthroughValidator{})
	port := getEnv("PORT", "5000")
	log.Info().Str("port", port).Msg("starting word game server")
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

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
