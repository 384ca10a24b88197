// main.go
//
// Entry point for the Docdle server.
// Startup order: .env → config → logger → word bank → session store → HTTP.
// SIGINT/SIGTERM cancel the root context; the janitor stops and the HTTP
// server drains within HTTP_SHUTDOWN_TIMEOUT.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/docdle/internal/config"
	"github.com/robalobadob/docdle/internal/httpserver"
	"github.com/robalobadob/docdle/internal/store"
	"github.com/robalobadob/docdle/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogger(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func setupLogger(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.Log.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	log.Logger = log.With().Str("env", cfg.Env).Logger()
}

func run(ctx context.Context, cfg config.Config) error {
	loader := words.Loader{
		Source:  words.SourceFor(cfg.Words.File, cfg.Words.URL, cfg.Words.Timeout),
		Retries: uint64(cfg.Words.Retries),
		Backoff: cfg.Words.Backoff,
	}
	bank, fallback := loader.Load(ctx)
	log.Info().Int("words", bank.Size()).Bool("fallback", fallback).Msg("word bank ready")

	mem := store.NewMemoryStore(cfg.Session.TTL)
	api := httpserver.New(mem, bank, httpserver.Options{
		Secret:         []byte(cfg.Session.Secret),
		TokenTTL:       cfg.Session.TTL,
		DailySalt:      cfg.Daily.Salt,
		PublicURL:      cfg.HTTP.PublicURL,
		ClientOrigin:   cfg.HTTP.ClientOrigin,
		HandlerTimeout: cfg.HTTP.HandlerTimeout,
		BankFallback:   fallback,
	})
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.Router(),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return store.RunJanitor(gctx, mem, time.Minute)
	})
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Addr).Msg("starting docdle server")
		err := srv.ListenAndServe()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		log.Info().Msg("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
