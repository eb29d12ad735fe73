package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-travel-planner/internal/config"
	"ai-travel-planner/internal/database"
	"ai-travel-planner/internal/flights"
	"ai-travel-planner/internal/geo"
	"ai-travel-planner/internal/llm"
	"ai-travel-planner/internal/metrics"
	"ai-travel-planner/internal/planner"
	"ai-travel-planner/internal/server"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: could not load .env file: %v\n", err)
	}

	initLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()

	gen, closeGen, err := newGenerator(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create LLM client")
	}
	defer closeGen()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	metricsStore := metrics.NewStore(db.SQL)

	travelPlanner := planner.NewPlanner(gen, flights.NewClient(cfg), geo.NewResolver())
	srv := server.New(cfg, travelPlanner, metricsStore)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Handler(),
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("travel planner server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")
}

// newGenerator selects the LLM backend from configuration.
func newGenerator(ctx context.Context, cfg *config.Config) (llm.Generator, func(), error) {
	switch cfg.LLMProvider {
	case "gemini":
		gen, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if closer, ok := gen.(llm.Closer); ok {
				closer.Close()
			}
		}
		return gen, closeFn, nil
	default:
		return llm.NewOpenAIClient(cfg), func() {}, nil
	}
}

func initLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_PRETTY") == "true" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	level := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		level = lvl
	}
	zerolog.SetGlobalLevel(level)
}
