package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"adcraft/internal/adapter/repo"
	"adcraft/internal/domain"
	"adcraft/internal/http/handlers"
	httpapi "adcraft/internal/http/httpapi"
	"adcraft/internal/infra"
	"adcraft/internal/infra/geoip"
	"adcraft/internal/providers/image"
	"adcraft/internal/providers/prompt"
	"adcraft/internal/services"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jobs, closeJobs, err := openJobStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("job_store", cfg.JobStore).Msg("failed to open job store")
	}
	defer closeJobs()

	completer, err := newCompleter(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("provider", cfg.CompletionProvider).Msg("failed to create completion client")
	}

	countries, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open geoip database")
	}
	defer func() {
		_ = countries.Close()
	}()

	svc := services.NewAdService(services.AdServiceOptions{
		Jobs:       jobs,
		Completer:  completer,
		Images:     image.NewPollinationsURLBuilder(cfg.ImageBaseURL),
		Logger:     logger,
		JobTimeout: cfg.JobTimeout,
	})
	app := handlers.NewApp(svc, logger)
	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		Logger:          logger,
		Countries:       countries.CountryCode,
		RateLimitPerMin: cfg.RateLimitPerMin,
		TrustProxy:      cfg.TrustProxy,
	})
	server := infra.NewHTTPServer(cfg, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().
			Str("addr", server.Addr()).
			Str("provider", completer.Name()).
			Str("job_store", cfg.JobStore).
			Msg("API listening")
		return server.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		return
	}
	logger.Info().Msg("server stopped")
}

func openJobStore(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (domain.JobRepository, func(), error) {
	switch cfg.JobStore {
	case infra.JobStorePostgres:
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		store := repo.NewJobRepository(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	case infra.JobStoreRedis:
		client, err := infra.NewRedisClient(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return repo.NewRedisJobRepository(client, cfg.RedisJobTTL), func() { _ = client.Close() }, nil
	default:
		return repo.NewMemoryJobRepository(), func() {}, nil
	}
}

func newCompleter(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (prompt.Completer, error) {
	client := &http.Client{Timeout: cfg.CompletionTimeout}
	switch cfg.CompletionProvider {
	case infra.ProviderGemini:
		return prompt.NewGeminiCompleter(ctx, prompt.GeminiOptions{
			APIKey:     cfg.GeminiAPIKey,
			Model:      cfg.GeminiModel,
			BaseURL:    cfg.GeminiBaseURL,
			HTTPClient: client,
		})
	case infra.ProviderStatic:
		logger.Warn().Msg("using static completion provider; ad copy is synthesised locally")
		return prompt.NewStaticCompleter(), nil
	default:
		completer, err := prompt.NewOpenAICompleter(prompt.OpenAIOptions{
			APIKey:     cfg.CompletionAPIKey,
			Model:      cfg.CompletionModel,
			BaseURL:    cfg.CompletionBaseURL,
			HTTPClient: client,
			OnWarning: func(reason, detail string) {
				logger.Warn().Str("reason", reason).Str("detail", detail).Msg("completion model normalized")
			},
		})
		if err != nil {
			return nil, err
		}
		logger.Info().Str("model", completer.Model()).Msg("completion client ready")
		return completer, nil
	}
}
