package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"sitegen/config"
	"sitegen/internal/ai"
	"sitegen/internal/ai/extract"
	"sitegen/internal/api"
	"sitegen/internal/logger"
	"sitegen/internal/preview"
	"sitegen/internal/utils"
)

func main() {
	// .env must be loaded before viper reads the environment.
	envErr := godotenv.Load()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Init("info", os.Getenv("APP_ENV"))
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	logger.Init(cfg.LogLevel, cfg.AppEnv)

	switch {
	case envErr == nil:
		log.Info().Msg("Loaded environment variables from .env file")
	case os.IsNotExist(envErr):
		log.Info().Msg(".env file not found, relying on system environment variables")
	default:
		log.Warn().Err(envErr).Msg("Error loading .env file")
	}

	// --- Dependency Initialization ---
	policy, err := extract.ParsePolicy(cfg.ExtractionPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid extraction policy")
	}

	httpClient := utils.NewRetryingHTTPClient(utils.RetryOptions{
		Max:     cfg.ProviderRetryMax,
		WaitMin: 500 * time.Millisecond,
		WaitMax: 5 * time.Second,
	})
	provider, err := ai.NewProvider(context.Background(), ai.ProviderConfig{
		Name:       cfg.AIProvider,
		APIKey:     cfg.ProviderAPIKey(),
		Model:      cfg.ProviderModel(),
		BaseURL:    cfg.ProviderBaseURL(),
		HTTPClient: httpClient,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot initialize AI provider")
	}

	generator := ai.NewGenerator(provider, extract.NewExtractor(policy), cfg.ProviderTimeout)

	previews, err := preview.NewStore(cfg.PreviewCacheSize)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot initialize preview store")
	}

	apiHandler := api.NewAPIHandler(generator, previews)

	// --- Start API Server ---
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(api.RequestLogger())
	router.Use(gin.Recovery())
	api.RegisterRoutes(router, apiHandler)

	server := &http.Server{
		Addr:        cfg.ServerAddress,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// Provider calls can run up to PROVIDER_TIMEOUT, plus retries.
		WriteTimeout: cfg.ProviderTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("address", cfg.ServerAddress).
			Str("provider", provider.Name()).
			Str("extraction_policy", policy.String()).
			Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("API server listen error")
		}
		log.Info().Msg("API server has stopped listening")
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("API server forced shutdown")
	} else {
		log.Info().Msg("API server gracefully stopped")
	}
	log.Info().Msg("Application exiting")
}
