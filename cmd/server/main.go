package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/arturoeanton/go-build-in-public/internal/adapter/metrics"
	"github.com/arturoeanton/go-build-in-public/internal/adapter/store"
	"github.com/arturoeanton/go-build-in-public/internal/adapter/streams"
	"github.com/arturoeanton/go-build-in-public/internal/adapter/vcs"
	"github.com/arturoeanton/go-build-in-public/internal/handler"
	"github.com/arturoeanton/go-build-in-public/internal/middleware"
	"github.com/arturoeanton/go-build-in-public/internal/port"
	"github.com/arturoeanton/go-build-in-public/internal/service"
	"github.com/arturoeanton/go-build-in-public/pkg/config"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()

	slog.Info("🚀 Starting Build In Public",
		"port", cfg.Port,
		"local_data", cfg.UseLocalData,
		"streams_enabled", cfg.StreamsDBID != "",
	)

	// ── Data store ───────────────────────────────────────────────────────
	var dataStore port.DataStore
	if cfg.UseLocalData {
		slog.Info("using local in-memory data store")
		dataStore = store.NewLocalStore()
	} else {
		if cfg.NotionToken == "" {
			slog.Error("NOTION_TOKEN is required unless USE_LOCAL_DATA=true")
			os.Exit(1)
		}
		dataStore = store.NewNotionStore(cfg.NotionToken, store.Collections{
			Projects: cfg.ProjectsDBID,
			Revenue:  cfg.RevenueDBID,
			Costs:    cfg.CostsDBID,
			Metrics:  cfg.MetricsDBID,
			Streams:  cfg.StreamsDBID,
		})
	}

	// ── Platform adapters ────────────────────────────────────────────────
	providerFor := metrics.NewFactory(cfg.YouTubeAPIKey, cfg.GitHubToken)

	var streamSource port.StreamSource
	if cfg.YouTubeAPIKey != "" {
		streamSource = streams.NewYouTubeSource(cfg.YouTubeAPIKey)
	} else {
		slog.Warn("YOUTUBE_API_KEY not set, stream discovery disabled")
	}
	commitSource := vcs.NewGitHubCommitSource(cfg.GitHubToken)

	// ── Services ─────────────────────────────────────────────────────────
	syncService := service.NewSyncService(dataStore, providerFor, streamSource, commitSource)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowMethods: []string{"GET", "OPTIONS"},
	}))

	// ── Routes ───────────────────────────────────────────────────────────
	syncHandler := handler.NewSyncHandler(syncService)
	app.Get("/api/cron", syncHandler.Run, middleware.BearerAuth(cfg.CronSecret))

	api := app.Group("/api/v1")
	api.Get("/sync/status", syncHandler.Status)

	dashboardHandler := handler.NewDashboardHandler(dataStore)
	dashboardHandler.Register(api)

	// Health check
	api.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"app":     cfg.AppName,
			"version": "1.0.0",
		})
	})

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("🌐 Fiber listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
