package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/mcoot/wordgrid/internal/api"
	"github.com/mcoot/wordgrid/internal/config"
	"github.com/mcoot/wordgrid/internal/factory"
	redisstorage "github.com/mcoot/wordgrid/internal/storage/redis"
	"github.com/mcoot/wordgrid/internal/web"
)

// hubCleanupInterval is how often SSE hubs with no viewers are closed
const hubCleanupInterval = 5 * time.Minute

func main() {
	configFile := pflag.String("config", "", "Config file (env: WORDGRID_CONFIG)")
	pflag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger:           logger,
		StorageType:      cfg.StorageType,
		SQLitePath:       cfg.SQLitePath,
		DictionarySource: cfg.DictionarySource,
		DailySource:      cfg.DailySource,
	}
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.PuzzleTTL = cfg.SessionTTL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Commits report the dictionary as unavailable until this finishes
	go func() {
		if err := app.Load(ctx); err != nil {
			logger.Warn("could not load dictionary", slog.String("error", err.Error()))
		}
	}()

	go cleanupHubs(ctx, app)

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		PuzzleController:  app.PuzzleController,
		DictionaryService: app.DictionaryService,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:           logger,
		PuzzleController: app.PuzzleController,
		HubManager:       app.HubManager,
		Clock:            app.Clock,
		StaticDir:        findStaticDir(),
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = cfg.Port
	server := api.NewServer(mux, serverConfig, logger)

	logger.Info("server starting", slog.String("addr", server.Addr()))

	// Close streams first so Shutdown doesn't wait on them
	if err := server.Run(ctx, app.HubManager.Close); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func cleanupHubs(ctx context.Context, app *factory.App) {
	ticker := time.NewTicker(hubCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.HubManager.CleanupEmptyHubs()
		}
	}
}

// findStaticDir looks for the static files directory
func findStaticDir() string {
	candidates := []string{
		"internal/web/static",
		"./internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	return "internal/web/static"
}
