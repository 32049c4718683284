package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/a2a"
	"github.com/BerylCAtieno/nutrigenius-agent/internal/agent"
	"github.com/BerylCAtieno/nutrigenius-agent/internal/api"
	"github.com/BerylCAtieno/nutrigenius-agent/internal/config"
	"github.com/BerylCAtieno/nutrigenius-agent/internal/gemini"
	"github.com/BerylCAtieno/nutrigenius-agent/internal/planner"
	"github.com/BerylCAtieno/nutrigenius-agent/internal/storage"
	"github.com/BerylCAtieno/nutrigenius-agent/internal/tools"
)

const shutdownTimeout = 15 * time.Second

type runOptions struct {
	configPath string
	envFile    string
	logLevel   string
	port       int
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func loadConfig(opts runOptions, logger *slog.Logger) (*config.Config, error) {
	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil {
			logger.Debug("No env file loaded", "path", opts.envFile, "error", err)
		}
	}

	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := config.LoadFromFile(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if opts.port != 0 {
		cfg.Server.Port = opts.port
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func writeDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := config.DefaultConfig().SaveToFile(path); err != nil {
		return err
	}
	fmt.Printf("Wrote default config to %s\n", path)
	return nil
}

func run(ctx context.Context, opts runOptions) error {
	logger := newLogger(opts.logLevel)
	slog.SetDefault(logger)

	cfg, err := loadConfig(opts, logger)
	if err != nil {
		return err
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return errors.New("GEMINI_API_KEY environment variable is required")
	}

	store, err := storage.NewSQLiteStorage(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	geminiClient, err := gemini.NewGeminiClient(apiKey, gemini.Config{
		Model:           cfg.Model.Name,
		Temperature:     cfg.Model.Temperature,
		TopP:            cfg.Model.TopP,
		MaxOutputTokens: cfg.Model.MaxOutputTokens,
	}, gemini.WithLogger(logger))
	if err != nil {
		return err
	}
	defer geminiClient.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	service := planner.NewService(geminiClient, store, store,
		planner.WithLogger(logger),
		planner.WithMetrics(planner.NewMetrics(registry)))

	card, err := agent.LoadAgentCard(cfg.BaseURL())
	if err != nil {
		return err
	}

	if opts.logLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.NewRouter(service, api.Config{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Gatherer:       registry,
		Logger:         logger,
	})
	engine := router.Engine()

	a2aHandler := a2a.NewA2AHandler(service, card, logger)
	engine.GET("/.well-known/agent.json", a2aHandler.ServeAgentCard)
	engine.POST("/a2a/planner", a2a.RequestLoggingMiddleware(logger), a2aHandler.HandlePlanner)

	toolHandler := tools.NewHandler(service, logger)
	engine.GET("/mcp/tools", toolHandler.ListTools)
	engine.POST("/mcp/tools/call", toolHandler.CallTool)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("NutriGenius starting",
			"port", cfg.Server.Port,
			"model", cfg.Model.Name,
			"db", cfg.Storage.Path)
		logger.Info("Agent card available", "url", cfg.BaseURL()+"/.well-known/agent.json")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
