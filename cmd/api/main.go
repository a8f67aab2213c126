package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/eletrodesk/eletrodesk-backend/api/routes"
	"github.com/eletrodesk/eletrodesk-backend/internal/chat"
	conversation "github.com/eletrodesk/eletrodesk-backend/internal/conversations"
	"github.com/eletrodesk/eletrodesk-backend/internal/erp"
	product "github.com/eletrodesk/eletrodesk-backend/internal/products"
	profile "github.com/eletrodesk/eletrodesk-backend/internal/profiles"
	quote "github.com/eletrodesk/eletrodesk-backend/internal/quotes"
	"github.com/eletrodesk/eletrodesk-backend/pkg/config"
	"github.com/eletrodesk/eletrodesk-backend/pkg/db"
	"github.com/eletrodesk/eletrodesk-backend/pkg/env"
	"github.com/eletrodesk/eletrodesk-backend/pkg/gemini"
	"github.com/eletrodesk/eletrodesk-backend/pkg/logger"
	"github.com/eletrodesk/eletrodesk-backend/pkg/metrics"
	"github.com/eletrodesk/eletrodesk-backend/pkg/migrate"
	"github.com/eletrodesk/eletrodesk-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	productRepo := product.NewRepository(dbClient.DB())
	profileRepo := profile.NewRepository(dbClient.DB())
	quoteRepo := quote.NewRepository(dbClient.DB())
	conversationRepo := conversation.NewRepository(dbClient.DB())
	erpRepo := erp.NewRepository(dbClient.DB())

	productService, err := product.NewService(productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}
	profileService, err := profile.NewService(profileRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}
	quoteService, err := quote.NewService(quoteRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create quote service", err)
		os.Exit(1)
	}
	erpService, err := erp.NewService(productRepo, erpRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create erp sync service", err)
		os.Exit(1)
	}
	conversationManager, err := conversation.NewManager(conversationRepo, logg, cfg.Chat)
	if err != nil {
		logg.Error(context.Background(), "failed to create conversation manager", err)
		os.Exit(1)
	}
	chatService, err := chat.NewService(
		productRepo,
		profileRepo,
		gemini.NewClient(cfg.Gemini),
		conversationManager,
		logg,
		cfg.Chat,
		metrics.NewChatMetrics(registry),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create chat service", err)
		os.Exit(1)
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:        cfg,
			Logger:        logg,
			DB:            dbClient,
			Redis:         redisClient,
			Registry:      registry,
			HTTPMetrics:   metrics.NewHTTPMetrics(registry),
			Products:      productService,
			Profiles:      profileService,
			Quotes:        quoteService,
			ERPSync:       erpService,
			Chat:          chatService,
			Conversations: conversationManager,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
