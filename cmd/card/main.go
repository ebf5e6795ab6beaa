package main

import (
	"VirtualCard/internal/config"
	"VirtualCard/internal/handlers"
	"VirtualCard/internal/middleware"
	"VirtualCard/internal/repo"
	"VirtualCard/internal/service"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	middleware.SetLogger(sugar)
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	cardService := service.NewCardService(
		repo.NewMessageRepository(gormDB),
		repo.NewCoverRepository(gormDB),
	)
	settingsService := service.NewSettingsService(repo.NewSettingsRepository(gormDB))

	h := handlers.NewCardHandler(cardService, settingsService, sugar, cfg)

	sugar.Infow("Starting card service",
		"addr", cfg.CardAddr,
	)

	if err := http.ListenAndServe(cfg.CardAddr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
