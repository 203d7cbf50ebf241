package main

import (
	"log/slog"
	"os"

	"expense-api/internal/config"
	"expense-api/internal/database"
	"expense-api/internal/logging"
	"expense-api/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		slog.Error("load config", logging.FieldError, err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log, cfg.App.Environment)
	slog.SetDefault(logger)
	appLog := logging.WithComponent(logger, logging.ComponentApp)

	if cfg.UsingDefaultSecret() {
		appLog.Warn("SECRET_KEY is not set, signing tokens with the development default")
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		appLog.Error("init database", logging.FieldError, err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		appLog.Error("migrate database", logging.FieldError, err)
		os.Exit(1)
	}

	r, err := router.SetupRouter(cfg, db, logger)
	if err != nil {
		appLog.Error("setup router", logging.FieldError, err)
		os.Exit(1)
	}

	addr := cfg.Addr()
	appLog.Info("server listening", "addr", addr, "environment", cfg.App.Environment)
	if err := r.Run(addr); err != nil {
		appLog.Error("run server", logging.FieldError, err)
		os.Exit(1)
	}
}
