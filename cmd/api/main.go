package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-inventory-api/internal/config"
	"go-inventory-api/internal/model"
	"go-inventory-api/internal/payment"
	"go-inventory-api/internal/router"
	"go-inventory-api/internal/ws"
	"go-inventory-api/pkg/database"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Database
	db := database.Connect(cfg.DSN())
	if err := db.AutoMigrate(
		&model.Supplier{},
		&model.Product{},
		&model.InventoryItem{},
		&model.Transaction{},
		&model.User{},
	); err != nil {
		log.Fatal("auto migration failed", zap.Error(err))
	}

	// WebSocket hub
	hub := ws.NewHub(log)
	go hub.Run()
	if cfg.WSMessageQueue != "" {
		// The hub is per-process; a configured queue backend is accepted but
		// not consumed.
		log.Info("ws message queue configured but not in use", zap.String("backend", cfg.WSMessageQueue))
	}

	// Payment provider
	payments := payment.NewService(cfg.StripeAPIKey, cfg.StripeWebhookSecret, log)

	app := router.New(cfg, db, hub, payments, log)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}
