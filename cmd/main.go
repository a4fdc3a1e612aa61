package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/githubzohaib/Forest-MGT/internal/api/handler"
	"github.com/githubzohaib/Forest-MGT/internal/chathub"
	"github.com/githubzohaib/Forest-MGT/internal/config"
	"github.com/githubzohaib/Forest-MGT/internal/gateway"
	"github.com/githubzohaib/Forest-MGT/internal/models"
	"github.com/githubzohaib/Forest-MGT/internal/storage"
	"github.com/githubzohaib/Forest-MGT/internal/telegram"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis (optional bridge)
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Fatalf("Failed to connect Redis: %v", err)
		}
	}

	// 3. Migrations
	if err := db.AutoMigrate(&models.User{}, &models.Message{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting Forest MGT messaging backend...")

	cfg := config.Load()

	// 1. Dependencies
	db, rdb := setupDependencies(cfg)
	store := storage.NewStorageService(db, rdb)

	// Ranger default routing needs an admin account to exist.
	if _, err := store.EnsureDefaultAdmin(cfg.DefaultAdminName, cfg.DefaultAdminEmail); err != nil {
		log.Fatalf("Failed to ensure default admin: %v", err)
	}

	// 2. Messaging core
	registry := chathub.NewRegistry()
	router := chathub.NewRouter(registry, cfg.SenderEcho)
	if rdb != nil {
		bridge := chathub.NewBridge(store, cfg.NodeID)
		router.Bridge = bridge
		bridge.Listen(router)
	}

	gw := gateway.NewService(store, router, cfg.BroadcastPolicy)

	if cfg.TelegramBotToken != "" && cfg.TelegramAlertChatID != 0 {
		notifier, err := telegram.NewNotifier(cfg.TelegramBotToken, cfg.TelegramAlertChatID)
		if err != nil {
			log.Fatalf("Failed to start Telegram notifier: %v", err)
		}
		gw.SetNotifier(notifier)
	}

	// 3. Gin routing
	r := gin.Default()
	h := handler.NewHandler(gw, registry, store, []byte(cfg.JWTSecret))

	api := r.Group("/api", h.AuthRequired())
	api.GET("/messages", h.GetMessages)
	api.POST("/messages", h.PostMessage)
	api.POST("/messages/read", h.MarkMessageRead)

	r.GET("/ws", h.AuthRequired(), h.ServeWebSocket)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
