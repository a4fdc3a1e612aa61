package config

import (
	"log"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the messaging backend.
type Config struct {
	Port        string
	DatabaseDSN string
	// RedisAddr enables the cross-node delivery bridge. Empty means the
	// node runs standalone with in-process delivery only.
	RedisAddr     string
	RedisPassword string
	JWTSecret     string

	// BroadcastPolicy is "admin-only" or "open".
	BroadcastPolicy string
	// SenderEcho controls whether private messages are echoed back to the
	// sender's own connections.
	SenderEcho bool
	// NodeID tags bridge events so a node can skip its own.
	NodeID string

	// Telegram alert bridge; disabled when the token is empty.
	TelegramBotToken    string
	TelegramAlertChatID int64

	DefaultAdminName  string
	DefaultAdminEmail string
}

// Load reads configuration from environment variables, with a .env file
// picked up for development.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseDSN:       getEnv("DATABASE_DSN", "host=localhost user=user password=password dbname=forestmgt port=5432 sslmode=disable"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         getEnv("JWT_SECRET", "dev-secret-change-me"),
		BroadcastPolicy:   getEnv("CHAT_BROADCAST_POLICY", "admin-only"),
		SenderEcho:        getEnv("CHAT_SENDER_ECHO", "true") == "true",
		NodeID:            getEnv("NODE_ID", uuid.New().String()),
		TelegramBotToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		DefaultAdminName:  getEnv("DEFAULT_ADMIN_NAME", "Super Admin"),
		DefaultAdminEmail: getEnv("DEFAULT_ADMIN_EMAIL", "admin@gmail.com"),
	}

	if raw := os.Getenv("TELEGRAM_ALERT_CHAT_ID"); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Printf("Warning: invalid TELEGRAM_ALERT_CHAT_ID %q, alerts disabled", raw)
		} else {
			cfg.TelegramAlertChatID = chatID
		}
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
