package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"time"
)

// Config holds everything the composition root wires into handlers and
// services. Values come from the environment (godotenv loads .env in
// main) with defaults suitable for local development.
type Config struct {
	Port          string
	FrontendURL   string
	UserCardsFile string

	// Image cache tuning. The catalog UI shows at most a handful of
	// cards at once, so a small bounded cache is plenty.
	ImageCacheSize int
	ImageCacheTTL  time.Duration
	FetchTimeout   time.Duration

	// Secret used to sign chat session tokens. Randomly generated when
	// unset, which is fine for a single-process demo deployment.
	ChatSessionSecret []byte
	ChatModel         string
}

func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		UserCardsFile:  getEnv("USER_CARDS_FILE", "user_cards.json"),
		ImageCacheSize: 32,
		ImageCacheTTL:  time.Hour,
		FetchTimeout:   5 * time.Second,
		ChatModel:      getEnv("CHAT_MODEL", "gpt-3.5-turbo"),
	}

	if secret := os.Getenv("CHAT_SESSION_SECRET"); secret != "" {
		cfg.ChatSessionSecret = []byte(secret)
	} else {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			log.Fatal("Failed to generate session secret:", err)
		}
		cfg.ChatSessionSecret = []byte(hex.EncodeToString(buf))
		log.Println("CHAT_SESSION_SECRET not set, using ephemeral secret (sessions reset on restart)")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
