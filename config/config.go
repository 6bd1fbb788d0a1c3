package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string
	UploadDir  string
	FileTTL    time.Duration
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the singleton configuration, loading .env on
// first use. Every setting has a default so the server runs with no
// environment at all.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file, using environment and defaults")
		}

		config = &Config{
			ListenAddr: envOr("LISTEN_ADDR", ":8005"),
			UploadDir:  envOr("UPLOAD_DIR", "uploads"),
			FileTTL:    time.Duration(envIntOr("FILE_TTL_HOURS", 2)) * time.Hour,
		}
	})
	return config
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
