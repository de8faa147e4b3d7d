package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string
	UploadDir  string
	DbDsn      string
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the singleton service configuration, loading .env once.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file, using environment variables")
		}

		config = &Config{
			ListenAddr: envOr("LISTEN_ADDR", ":8005"),
			UploadDir:  envOr("UPLOAD_DIR", "uploads"),
			DbDsn:      os.Getenv("DB_DSN"),
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
