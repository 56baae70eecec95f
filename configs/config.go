package configs

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries every environment-driven setting. It is loaded once in main
// and injected from there; nothing in this package holds global state.
type Config struct {
	Port           string
	MongoURI       string
	DBName         string
	JWTSecret      string
	Production     bool
	AllowedOrigins []string
}

func Load() (Config, error) {
	// .env is optional outside local dev
	_ = godotenv.Load()

	cfg := Config{
		Port:       getenv("PORT", "5000"),
		MongoURI:   os.Getenv("MONGO_URI"),
		DBName:     getenv("DB_NAME", "volunteerDB"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Production: os.Getenv("APP_ENV") == "production",
	}

	origins := getenv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5174")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	if cfg.MongoURI == "" {
		return Config{}, errors.New("MONGO_URI not set in environment")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET not set in environment")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
