package config

import (
	"errors"
	"log"
	"os"
)

// Config is everything the API reads from the environment.
type Config struct {
	Port        string
	Env         string
	DSN         string
	JWTSecret   string
	CORSOrigin  string
	GeminiKey   string
	GeminiModel string
}

// Load reads the .env file if present, then the process environment.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("APP_ENV", "development"),
		DSN:         os.Getenv("DB_DSN_PRIMARY"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "http://localhost:8081"),
		GeminiKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel: getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
	}

	if cfg.DSN == "" {
		return nil, errors.New("DB_DSN_PRIMARY environment variable is not set")
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET environment variable is not set")
		}
		cfg.JWTSecret = "dev-only-secret"
	}
	return cfg, nil
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
