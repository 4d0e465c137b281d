package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is the full server configuration, loaded once at startup from the
// environment (optionally seeded from a .env file).
type Config struct {
	Port          int
	SQLitePath    string
	AdminUsername string
	AdminPassword string
	SecureCookies bool
	SiteName      string
	BaseURL       string
}

// Load reads configuration from the environment. A missing .env file is not
// an error; explicit environment variables always win because godotenv does
// not overwrite existing values.
func Load() *Config {
	godotenv.Load()

	cfg := &Config{
		Port:          envInt("PORT", 8080),
		SQLitePath:    envString("SQLITE_DB_PATH", "./inkwell.db"),
		AdminUsername: envString("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SecureCookies: os.Getenv("SECURE_COOKIES") == "true",
		SiteName:      envString("SITE_NAME", "Inkwell"),
		BaseURL:       envString("BASE_URL", "http://localhost:8080"),
	}

	if cfg.AdminPassword == "" {
		log.Warn().Msg("ADMIN_PASSWORD not set, using default password")
		cfg.AdminPassword = "password"
	}

	return cfg
}

// Public returns the configuration keys that may be exposed to the browser.
// This is a fixed allow-list: the rest of the environment, credentials
// included, must never reach a rendered page.
func (c *Config) Public() map[string]string {
	return map[string]string{
		"SITE_NAME": c.SiteName,
		"BASE_URL":  c.BaseURL,
	}
}

func envString(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Invalid integer in environment, using default")
		return fallback
	}
	return n
}
