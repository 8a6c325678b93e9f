package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Database struct {
	Driver string // sqlite, mysql or postgres
	DSN    string
}

type Config struct {
	Port               string
	GinMode            string
	LogLevel           string
	Database           Database
	JWTSecret          string
	PublicBaseURL      string
	UploadDir          string
	ChangePollInterval time.Duration
	NATSURL            string
	CORSOrigins        []string
	RateLimitPerSecond int
	// Location is used for day boundaries in reports and exports.
	Location *time.Location
	// SuperAdminEmail and SuperAdminPassword seed the first platform
	// account when both are set.
	SuperAdminEmail    string
	SuperAdminPassword string
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	// a missing .env file is normal outside local development
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: Database{
			Driver: strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			DSN:    getEnv("DB_DSN", "restaurant.db"),
		},
		JWTSecret:     os.Getenv("JWT_SECRET"),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		UploadDir:     getEnv("UPLOAD_DIR", "public/uploads"),
		NATSURL:       os.Getenv("NATS_URL"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),

		SuperAdminEmail:    os.Getenv("SUPERADMIN_EMAIL"),
		SuperAdminPassword: os.Getenv("SUPERADMIN_PASSWORD"),
	}

	interval, err := time.ParseDuration(getEnv("CHANGE_POLL_INTERVAL", "500ms"))
	if err != nil {
		return nil, err
	}
	cfg.ChangePollInterval = interval

	cfg.RateLimitPerSecond, err = strconv.Atoi(getEnv("RATE_LIMIT_PER_SECOND", "50"))
	if err != nil {
		return nil, err
	}

	cfg.Location, err = time.LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
