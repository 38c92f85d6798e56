package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DBDSN    string
	MediaDir string
	LogFile  string
	Env      string // development | production

	// RedWeek provider
	RedWeekBaseURL string
	RedWeekAPIKey  string
	RedWeekRPM     int // outbound requests per minute

	// Background sync. Empty SyncCron disables the scheduler.
	SyncCron      string
	SyncProviders string // comma-separated provider names
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file found, using system env vars")
	}

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		DBDSN:          getEnv("DB_DSN", "resortshare.db"), // sqlite file in project root
		MediaDir:       getEnv("MEDIA_DIR", "./media"),
		LogFile:        getEnv("LOG_FILE", "./resortshare.log"),
		Env:            getEnv("ENV", "development"),
		RedWeekBaseURL: getEnv("REDWEEK_BASE_URL", "https://api.redweek.com/v1"),
		RedWeekAPIKey:  getEnv("REDWEEK_API_KEY", ""),
		RedWeekRPM:     getEnvInt("REDWEEK_RPM", 60),
		SyncCron:       getEnv("SYNC_CRON", ""),
		SyncProviders:  getEnv("SYNC_PROVIDERS", "RedWeek"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s ENV=%s MEDIA_DIR=%s SYNC_CRON=%q",
		cfg.Port, cfg.DBDSN, cfg.Env, cfg.MediaDir, cfg.SyncCron)
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
