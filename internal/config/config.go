package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every externally tunable setting. It is built once in main
// and handed to the components that need it; nothing reads the environment
// after Load returns.
type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string
	RedisDB     int

	JWTSecret             string
	AccessTokenTTL        time.Duration
	RefreshTokenTTL       time.Duration
	RememberMeTTL         time.Duration
	PasswordResetTokenTTL time.Duration

	UploadDir       string
	ProfileImageDir string
	MaxCSVSize      int64
	ImportBatchSize int
	ImportQueue     string
	ImportMaxRetry  int
	ImportBackoff   time.Duration
	ProgressTTL     time.Duration

	MailHost     string
	MailPort     int
	MailUsername string
	MailPassword string
	MailFrom     string
	ResetURLBase string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getIntEnv("REDIS_DB", 1),

		JWTSecret:             getEnv("JWT_SECRET", "insecure-dev-secret"),
		AccessTokenTTL:        getDurationEnv("JWT_ACCESS_EXPIRES_SECONDS", 15*time.Minute),
		RefreshTokenTTL:       getDurationEnv("JWT_REFRESH_EXPIRES_SECONDS", 24*time.Hour),
		RememberMeTTL:         getDurationEnv("JWT_REMEMBER_ME_EXPIRES_SECONDS", 30*24*time.Hour),
		PasswordResetTokenTTL: getDurationEnv("PASSWORD_RESET_EXPIRES_SECONDS", time.Hour),

		UploadDir:       getEnv("UPLOAD_DIR", "public/uploads"),
		ProfileImageDir: getEnv("PROFILE_IMAGE_DIR", "public/images/profile"),
		MaxCSVSize:      int64(getIntEnv("MAX_CSV_SIZE_BYTES", 2*1024*1024)),
		ImportBatchSize: getIntEnv("IMPORT_BATCH_SIZE", 100),
		ImportQueue:     getEnv("IMPORT_QUEUE", "imports"),
		ImportMaxRetry:  getIntEnv("IMPORT_MAX_RETRY", 3),
		ImportBackoff:   getDurationEnv("IMPORT_RETRY_BACKOFF_SECONDS", 5*time.Second),
		ProgressTTL:     getDurationEnv("PROGRESS_TTL_SECONDS", 24*time.Hour),

		MailHost:     getEnv("MAIL_HOST", "localhost"),
		MailPort:     getIntEnv("MAIL_PORT", 587),
		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@bulletin-board.local"),
		ResetURLBase: getEnv("RESET_URL_BASE", "http://localhost:3000/reset-password"),
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
