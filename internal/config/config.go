package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Calendar CalendarConfig
	Session  SessionConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	OCR      OCRConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port            string
	PublicBaseURL   string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxUploadBytes  int64
}

type DatabaseConfig struct {
	Path        string
	AutoMigrate bool
	SeedCatalog bool
}

// AuthConfig holds the login secret. A plaintext password wins over a hash
// when both are set.
type AuthConfig struct {
	Password     string
	PasswordHash string
}

type CalendarConfig struct {
	TargetYear   int
	Region       string
	Timezone     string
	UpcomingDays int
	FeedToken    string
	PrintFont    string
}

type SessionConfig struct {
	Backend       string // memory | redis
	TTL           time.Duration
	CookieName    string
	Secure        bool
	PurgeSchedule string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

type OCRConfig struct {
	Binary   string
	Language string
	Timeout  time.Duration
}

type LogConfig struct {
	Dir  string
	Name string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", ":8080"),
			PublicBaseURL:   strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxUploadBytes:  int64(getEnvInt("MAX_UPLOAD_MB", 10)) << 20,
		},
		Database: DatabaseConfig{
			Path:        getEnv("DB_PATH", "calendar.db"),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
			SeedCatalog: getEnvBool("DB_SEED_SPECIAL_DAYS", true),
		},
		Auth: AuthConfig{
			Password:     os.Getenv("APP_PASSWORD"),
			PasswordHash: os.Getenv("APP_PASSWORD_HASH"),
		},
		Calendar: CalendarConfig{
			TargetYear:   getEnvInt("TARGET_YEAR", 2026),
			Region:       getEnv("REGION", "Niedersachsen"),
			Timezone:     getEnv("TIMEZONE", "Europe/Berlin"),
			UpcomingDays: getEnvInt("UPCOMING_DAYS", 14),
			FeedToken:    os.Getenv("ICS_FEED_TOKEN"),
			PrintFont:    os.Getenv("PRINT_FONT"),
		},
		Session: SessionConfig{
			Backend:       getEnv("SESSION_BACKEND", "memory"),
			TTL:           time.Duration(getEnvInt("SESSION_TTL_HOURS", 12)) * time.Hour,
			CookieName:    getEnv("SESSION_COOKIE", "familienkalender_session"),
			Secure:        getEnvBool("SESSION_COOKIE_SECURE", false),
			PurgeSchedule: getEnv("SESSION_PURGE_SCHEDULE", "@every 15m"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Brokers: getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TOPIC", "familienkalender.events"),
		},
		OCR: OCRConfig{
			Binary:   getEnv("TESSERACT_BINARY", "tesseract"),
			Language: getEnv("OCR_LANGUAGE", "deu"),
			Timeout:  time.Duration(getEnvInt("OCR_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Log: LogConfig{
			Dir:  getEnv("LOG_DIR", "logs"),
			Name: getEnv("LOG_NAME", "family-calendar"),
		},
	}
}

// Location resolves the configured timezone, falling back to UTC.
func (c CalendarConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
