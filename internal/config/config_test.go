package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "APP_PASSWORD", "APP_PASSWORD_HASH", "TARGET_YEAR", "SESSION_BACKEND", "KAFKA_ENABLED", "KAFKA_BROKERS", "ICS_FEED_TOKEN"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "calendar.db", cfg.Database.Path)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 2026, cfg.Calendar.TargetYear)
	assert.Equal(t, "Niedersachsen", cfg.Calendar.Region)
	assert.Equal(t, 14, cfg.Calendar.UpcomingDays)
	assert.Empty(t, cfg.Calendar.FeedToken)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "deu", cfg.OCR.Language)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "https://kalender.example.org/")
	t.Setenv("TARGET_YEAR", "2027")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, ,kafka-2:9092")
	t.Setenv("MAX_UPLOAD_MB", "2")
	t.Setenv("APP_PASSWORD", "geheim")

	cfg := Load()
	assert.Equal(t, "https://kalender.example.org", cfg.Server.PublicBaseURL)
	assert.Equal(t, 2027, cfg.Calendar.TargetYear)
	assert.True(t, cfg.Session.Secure)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, int64(2<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "geheim", cfg.Auth.Password)
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("TARGET_YEAR", "zweitausend")
	t.Setenv("DB_AUTO_MIGRATE", "vielleicht")
	t.Setenv("KAFKA_BROKERS", " , ")

	cfg := Load()
	assert.Equal(t, 2026, cfg.Calendar.TargetYear)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
}

func TestLocation(t *testing.T) {
	assert.Equal(t, "Europe/Berlin", CalendarConfig{Timezone: "Europe/Berlin"}.Location().String())
	assert.Equal(t, time.UTC, CalendarConfig{Timezone: "Mars/Olympus"}.Location())
}
