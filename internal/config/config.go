package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	defaultEnvironment    = "development"
	defaultMigrationsPath = "migrations"
	defaultTimezone       = "Europe/Moscow"
	defaultDigestHour     = 20
)

type Config struct {
	TelegramToken  string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN          string `mapstructure:"DB_DSN"`
	Environment    string `mapstructure:"ENV"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`
	Timezone       string `mapstructure:"TIMEZONE"`
	DigestHour     int    `mapstructure:"DIGEST_HOUR"`
	// LogLevel пустой уровень значит info в production и debug иначе
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// AdminIDs Telegram ID тех, кому доступны команды изменения расписаний.
	// Пустой список разрешает всем.
	AdminIDs []int64 `mapstructure:"ADMIN_IDS"`

	// Location разобранный Timezone
	Location *time.Location `mapstructure:"-"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv()
}

// FromEnv читает конфигурацию только из переменных окружения
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		Environment:    envOr("ENV", defaultEnvironment),
		MigrationsPath: envOr("MIGRATIONS_PATH", defaultMigrationsPath),
		Timezone:       envOr("TIMEZONE", defaultTimezone),
		DigestHour:     defaultDigestHour,
		LogLevel:       os.Getenv("LOG_LEVEL"),
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}

	if raw := os.Getenv("DIGEST_HOUR"); raw != "" {
		hour, err := strconv.Atoi(raw)
		if err != nil || hour < 0 || hour > 23 {
			return nil, fmt.Errorf("DIGEST_HOUR must be an hour 0-23, got %q", raw)
		}
		cfg.DigestHour = hour
	}

	adminIDs, err := parseIDs(os.Getenv("ADMIN_IDS"))
	if err != nil {
		return nil, err
	}
	cfg.AdminIDs = adminIDs

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// IsProduction включает JSON логи
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// parseIDs разбирает список "1, 2,3"
func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_IDS must be a comma separated list of ids, got %q", raw)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
