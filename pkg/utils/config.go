package utils

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Redis    RedisConfig
	Rating   RatingConfig
	Auth     AuthConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// DSN builds a libpq style connection string understood by pgx.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=disable",
		c.User, c.Password, c.Name, c.Host, c.Port)
}

type SessionConfig struct {
	Driver       string // postgres | redis
	ExpiryHours  int
	CookieSecure bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RatingConfig struct {
	URL            string
	Key            string
	TimeoutSeconds int
}

type AuthConfig struct {
	RatePerMinute int
}

// LoadConfig reads .env (when present) and lets environment variables override it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	setDefaults(v)

	// .env is optional; plain environment variables are enough in containers
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "book-review")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("SESSION_DRIVER", "postgres")
	v.SetDefault("SESSION_EXPIRY_HOURS", 24)
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATING_API_URL", "https://www.goodreads.com/book/review_counts.json")
	v.SetDefault("RATING_TIMEOUT_SECONDS", 10)
	v.SetDefault("AUTH_RATE_PER_MINUTE", 20)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			Driver:       v.GetString("SESSION_DRIVER"),
			ExpiryHours:  v.GetInt("SESSION_EXPIRY_HOURS"),
			CookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Rating: RatingConfig{
			URL:            v.GetString("RATING_API_URL"),
			Key:            v.GetString("RATING_API_KEY"),
			TimeoutSeconds: v.GetInt("RATING_TIMEOUT_SECONDS"),
		},
		Auth: AuthConfig{
			RatePerMinute: v.GetInt("AUTH_RATE_PER_MINUTE"),
		},
	}
}
