package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultInterests is the campus tag vocabulary used when MATCH_INTERESTS is unset.
var DefaultInterests = []string{
	"Volleyball", "Football", "Basketball", "Music",
	"IT", "Business", "Travel", "Art",
	"Self-education", "Languages", "Finance", "Cinema",
	"Games", "Coffee shops", "Psychology", "Fitness",
}

type Config struct {
	App struct {
		ENV string
	}

	Log struct {
		Level     string
		Format    string
		Component string
		Source    bool
	}

	DB struct {
		Driver     string
		DSN        string
		Host       string
		Port       string
		User       string
		Password   string
		Name       string
		SQLitePath string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	GRPC struct {
		Host string
		Port string
	}

	Match struct {
		Interests   []string
		PendingTTL  time.Duration
		ContactHint string
		CountTTL    time.Duration
	}
}

// New reads configuration from the environment and an optional .env file.
func New() *Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	// a missing .env is fine, env vars still apply
	_ = v.ReadInConfig()

	v.SetDefault("APP_ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_COMPONENT", "match_server")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "root")
	v.SetDefault("DB_NAME", "campus_match")
	v.SetDefault("SQLITE_PATH", "campus_match.db")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("GRPC_HOST", "127.0.0.1")
	v.SetDefault("GRPC_PORT", "50051")
	v.SetDefault("MATCH_PENDING_TTL", "10m")
	v.SetDefault("MATCH_CONTACT_HINT", "tg://user?id=%s")
	v.SetDefault("MATCH_COUNT_TTL", "1h")

	cfg := &Config{}

	cfg.App.ENV = getString(v, "APP_ENV")

	// Logger
	cfg.Log.Level = getString(v, "LOG_LEVEL")
	cfg.Log.Format = getString(v, "LOG_FORMAT")
	cfg.Log.Component = getString(v, "LOG_COMPONENT")
	cfg.Log.Source = isTruthy(v.GetString("LOG_SOURCE"))

	// Database
	cfg.DB.Driver = strings.ToLower(getString(v, "DB_DRIVER"))
	cfg.DB.SQLitePath = getString(v, "SQLITE_PATH")
	cfg.DB.DSN = getString(v, "MYSQL_DSN")
	if cfg.DB.DSN == "" {
		cfg.DB.Host = getString(v, "DB_HOST")
		cfg.DB.Port = getString(v, "DB_PORT")
		cfg.DB.User = getString(v, "DB_USER")
		cfg.DB.Password = getString(v, "DB_PASSWORD")
		cfg.DB.Name = getString(v, "DB_NAME")

		cfg.DB.DSN = fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
			cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name,
		)
	}

	// Redis
	cfg.Redis.Addr = getString(v, "REDIS_ADDR")
	cfg.Redis.Password = getString(v, "REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")

	// gRPC
	cfg.GRPC.Host = getString(v, "GRPC_HOST")
	cfg.GRPC.Port = getString(v, "GRPC_PORT")

	// Matching
	cfg.Match.Interests = splitList(getString(v, "MATCH_INTERESTS"))
	if len(cfg.Match.Interests) == 0 {
		cfg.Match.Interests = append([]string(nil), DefaultInterests...)
	}
	cfg.Match.PendingTTL = getDuration(v, "MATCH_PENDING_TTL", 10*time.Minute)
	cfg.Match.ContactHint = getString(v, "MATCH_CONTACT_HINT")
	cfg.Match.CountTTL = getDuration(v, "MATCH_COUNT_TTL", time.Hour)

	return cfg
}

func getString(v *viper.Viper, k string) string {
	return strings.TrimSpace(v.GetString(k))
}

// getDuration falls back to def for unparsable or non-positive values.
func getDuration(v *viper.Viper, k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(getString(v, k))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
