package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/oggyb/campus-match/internal/config"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("MATCH_INTERESTS", "")
	t.Setenv("MYSQL_DSN", "")

	cfg := config.New()

	assert.Equal(t, "50051", cfg.GRPC.Port)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Contains(t, cfg.DB.DSN, "@tcp(localhost:3306)/campus_match")
	assert.Equal(t, config.DefaultInterests, cfg.Match.Interests)
	assert.Len(t, cfg.Match.Interests, 16)
	assert.Equal(t, 10*time.Minute, cfg.Match.PendingTTL)
	assert.Equal(t, "tg://user?id=%s", cfg.Match.ContactHint)
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("MATCH_INTERESTS", " Chess , Go,, Hiking ")
	t.Setenv("MATCH_PENDING_TTL", "30s")
	t.Setenv("MATCH_COUNT_TTL", "garbage")
	t.Setenv("LOG_SOURCE", "yes")
	t.Setenv("REDIS_DB", "3")

	cfg := config.New()

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "/tmp/x.db", cfg.DB.SQLitePath)
	assert.Equal(t, []string{"Chess", "Go", "Hiking"}, cfg.Match.Interests)
	assert.Equal(t, 30*time.Second, cfg.Match.PendingTTL)
	assert.Equal(t, time.Hour, cfg.Match.CountTTL)
	assert.True(t, cfg.Log.Source)
	assert.Equal(t, 3, cfg.Redis.DB)
}
