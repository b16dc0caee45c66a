package app

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/oggyb/campus-match/internal/cache"
	"github.com/oggyb/campus-match/internal/config"
	"github.com/oggyb/campus-match/internal/domain"
)

// AppContext holds shared dependencies (DB, Redis, Logger, etc.)
type AppContext struct {
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Logger     *slog.Logger
	Vocabulary *domain.Vocabulary
	Match      MatchSettings
}

// MatchSettings are the matching knobs taken from config.
type MatchSettings struct {
	PendingTTL  time.Duration
	ContactHint string
	CountTTL    time.Duration
}

// New creates a new AppContext
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger) *AppContext {
	return &AppContext{
		DB:         db,
		RedisCache: rdb,
		Logger:     logger,
		Vocabulary: domain.NewVocabulary(cfg.Match.Interests),
		Match: MatchSettings{
			PendingTTL:  cfg.Match.PendingTTL,
			ContactHint: cfg.Match.ContactHint,
			CountTTL:    cfg.Match.CountTTL,
		},
	}
}
