package draft

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/smallbiznis/faktur/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("draft.store",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config, log *zap.Logger) Store {
	if cfg.RedisAddr == "" {
		log.Info("draft store using in-memory backend")
		return NewMemory()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ttl := time.Duration(cfg.DraftTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}

	log.Info("draft store using redis backend", zap.String("addr", cfg.RedisAddr))
	return NewRedis(client, ttl)
}
