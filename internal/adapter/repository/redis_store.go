package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/platform/logger"
)

// RedisStore keeps the document as a JSON string under a single key.
type RedisStore struct {
	client *redis.Client
	key    string
	log    *logger.Logger
}

func NewRedisStore(client *redis.Client, key string, log *logger.Logger) *RedisStore {
	return &RedisStore{client: client, key: key, log: log.With("store", "redis", "key", key)}
}

func (s *RedisStore) Load(ctx context.Context) (*domain.PortfolioData, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return decode(nil, "redis", s.log)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", domain.ErrStorage, s.key, err)
	}
	return decode(raw, "redis", s.log)
}

func (s *RedisStore) Save(ctx context.Context, doc *domain.PortfolioData) error {
	raw, err := encode(doc, "redis")
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", domain.ErrStorage, s.key, err)
	}
	return nil
}
