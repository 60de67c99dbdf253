package captcha

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps challenges in Redis so multiple instances can share them.
// Redis expires the keys itself and GETDEL makes Take atomic.
type RedisStore struct {
	redis *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{redis: client}
}

func (s *RedisStore) Put(ctx context.Context, id, answer string, ttl time.Duration) error {
	key := captchaKey(id)

	if err := s.redis.Set(ctx, key, answer, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store captcha: %w", err)
	}
	return nil
}

func (s *RedisStore) Take(ctx context.Context, id string) (string, bool, error) {
	key := captchaKey(id)

	answer, err := s.redis.GetDel(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to take captcha: %w", err)
	}

	return answer, true, nil
}

func captchaKey(id string) string {
	return fmt.Sprintf("captcha:%s", id)
}
