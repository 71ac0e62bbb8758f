package sequence

import (
	"context"
	"time"

	"reservation-engine/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// Redis-backed daily counter. INCR is atomic, so concurrent reservation
// creation never observes the same sequence value for a given day.
type RedisSequencer struct {
	client *redis.Client
	prefix string
}

func NewRedisSequencer(client *redis.Client) *RedisSequencer {
	return &RedisSequencer{
		client: client,
		prefix: "reservation:seq:",
	}
}

// Keys outlive the day they count so that late writers near midnight still
// see the counter, then expire.
const sequenceKeyTTL = 48 * time.Hour

func (s *RedisSequencer) Next(ctx context.Context, scope string) (int64, error) {
	key := s.prefix + scope

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, sequenceKeyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, errs.Wrap(err, "failed to advance reservation sequence")
	}
	return incr.Val(), nil
}
