package pricing

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyLastPrice = "%slast_price:%s"

// RedisStore keeps one hash per ticker with price and timestamp fields.
// Keys expire after ttl so abandoned tickers do not accumulate.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(ticker string) string {
	return fmt.Sprintf(redisKeyLastPrice, s.prefix, ticker)
}

func (s *RedisStore) Load(ctx context.Context, ticker string) (float64, time.Time, bool, error) {
	vals, err := s.client.HGetAll(ctx, s.key(ticker)).Result()
	if err != nil {
		return 0, time.Time{}, false, err
	}
	if len(vals) == 0 {
		return 0, time.Time{}, false, nil
	}

	price, err := strconv.ParseFloat(vals["price"], 64)
	if err != nil {
		return 0, time.Time{}, false, fmt.Errorf("invalid cached price for %s: %w", ticker, err)
	}
	nanos, err := strconv.ParseInt(vals["timestamp"], 10, 64)
	if err != nil {
		return 0, time.Time{}, false, fmt.Errorf("invalid cached timestamp for %s: %w", ticker, err)
	}
	return price, time.Unix(0, nanos), true, nil
}

func (s *RedisStore) Save(ctx context.Context, ticker string, price float64, updatedAt time.Time) error {
	key := s.key(ticker)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"price":     strconv.FormatFloat(price, 'f', -1, 64),
		"timestamp": updatedAt.UnixNano(),
	})
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, fmt.Sprintf(redisKeyLastPrice, s.prefix, "*"), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}
