package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ougirez/covidboard/internal/pkg/constants"
	goredis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "covidboard:dataset:"

type Redis struct {
	rdb *goredis.Client
	ttl time.Duration
}

func NewRedis(ctx context.Context, addr string, ttl time.Duration) (*Redis, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Redis{rdb: rdb, ttl: ttl}, nil
}

func (r *Redis) Get(ctx context.Context, url string) ([]byte, time.Time, error) {
	fields, err := r.rdb.HGetAll(ctx, redisKeyPrefix+url).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, time.Time{}, constants.ErrCacheMiss
		}
		return nil, time.Time{}, fmt.Errorf("redis HGetAll: %w", err)
	}

	body, ok := fields["body"]
	if !ok {
		return nil, time.Time{}, constants.ErrCacheMiss
	}
	fetchedAt, err := time.Parse(time.RFC3339Nano, fields["fetched_at"])
	if err != nil {
		return nil, time.Time{}, constants.ErrCacheMiss
	}

	return []byte(body), fetchedAt, nil
}

func (r *Redis) Set(ctx context.Context, url string, body []byte, fetchedAt time.Time) error {
	if r.ttl <= 0 {
		return nil
	}

	key := redisKeyPrefix + url
	_, err := r.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, key, "body", body, "fetched_at", fetchedAt.UTC().Format(time.RFC3339Nano))
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis TxPipelined: %w", err)
	}
	return nil
}

func (r *Redis) Purge(ctx context.Context) (int64, error) {
	var deleted int64
	iter := r.rdb.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n, err := r.rdb.Del(ctx, iter.Val()).Result()
		if err != nil {
			return deleted, fmt.Errorf("redis Del: %w", err)
		}
		deleted += n
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("redis Scan: %w", err)
	}
	return deleted, nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
