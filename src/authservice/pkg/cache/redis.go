package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const keyPrefix = "dc3:cache:"

// RedisStore keeps each namespace in one Redis hash, so every operation is
// a single command: HGET, HSET, HDEL, or DEL for a whole namespace.
type RedisStore struct {
	rdb redis.Cmdable
	cb  *gobreaker.CircuitBreaker
}

func NewRedisStore(rdb redis.Cmdable, log *logrus.Logger) *RedisStore {
	st := gobreaker.Settings{
		Name:        "RedisCacheBreaker",
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnf("CircuitBreaker[%s] state changed from %s to %s", name, from, to)
		},
	}
	return &RedisStore{rdb: rdb, cb: gobreaker.NewCircuitBreaker(st)}
}

func hashKey(namespace string) string {
	return keyPrefix + namespace
}

func (s *RedisStore) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	val, err := s.cb.Execute(func() (interface{}, error) {
		res, err := s.rdb.HGet(ctx, hashKey(namespace), key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return res, nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("redis hget %s: %w", namespace, err)
	}
	if val == nil {
		return nil, false, nil
	}
	return val.([]byte), true, nil
}

func (s *RedisStore) Put(ctx context.Context, namespace, key string, value []byte) error {
	return s.exec(func() error {
		return s.rdb.HSet(ctx, hashKey(namespace), key, value).Err()
	}, "hset", namespace)
}

func (s *RedisStore) Evict(ctx context.Context, namespace, key string) error {
	return s.exec(func() error {
		return s.rdb.HDel(ctx, hashKey(namespace), key).Err()
	}, "hdel", namespace)
}

func (s *RedisStore) EvictAll(ctx context.Context, namespace string) error {
	return s.exec(func() error {
		return s.rdb.Del(ctx, hashKey(namespace)).Err()
	}, "del", namespace)
}

func (s *RedisStore) exec(fn func() error, op, namespace string) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if err != nil {
		return fmt.Errorf("redis %s %s: %w", op, namespace, err)
	}
	return nil
}
