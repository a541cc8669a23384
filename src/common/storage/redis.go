package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisConfig selects sentinel mode when SentinelAddrs is set, single node
// mode otherwise.
type RedisConfig struct {
	Addr          string `koanf:"redis_addr"`
	SentinelAddrs string `koanf:"redis_sentinel_addrs"`
	MasterName    string `koanf:"redis_master_name"`
	DB            int    `koanf:"redis_db"`
	MaxRetries    int    `koanf:"redis_connect_retries"`
}

// DefaultRedisConfig matches the local development setup.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:       "localhost:6380",
		MasterName: "mymaster",
		MaxRetries: 10,
	}
}

// OpenRedis builds the client, instruments it and waits for it with a
// capped exponential backoff.
func OpenRedis(cfg RedisConfig, log *logrus.Logger) (*redis.Client, error) {
	var rdb *redis.Client

	if cfg.SentinelAddrs != "" {
		log.Infof("Initializing Redis in Sentinel Mode. Sentinels: %s", cfg.SentinelAddrs)
		rdb = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:    cfg.MasterName,
			SentinelAddrs: strings.Split(cfg.SentinelAddrs, ","),
			DB:            cfg.DB,
		})
	} else {
		log.Infof("Initializing Redis in Single Node Mode. Addr: %s", cfg.Addr)
		rdb = redis.NewClient(&redis.Options{
			Addr: cfg.Addr,
			DB:   cfg.DB,
		})
	}

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, fmt.Errorf("failed to instrument redis tracing: %w", err)
	}
	if err := redisotel.InstrumentMetrics(rdb); err != nil {
		return nil, fmt.Errorf("failed to instrument redis metrics: %w", err)
	}

	maxRetries := max(cfg.MaxRetries, 1)
	for i := 0; i < maxRetries; i++ {
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()

		if err == nil {
			log.Info("connected to redis")
			return rdb, nil
		}

		if i == maxRetries-1 {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to redis after %d retries: %w", maxRetries, err)
		}

		backoff := min(time.Duration(1<<i)*time.Second, 30*time.Second)
		log.Warnf("redis not ready, retry in %v... (%d/%d)", backoff, i+1, maxRetries)
		time.Sleep(backoff)
	}
	return rdb, nil
}
