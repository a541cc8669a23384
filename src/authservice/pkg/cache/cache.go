package cache

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"
)

// Cache encodes values as JSON on top of a Store. Store failures never fail
// the caller: a failed read is a miss, a failed write is logged.
type Cache struct {
	store Store
	log   *logrus.Logger
	sf    singleflight.Group

	hits    metric.Int64Counter
	misses  metric.Int64Counter
	evicted metric.Int64Counter
}

func New(store Store, log *logrus.Logger) *Cache {
	c := &Cache{store: store, log: log}
	c.registerMetrics()
	return c
}

func (c *Cache) registerMetrics() {
	meter := otel.GetMeterProvider().Meter("authservice.cache")

	var err error
	if c.hits, err = meter.Int64Counter("cache_hit_total", metric.WithUnit("{lookups}")); err != nil {
		c.log.Warnf("failed to register metrics: %v", err)
	}
	if c.misses, err = meter.Int64Counter("cache_miss_total", metric.WithUnit("{lookups}")); err != nil {
		c.log.Warnf("failed to register metrics: %v", err)
	}
	if c.evicted, err = meter.Int64Counter("cache_evict_total", metric.WithUnit("{ops}")); err != nil {
		c.log.Warnf("failed to register metrics: %v", err)
	}
}

func count(ctx context.Context, counter metric.Int64Counter, namespace string) {
	if counter != nil {
		counter.Add(ctx, 1, metric.WithAttributes(attribute.String("namespace", namespace)))
	}
}

// load decodes the entry at namespace/key into dst and reports a hit.
func (c *Cache) load(ctx context.Context, namespace, key string, dst any) bool {
	data, ok, err := c.store.Get(ctx, namespace, key)
	if err != nil {
		c.log.Warnf("[Cache] get %s/%s failed, treating as miss: %v", namespace, key, err)
		ok = false
	}
	if ok {
		if err := json.Unmarshal(data, dst); err == nil {
			count(ctx, c.hits, namespace)
			return true
		}
		c.log.Errorf("[Cache] failed to unmarshal %s/%s: %v", namespace, key, err)
	}
	count(ctx, c.misses, namespace)
	return false
}

// save stores v at namespace/key.
func (c *Cache) save(ctx context.Context, namespace, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Errorf("[Cache] failed to marshal %s/%s: %v", namespace, key, err)
		return
	}
	if err := c.store.Put(ctx, namespace, key, data); err != nil {
		c.log.Errorf("[Cache] failed to write %s/%s: %v", namespace, key, err)
	}
}

func (c *Cache) evict(ctx context.Context, e Eviction) {
	var err error
	if e.All {
		err = c.store.EvictAll(ctx, e.Namespace)
	} else {
		err = c.store.Evict(ctx, e.Namespace, e.Key)
	}
	if err != nil {
		c.log.Errorf("[Cache] failed to evict %s: %v", e, err)
		return
	}
	count(ctx, c.evicted, e.Namespace)
}
