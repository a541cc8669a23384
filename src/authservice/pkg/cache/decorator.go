package cache

import (
	"context"
	"fmt"

	"github.com/pnoker/dc3/src/common/response"
)

// Eviction removes one key of a namespace, or the whole namespace when All
// is set.
type Eviction struct {
	Namespace string
	Key       string
	All       bool
}

func Evict(namespace, key string) Eviction {
	return Eviction{Namespace: namespace, Key: key}
}

func EvictAll(namespace string) Eviction {
	return Eviction{Namespace: namespace, All: true}
}

func (e Eviction) String() string {
	if e.All {
		return e.Namespace + "/*"
	}
	return e.Namespace + "/" + e.Key
}

// Put stores a successful result under the key derived from it.
type Put[T any] struct {
	Namespace string
	Key       func(T) string
}

// Policy lists the cache effects of one write operation.
type Policy[T any] struct {
	Puts   []Put[T]
	Evicts []Eviction
}

// Cacheable serves namespace/key from the cache, or calls fn and caches its
// result when it is Ok. Concurrent misses on one key share a single fn call,
// which keeps ctx values but not its cancellation: one caller giving up must
// not fail the others waiting on the same key.
func Cacheable[T any](ctx context.Context, c *Cache, namespace, key string, fn func(context.Context) response.Response[T]) response.Response[T] {
	var cached T
	if c.load(ctx, namespace, key, &cached) {
		return response.Ok(cached)
	}

	shared := context.WithoutCancel(ctx)
	v, _, _ := c.sf.Do(fmt.Sprintf("%s/%s", namespace, key), func() (any, error) {
		r := fn(shared)
		if r.IsOk() {
			c.save(shared, namespace, key, r.Data)
		}
		return r, nil
	})
	return v.(response.Response[T])
}

// Write calls fn, then applies the policy: evictions always run, puts only
// for an Ok result.
func Write[T any](ctx context.Context, c *Cache, p Policy[T], fn func(context.Context) response.Response[T]) response.Response[T] {
	r := fn(ctx)
	for _, e := range p.Evicts {
		c.evict(ctx, e)
	}
	if r.IsOk() {
		for _, put := range p.Puts {
			c.save(ctx, put.Namespace, put.Key(r.Data), r.Data)
		}
	}
	return r
}
