// Package ratelimit throttles auth service calls with Redis token buckets
// shared by every replica.
package ratelimit

import (
	"context"
	"fmt"
	"net"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// refills the bucket from the elapsed milliseconds, then takes one token
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local capacity = tonumber(ARGV[1])
	local rate = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])
	local requested = tonumber(ARGV[4])

	local info = redis.call("HMGET", key, "tokens", "last_refill")
	local tokens = tonumber(info[1])
	local last_refill = tonumber(info[2])

	if tokens == nil then
		tokens = capacity
		last_refill = now
	end

	local delta = math.max(0, now - last_refill)
	local filled_tokens = math.min(capacity, tokens + (delta / 1000 * rate))

	local allowed = 0
	if filled_tokens >= requested then
		filled_tokens = filled_tokens - requested
		allowed = 1
		redis.call("HSET", key, "tokens", tostring(filled_tokens), "last_refill", tostring(now))
		redis.call("EXPIRE", key, tostring(math.ceil(capacity / rate) * 2))
	end

	return allowed
`)

// Bucket is a token bucket holding Burst tokens, refilled at RPS per second.
// A zero Burst disables it.
type Bucket struct {
	RPS   float64
	Burst int
}

func (b Bucket) enabled() bool {
	return b.Burst > 0 && b.RPS > 0
}

type Limiter struct {
	client redis.Scripter
	log    *logrus.Logger
	global Bucket
	peer   Bucket
}

func NewLimiter(client redis.Scripter, global, peer Bucket, log *logrus.Logger) *Limiter {
	return &Limiter{client: client, log: log, global: global, peer: peer}
}

// Allow takes one token from the bucket stored under key.
func (l *Limiter) Allow(ctx context.Context, key string, b Bucket) (bool, error) {
	now := time.Now().UnixMilli()

	keys := []string{fmt.Sprintf("dc3:rate_limit:%s", key)}
	args := []interface{}{b.Burst, b.RPS, now, 1}

	result, err := tokenBucketScript.Run(ctx, l.client, keys, args...).Int64()
	if err != nil {
		return false, err
	}
	return result == 1, nil
}

// UnaryInterceptor rejects calls over the global or per-peer budget with
// codes.ResourceExhausted. Redis errors let the call through.
func (l *Limiter) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		checkCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
		defer cancel()

		if l.global.enabled() {
			allowed, err := l.Allow(checkCtx, "global", l.global)
			if err != nil {
				l.log.Warnf("global limiter redis error: %v", err)
			} else if !allowed {
				return nil, status.Error(codes.ResourceExhausted, "system busy")
			}
		}

		if l.peer.enabled() {
			allowed, err := l.Allow(checkCtx, "peer:"+peerHost(ctx), l.peer)
			if err != nil {
				l.log.Warnf("peer limiter redis error: %v", err)
			} else if !allowed {
				l.log.Infof("[RateLimit] %s throttled on %s", peerHost(ctx), info.FullMethod)
				return nil, status.Error(codes.ResourceExhausted, "too many requests")
			}
		}

		return handler(ctx, req)
	}
}

func peerHost(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(p.Addr.String())
	if err != nil {
		return p.Addr.String()
	}
	return host
}
