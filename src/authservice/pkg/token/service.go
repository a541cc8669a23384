package token

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pnoker/dc3/src/authservice/pkg/cache"
	"github.com/pnoker/dc3/src/common/errorx"
	"github.com/pnoker/dc3/src/common/model"
	"github.com/pnoker/dc3/src/common/response"
	"github.com/sirupsen/logrus"
)

// Namespace holds tokens keyed by user id.
const Namespace = "token"

const (
	msgNotFound     = "token does not exist"
	DefaultTTL      = 24 * time.Hour
	signingMethodHS = "HS256"
)

type Service struct {
	repo   Repository
	cache  *cache.Cache
	secret []byte
	ttl    time.Duration
	log    *logrus.Logger
}

func NewService(repo Repository, c *cache.Cache, secret string, ttl time.Duration, log *logrus.Logger) *Service {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Service{
		repo:   repo,
		cache:  c,
		secret: []byte(secret),
		ttl:    ttl,
		log:    log,
	}
}

func userKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

func failure[T any](err error) response.Response[T] {
	if errors.Is(err, errorx.ErrNotFound) {
		return response.Fail[T](msgNotFound)
	}
	return response.Fail[T](err.Error())
}

// Add signs a fresh token for t.UserID and stores it.
func (s *Service) Add(ctx context.Context, t *model.Token) response.Response[*model.Token] {
	policy := cache.Policy[*model.Token]{
		Puts: []cache.Put[*model.Token]{
			{Namespace: Namespace, Key: func(t *model.Token) string { return userKey(t.UserID) }},
		},
	}
	return cache.Write(ctx, s.cache, policy, func(ctx context.Context) response.Response[*model.Token] {
		signed, expire, err := s.sign(t.UserID)
		if err != nil {
			s.log.Errorf("[Token.Add] sign failed for user %d: %v", t.UserID, err)
			return response.Fail[*model.Token](err.Error())
		}
		t.Token = signed
		t.ExpireTime = expire

		if err := s.repo.Create(ctx, t); err != nil {
			s.log.Errorf("[Token.Add] create failed for user %d: %v", t.UserID, err)
			return failure[*model.Token](err)
		}
		return response.Ok(t)
	})
}

func (s *Service) Delete(ctx context.Context, id int64) response.Response[bool] {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Warnf("[Token.Delete] id %d: %v", id, err)
		return failure[bool](err)
	}
	return response.Ok(true)
}

func (s *Service) SelectByUserID(ctx context.Context, userID int64) response.Response[*model.Token] {
	return cache.Cacheable(ctx, s.cache, Namespace, userKey(userID), func(ctx context.Context) response.Response[*model.Token] {
		t, err := s.repo.GetByUserID(ctx, userID)
		if err != nil {
			return failure[*model.Token](err)
		}
		return response.Ok(t)
	})
}

// Verify checks the signature and expiry of raw and that it is still the
// live token of its user. It returns the user id.
func (s *Service) Verify(ctx context.Context, raw string) response.Response[int64] {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{signingMethodHS}), jwt.WithExpirationRequired())
	if errors.Is(err, jwt.ErrTokenExpired) {
		return response.Fail[int64](errorx.ErrTokenExpired.Error())
	}
	if err != nil {
		s.log.Debugf("[Token.Verify] rejected: %v", err)
		return response.Fail[int64](errorx.ErrInvalidToken.Error())
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return response.Fail[int64](errorx.ErrInvalidToken.Error())
	}

	live := s.SelectByUserID(ctx, userID)
	if !live.IsOk() || live.Data.Token != raw {
		return response.Fail[int64](errorx.ErrInvalidToken.Error())
	}
	return response.Ok(userID)
}

func (s *Service) sign(userID int64) (string, time.Time, error) {
	now := time.Now()
	expire := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   userKey(userID),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expire),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	return signed, expire, err
}
