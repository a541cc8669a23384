// Package service orchestrates user and token lifecycles for the auth
// service and keeps the user caches coherent with every write.
package service

import (
	"context"
	"strconv"

	"github.com/pnoker/dc3/src/authservice/pkg/cache"
	"github.com/pnoker/dc3/src/authservice/pkg/token"
	"github.com/pnoker/dc3/src/common/model"
	"github.com/pnoker/dc3/src/common/response"
	"github.com/sirupsen/logrus"
)

const (
	NamespaceUser     = "auth_user"
	NamespaceUsername = "auth_user_username"
	NamespaceUserList = "auth_user_list"
	NamespaceToken    = token.Namespace
)

const msgUserExists = "user already exists"

// UserClient is the user data service as seen by the orchestrator.
type UserClient interface {
	Add(ctx context.Context, user *model.User) response.Response[*model.User]
	Delete(ctx context.Context, id int64) response.Response[bool]
	Update(ctx context.Context, user *model.User) response.Response[*model.User]
	SelectByID(ctx context.Context, id int64) response.Response[*model.User]
	SelectByUsername(ctx context.Context, username string) response.Response[*model.User]
	List(ctx context.Context, query model.UserQuery) response.Response[model.Page[*model.User]]
}

type TokenService interface {
	Add(ctx context.Context, t *model.Token) response.Response[*model.Token]
	Delete(ctx context.Context, id int64) response.Response[bool]
	SelectByUserID(ctx context.Context, userID int64) response.Response[*model.Token]
	Verify(ctx context.Context, raw string) response.Response[int64]
}

// UserAuthLogic is the operation set the gRPC layer serves.
type UserAuthLogic interface {
	Add(ctx context.Context, user *model.User) response.Response[*model.User]
	Delete(ctx context.Context, id int64) response.Response[bool]
	Update(ctx context.Context, user *model.User) response.Response[*model.User]
	SelectByID(ctx context.Context, id int64) response.Response[*model.User]
	SelectByUsername(ctx context.Context, username string) response.Response[*model.User]
	List(ctx context.Context, query model.UserQuery) response.Response[model.Page[*model.User]]
	CheckUserValid(ctx context.Context, username string) response.Response[bool]
	VerifyToken(ctx context.Context, raw string) response.Response[int64]
}

var _ UserAuthLogic = (*UserAuthService)(nil)

type UserAuthService struct {
	users  UserClient
	tokens TokenService
	cache  *cache.Cache
	log    *logrus.Logger
}

func NewUserAuthService(users UserClient, tokens TokenService, c *cache.Cache, log *logrus.Logger) *UserAuthService {
	return &UserAuthService{users: users, tokens: tokens, cache: c, log: log}
}

func idKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// userPuts caches a written user under both of its lookup keys.
var userPuts = []cache.Put[*model.User]{
	{Namespace: NamespaceUser, Key: func(u *model.User) string { return idKey(u.ID) }},
	{Namespace: NamespaceUsername, Key: func(u *model.User) string { return u.Username }},
}

// Add creates the user and then its token. A token failure leaves the user
// in place.
func (s *UserAuthService) Add(ctx context.Context, user *model.User) response.Response[*model.User] {
	policy := cache.Policy[*model.User]{
		Puts:   userPuts,
		Evicts: []cache.Eviction{cache.EvictAll(NamespaceUserList)},
	}
	return cache.Write(ctx, s.cache, policy, func(ctx context.Context) response.Response[*model.User] {
		if s.SelectByUsername(ctx, user.Username).IsOk() {
			s.log.Infof("[Add] username %q is taken", user.Username)
			return response.Fail[*model.User](msgUserExists)
		}
		if err := hashPassword(user); err != nil {
			return response.Fail[*model.User](err.Error())
		}

		added := s.users.Add(ctx, user)
		if !added.IsOk() {
			return added
		}

		tok := s.tokens.Add(ctx, &model.Token{UserID: added.Data.ID})
		if !tok.IsOk() {
			s.log.Warnf("[Add] user %d created without token: %s", added.Data.ID, tok.Message)
			return response.FailFrom[*model.User](tok)
		}
		return added
	})
}

// Delete removes the user and then the token bound to it.
func (s *UserAuthService) Delete(ctx context.Context, id int64) response.Response[bool] {
	policy := cache.Policy[bool]{
		Evicts: []cache.Eviction{
			cache.Evict(NamespaceUser, idKey(id)),
			cache.EvictAll(NamespaceUsername),
			cache.Evict(NamespaceToken, idKey(id)),
			cache.EvictAll(NamespaceUserList),
		},
	}
	return cache.Write(ctx, s.cache, policy, func(ctx context.Context) response.Response[bool] {
		deleted := s.users.Delete(ctx, id)
		if !deleted.IsOk() {
			return deleted
		}

		tok := s.tokens.SelectByUserID(ctx, id)
		if !tok.IsOk() {
			s.log.Warnf("[Delete] user %d deleted, token lookup failed: %s", id, tok.Message)
			return response.FailFrom[bool](tok)
		}
		return s.tokens.Delete(ctx, tok.Data.ID)
	})
}

// Update writes every field but the username, which stays as stored.
func (s *UserAuthService) Update(ctx context.Context, user *model.User) response.Response[*model.User] {
	policy := cache.Policy[*model.User]{
		Puts: userPuts,
		Evicts: []cache.Eviction{
			cache.Evict(NamespaceToken, idKey(user.ID)),
			cache.EvictAll(NamespaceUserList),
		},
	}
	return cache.Write(ctx, s.cache, policy, func(ctx context.Context) response.Response[*model.User] {
		existing := s.users.SelectByID(ctx, user.ID)
		if !existing.IsOk() {
			return existing
		}
		if user.Username != existing.Data.Username {
			s.log.Warnf("[Update] ignoring username change of user %d", user.ID)
			user.Username = existing.Data.Username
		}
		if err := hashPassword(user); err != nil {
			return response.Fail[*model.User](err.Error())
		}
		return s.users.Update(ctx, user)
	})
}

func (s *UserAuthService) SelectByID(ctx context.Context, id int64) response.Response[*model.User] {
	return cache.Cacheable(ctx, s.cache, NamespaceUser, idKey(id), func(ctx context.Context) response.Response[*model.User] {
		return s.users.SelectByID(ctx, id)
	})
}

func (s *UserAuthService) SelectByUsername(ctx context.Context, username string) response.Response[*model.User] {
	return cache.Cacheable(ctx, s.cache, NamespaceUsername, username, func(ctx context.Context) response.Response[*model.User] {
		return s.users.SelectByUsername(ctx, username)
	})
}

func (s *UserAuthService) List(ctx context.Context, query model.UserQuery) response.Response[model.Page[*model.User]] {
	return cache.Cacheable(ctx, s.cache, NamespaceUserList, query.CacheKey(), func(ctx context.Context) response.Response[model.Page[*model.User]] {
		return s.users.List(ctx, query.Normalize())
	})
}

func (s *UserAuthService) CheckUserValid(ctx context.Context, username string) response.Response[bool] {
	r := s.SelectByUsername(ctx, username)
	if !r.IsOk() {
		return response.FailFrom[bool](r)
	}
	return response.Ok(true)
}

// VerifyToken resolves a token string to the id of its user.
func (s *UserAuthService) VerifyToken(ctx context.Context, raw string) response.Response[int64] {
	return s.tokens.Verify(ctx, raw)
}
