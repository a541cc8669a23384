package token

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pnoker/dc3/src/authservice/pkg/cache"
	"github.com/pnoker/dc3/src/common/errorx"
	"github.com/pnoker/dc3/src/common/model"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu        sync.Mutex
	byUser    map[int64]*model.Token
	nextID    int64
	createErr error
	reads     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byUser: map[int64]*model.Token{}, nextID: 100}
}

func (f *fakeRepo) Create(_ context.Context, t *model.Token) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	t.ID = f.nextID
	cp := *t
	f.byUser[t.UserID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for uid, t := range f.byUser {
		if t.ID == id {
			delete(f.byUser, uid)
			return nil
		}
	}
	return errorx.ErrNotFound
}

func (f *fakeRepo) GetByUserID(_ context.Context, userID int64) (*model.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	t, ok := f.byUser[userID]
	if !ok {
		return nil, errorx.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func newTestService(t *testing.T, repo Repository, ttl time.Duration) (*Service, *cache.MemoryStore) {
	t.Helper()
	log, _ := test.NewNullLogger()
	store := cache.NewMemoryStore()
	return NewService(repo, cache.New(store, log), "test-secret", ttl, log), store
}

func TestService_AddSignsAndCaches(t *testing.T) {
	repo := newFakeRepo()
	svc, store := newTestService(t, repo, time.Hour)
	ctx := context.Background()

	res := svc.Add(ctx, &model.Token{UserID: 3})
	require.True(t, res.Ok)
	assert.NotEmpty(t, res.Data.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.Data.ExpireTime, time.Minute)
	assert.Equal(t, 1, store.Len(Namespace))

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(res.Data.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "3", claims.Subject)
	assert.NotEmpty(t, claims.ID)

	got := svc.SelectByUserID(ctx, 3)
	require.True(t, got.Ok)
	assert.Equal(t, res.Data.Token, got.Data.Token)
	assert.Equal(t, 0, repo.reads, "served from cache")
}

func TestService_AddFailurePropagates(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = errors.New("duplicate entry")
	svc, store := newTestService(t, repo, time.Hour)

	res := svc.Add(context.Background(), &model.Token{UserID: 3})
	assert.False(t, res.Ok)
	assert.Equal(t, "duplicate entry", res.Message)
	assert.Equal(t, 0, store.Len(Namespace))
}

func TestService_SelectMissingIsNotCached(t *testing.T) {
	repo := newFakeRepo()
	svc, store := newTestService(t, repo, time.Hour)
	ctx := context.Background()

	res := svc.SelectByUserID(ctx, 5)
	assert.False(t, res.Ok)
	assert.Equal(t, "token does not exist", res.Message)
	assert.Equal(t, 0, store.Len(Namespace))

	svc.SelectByUserID(ctx, 5)
	assert.Equal(t, 2, repo.reads)
}

func TestService_Delete(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(t, repo, time.Hour)
	ctx := context.Background()

	added := svc.Add(ctx, &model.Token{UserID: 3})
	require.True(t, added.Ok)

	assert.True(t, svc.Delete(ctx, added.Data.ID).Ok)

	again := svc.Delete(ctx, added.Data.ID)
	assert.False(t, again.Ok)
	assert.Equal(t, "token does not exist", again.Message)
}

func TestService_Verify(t *testing.T) {
	repo := newFakeRepo()
	svc, store := newTestService(t, repo, time.Hour)
	ctx := context.Background()

	added := svc.Add(ctx, &model.Token{UserID: 3})
	require.True(t, added.Ok)

	ok := svc.Verify(ctx, added.Data.Token)
	require.True(t, ok.Ok)
	assert.Equal(t, int64(3), ok.Data)

	bad := svc.Verify(ctx, "not-a-jwt")
	assert.False(t, bad.Ok)
	assert.Equal(t, "invalid token", bad.Message)

	other, _ := newTestService(t, newFakeRepo(), time.Hour)
	other.secret = []byte("another-secret")
	forged := other.Add(ctx, &model.Token{UserID: 3})
	assert.Equal(t, "invalid token", svc.Verify(ctx, forged.Data.Token).Message)

	// a token replaced or deleted is no longer live
	require.NoError(t, repo.Delete(ctx, added.Data.ID))
	require.NoError(t, store.Evict(ctx, Namespace, "3"))
	assert.Equal(t, "invalid token", svc.Verify(ctx, added.Data.Token).Message)
}

func TestService_VerifyExpired(t *testing.T) {
	svc, _ := newTestService(t, newFakeRepo(), -time.Minute)
	ctx := context.Background()

	added := svc.Add(ctx, &model.Token{UserID: 3})
	require.True(t, added.Ok)

	res := svc.Verify(ctx, added.Data.Token)
	assert.False(t, res.Ok)
	assert.Equal(t, "token expired", res.Message)
}
