package rpc

import (
	"context"
	"net"
	"testing"

	"github.com/pnoker/dc3/src/common/api/userauth"
	"github.com/pnoker/dc3/src/common/grpcx"
	"github.com/pnoker/dc3/src/common/model"
	"github.com/pnoker/dc3/src/common/response"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

type stubLogic struct {
	lastQuery model.UserQuery
}

func (s *stubLogic) Add(_ context.Context, u *model.User) response.Response[*model.User] {
	return response.Fail[*model.User]("user already exists")
}

func (s *stubLogic) Delete(_ context.Context, id int64) response.Response[bool] {
	return response.Ok(id == 1)
}

func (s *stubLogic) Update(_ context.Context, u *model.User) response.Response[*model.User] {
	return response.Ok(u)
}

func (s *stubLogic) SelectByID(_ context.Context, id int64) response.Response[*model.User] {
	return response.Ok(&model.User{Description: model.Description{ID: id}, Username: "alice", Password: "$2a$10$hash"})
}

func (s *stubLogic) SelectByUsername(_ context.Context, username string) response.Response[*model.User] {
	return response.Fail[*model.User]("user does not exist")
}

func (s *stubLogic) List(_ context.Context, q model.UserQuery) response.Response[model.Page[*model.User]] {
	s.lastQuery = q
	return response.Ok(model.NewPage([]*model.User{{Username: "alice", Password: "$2a$10$hash"}}, 1, *q.Normalize().Page))
}

func (s *stubLogic) CheckUserValid(_ context.Context, username string) response.Response[bool] {
	return response.Ok(true)
}

func (s *stubLogic) VerifyToken(_ context.Context, raw string) response.Response[int64] {
	return response.Fail[int64]("token expired")
}

func newClient(t *testing.T, logic *stubLogic) userauth.UserAuthServiceClient {
	t.Helper()
	log, _ := test.NewNullLogger()
	lis := bufconn.Listen(1 << 20)
	srv := grpcx.NewServer(log)
	userauth.RegisterUserAuthServiceServer(srv, &UserAuthService{Logic: logic})
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpcx.Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return userauth.NewUserAuthServiceClient(conn)
}

func TestUserAuthService_FailuresTravelInBody(t *testing.T) {
	client := newClient(t, &stubLogic{})
	ctx := context.Background()

	added, err := client.Add(ctx, &model.User{Username: "alice"})
	require.NoError(t, err)
	assert.False(t, added.Ok)
	assert.Equal(t, "user already exists", added.Message)

	byName, err := client.SelectByUsername(ctx, &model.UsernameRequest{Username: "eve"})
	require.NoError(t, err)
	assert.Equal(t, "user does not exist", byName.Message)

	verified, err := client.VerifyToken(ctx, &model.TokenRequest{Token: "x"})
	require.NoError(t, err)
	assert.False(t, verified.Ok)
	assert.Equal(t, "token expired", verified.Message)
}

func TestUserAuthService_Success(t *testing.T) {
	logic := &stubLogic{}
	client := newClient(t, logic)
	ctx := context.Background()

	byID, err := client.SelectByID(ctx, &model.IDRequest{ID: 4})
	require.NoError(t, err)
	require.True(t, byID.Ok)
	assert.Equal(t, int64(4), byID.Data.ID)
	assert.Empty(t, byID.Data.Password)

	deleted, err := client.Delete(ctx, &model.IDRequest{ID: 1})
	require.NoError(t, err)
	assert.True(t, deleted.Data)

	updated, err := client.Update(ctx, &model.User{Description: model.Description{ID: 4}, Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", updated.Data.Email)

	valid, err := client.CheckUserValid(ctx, &model.UsernameRequest{Username: "alice"})
	require.NoError(t, err)
	assert.True(t, valid.Data)

	page, err := client.List(ctx, &model.UserQuery{Email: "x.com", Page: &model.Pagination{Current: 2, Size: 5}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Data.Total)
	assert.Equal(t, int64(2), page.Data.Current)
	assert.Equal(t, "x.com", logic.lastQuery.Email)
	require.Len(t, page.Data.Records, 1)
	assert.Empty(t, page.Data.Records[0].Password)
}
