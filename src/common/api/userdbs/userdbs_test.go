package userdbs

import (
	"context"
	"net"
	"testing"

	"github.com/pnoker/dc3/src/common/grpcx"
	"github.com/pnoker/dc3/src/common/model"
	"github.com/pnoker/dc3/src/common/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

type echoServer struct {
	lastQuery *model.UserQuery
}

func (s *echoServer) Add(_ context.Context, u *model.User) (*UserResponse, error) {
	u.ID = 11
	r := response.Ok(u)
	return &r, nil
}

func (s *echoServer) Delete(_ context.Context, in *model.IDRequest) (*BoolResponse, error) {
	r := response.Fail[bool]("user does not exist")
	return &r, nil
}

func (s *echoServer) Update(_ context.Context, u *model.User) (*UserResponse, error) {
	r := response.Ok(u)
	return &r, nil
}

func (s *echoServer) SelectByID(_ context.Context, in *model.IDRequest) (*UserResponse, error) {
	r := response.Ok(&model.User{Description: model.Description{ID: in.ID}, Username: "alice"})
	return &r, nil
}

func (s *echoServer) SelectByUsername(_ context.Context, in *model.UsernameRequest) (*UserResponse, error) {
	r := response.Ok(&model.User{Description: model.Description{ID: 1}, Username: in.Username})
	return &r, nil
}

func (s *echoServer) List(_ context.Context, q *model.UserQuery) (*PageResponse, error) {
	s.lastQuery = q
	users := []*model.User{{Username: "alice"}, {Username: "bob"}}
	r := response.Ok(model.NewPage(users, 2, *q.Normalize().Page))
	return &r, nil
}

func newTestClient(t *testing.T, srv UserDbsServiceServer) UserDbsServiceClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	RegisterUserDbsServiceServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpcx.Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewUserDbsServiceClient(conn)
}

func TestUserDbsService_RoundTrip(t *testing.T) {
	srv := &echoServer{}
	client := newTestClient(t, srv)
	ctx := context.Background()

	added, err := client.Add(ctx, &model.User{Username: "alice", Email: "a@x.com"})
	require.NoError(t, err)
	require.True(t, added.Ok)
	assert.Equal(t, int64(11), added.Data.ID)
	assert.Equal(t, "a@x.com", added.Data.Email)

	deleted, err := client.Delete(ctx, &model.IDRequest{ID: 3})
	require.NoError(t, err)
	assert.False(t, deleted.Ok)
	assert.Equal(t, "user does not exist", deleted.Message)

	byID, err := client.SelectByID(ctx, &model.IDRequest{ID: 42})
	require.NoError(t, err)
	assert.Equal(t, int64(42), byID.Data.ID)

	byName, err := client.SelectByUsername(ctx, &model.UsernameRequest{Username: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "bob", byName.Data.Username)

	page, err := client.List(ctx, &model.UserQuery{Email: "x.com", Page: &model.Pagination{Current: 1, Size: 1}})
	require.NoError(t, err)
	require.True(t, page.Ok)
	assert.Len(t, page.Data.Records, 2)
	assert.Equal(t, int64(2), page.Data.Pages)
	assert.Equal(t, "x.com", srv.lastQuery.Email)
}
