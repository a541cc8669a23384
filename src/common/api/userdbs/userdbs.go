// Package userdbs is the gRPC contract of the user data service. Messages
// are model types carried by the grpcx JSON codec.
package userdbs

import (
	"context"

	"github.com/pnoker/dc3/src/common/grpcx"
	"github.com/pnoker/dc3/src/common/model"
	"github.com/pnoker/dc3/src/common/response"
	"google.golang.org/grpc"
)

const ServiceName = "dc3.dbs.UserDbsService"

const (
	MethodAdd              = "/" + ServiceName + "/Add"
	MethodDelete           = "/" + ServiceName + "/Delete"
	MethodUpdate           = "/" + ServiceName + "/Update"
	MethodSelectByID       = "/" + ServiceName + "/SelectById"
	MethodSelectByUsername = "/" + ServiceName + "/SelectByUsername"
	MethodList             = "/" + ServiceName + "/List"
)

type (
	UserResponse = response.Response[*model.User]
	BoolResponse = response.Response[bool]
	PageResponse = response.Response[model.Page[*model.User]]
)

// UserDbsServiceClient is the client API of the user data service.
type UserDbsServiceClient interface {
	Add(ctx context.Context, in *model.User, opts ...grpc.CallOption) (*UserResponse, error)
	Delete(ctx context.Context, in *model.IDRequest, opts ...grpc.CallOption) (*BoolResponse, error)
	Update(ctx context.Context, in *model.User, opts ...grpc.CallOption) (*UserResponse, error)
	SelectByID(ctx context.Context, in *model.IDRequest, opts ...grpc.CallOption) (*UserResponse, error)
	SelectByUsername(ctx context.Context, in *model.UsernameRequest, opts ...grpc.CallOption) (*UserResponse, error)
	List(ctx context.Context, in *model.UserQuery, opts ...grpc.CallOption) (*PageResponse, error)
}

type userDbsServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewUserDbsServiceClient(cc grpc.ClientConnInterface) UserDbsServiceClient {
	return &userDbsServiceClient{cc: cc}
}

func (c *userDbsServiceClient) Add(ctx context.Context, in *model.User, opts ...grpc.CallOption) (*UserResponse, error) {
	return grpcx.Invoke[UserResponse](ctx, c.cc, MethodAdd, in, opts...)
}

func (c *userDbsServiceClient) Delete(ctx context.Context, in *model.IDRequest, opts ...grpc.CallOption) (*BoolResponse, error) {
	return grpcx.Invoke[BoolResponse](ctx, c.cc, MethodDelete, in, opts...)
}

func (c *userDbsServiceClient) Update(ctx context.Context, in *model.User, opts ...grpc.CallOption) (*UserResponse, error) {
	return grpcx.Invoke[UserResponse](ctx, c.cc, MethodUpdate, in, opts...)
}

func (c *userDbsServiceClient) SelectByID(ctx context.Context, in *model.IDRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return grpcx.Invoke[UserResponse](ctx, c.cc, MethodSelectByID, in, opts...)
}

func (c *userDbsServiceClient) SelectByUsername(ctx context.Context, in *model.UsernameRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return grpcx.Invoke[UserResponse](ctx, c.cc, MethodSelectByUsername, in, opts...)
}

func (c *userDbsServiceClient) List(ctx context.Context, in *model.UserQuery, opts ...grpc.CallOption) (*PageResponse, error) {
	return grpcx.Invoke[PageResponse](ctx, c.cc, MethodList, in, opts...)
}

// UserDbsServiceServer is the server API of the user data service.
type UserDbsServiceServer interface {
	Add(context.Context, *model.User) (*UserResponse, error)
	Delete(context.Context, *model.IDRequest) (*BoolResponse, error)
	Update(context.Context, *model.User) (*UserResponse, error)
	SelectByID(context.Context, *model.IDRequest) (*UserResponse, error)
	SelectByUsername(context.Context, *model.UsernameRequest) (*UserResponse, error)
	List(context.Context, *model.UserQuery) (*PageResponse, error)
}

func RegisterUserDbsServiceServer(s grpc.ServiceRegistrar, srv UserDbsServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserDbsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Add", Handler: grpcx.Unary(MethodAdd, UserDbsServiceServer.Add)},
		{MethodName: "Delete", Handler: grpcx.Unary(MethodDelete, UserDbsServiceServer.Delete)},
		{MethodName: "Update", Handler: grpcx.Unary(MethodUpdate, UserDbsServiceServer.Update)},
		{MethodName: "SelectById", Handler: grpcx.Unary(MethodSelectByID, UserDbsServiceServer.SelectByID)},
		{MethodName: "SelectByUsername", Handler: grpcx.Unary(MethodSelectByUsername, UserDbsServiceServer.SelectByUsername)},
		{MethodName: "List", Handler: grpcx.Unary(MethodList, UserDbsServiceServer.List)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "userdbs.json",
}
