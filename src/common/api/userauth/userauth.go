// Package userauth is the gRPC contract of the auth service.
package userauth

import (
	"context"

	"github.com/pnoker/dc3/src/common/grpcx"
	"github.com/pnoker/dc3/src/common/model"
	"github.com/pnoker/dc3/src/common/response"
	"google.golang.org/grpc"
)

const ServiceName = "dc3.auth.UserAuthService"

const (
	MethodAdd              = "/" + ServiceName + "/Add"
	MethodDelete           = "/" + ServiceName + "/Delete"
	MethodUpdate           = "/" + ServiceName + "/Update"
	MethodSelectByID       = "/" + ServiceName + "/SelectById"
	MethodSelectByUsername = "/" + ServiceName + "/SelectByUsername"
	MethodList             = "/" + ServiceName + "/List"
	MethodCheckUserValid   = "/" + ServiceName + "/CheckUserValid"
	MethodVerifyToken      = "/" + ServiceName + "/VerifyToken"
)

type (
	UserResponse  = response.Response[*model.User]
	BoolResponse  = response.Response[bool]
	PageResponse  = response.Response[model.Page[*model.User]]
	Int64Response = response.Response[int64]
)

// UserAuthServiceClient is the client API of the auth service.
type UserAuthServiceClient interface {
	Add(ctx context.Context, in *model.User, opts ...grpc.CallOption) (*UserResponse, error)
	Delete(ctx context.Context, in *model.IDRequest, opts ...grpc.CallOption) (*BoolResponse, error)
	Update(ctx context.Context, in *model.User, opts ...grpc.CallOption) (*UserResponse, error)
	SelectByID(ctx context.Context, in *model.IDRequest, opts ...grpc.CallOption) (*UserResponse, error)
	SelectByUsername(ctx context.Context, in *model.UsernameRequest, opts ...grpc.CallOption) (*UserResponse, error)
	List(ctx context.Context, in *model.UserQuery, opts ...grpc.CallOption) (*PageResponse, error)
	CheckUserValid(ctx context.Context, in *model.UsernameRequest, opts ...grpc.CallOption) (*BoolResponse, error)
	VerifyToken(ctx context.Context, in *model.TokenRequest, opts ...grpc.CallOption) (*Int64Response, error)
}

type userAuthServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewUserAuthServiceClient(cc grpc.ClientConnInterface) UserAuthServiceClient {
	return &userAuthServiceClient{cc: cc}
}

func (c *userAuthServiceClient) Add(ctx context.Context, in *model.User, opts ...grpc.CallOption) (*UserResponse, error) {
	return grpcx.Invoke[UserResponse](ctx, c.cc, MethodAdd, in, opts...)
}

func (c *userAuthServiceClient) Delete(ctx context.Context, in *model.IDRequest, opts ...grpc.CallOption) (*BoolResponse, error) {
	return grpcx.Invoke[BoolResponse](ctx, c.cc, MethodDelete, in, opts...)
}

func (c *userAuthServiceClient) Update(ctx context.Context, in *model.User, opts ...grpc.CallOption) (*UserResponse, error) {
	return grpcx.Invoke[UserResponse](ctx, c.cc, MethodUpdate, in, opts...)
}

func (c *userAuthServiceClient) SelectByID(ctx context.Context, in *model.IDRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return grpcx.Invoke[UserResponse](ctx, c.cc, MethodSelectByID, in, opts...)
}

func (c *userAuthServiceClient) SelectByUsername(ctx context.Context, in *model.UsernameRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return grpcx.Invoke[UserResponse](ctx, c.cc, MethodSelectByUsername, in, opts...)
}

func (c *userAuthServiceClient) List(ctx context.Context, in *model.UserQuery, opts ...grpc.CallOption) (*PageResponse, error) {
	return grpcx.Invoke[PageResponse](ctx, c.cc, MethodList, in, opts...)
}

func (c *userAuthServiceClient) CheckUserValid(ctx context.Context, in *model.UsernameRequest, opts ...grpc.CallOption) (*BoolResponse, error) {
	return grpcx.Invoke[BoolResponse](ctx, c.cc, MethodCheckUserValid, in, opts...)
}

func (c *userAuthServiceClient) VerifyToken(ctx context.Context, in *model.TokenRequest, opts ...grpc.CallOption) (*Int64Response, error) {
	return grpcx.Invoke[Int64Response](ctx, c.cc, MethodVerifyToken, in, opts...)
}

// UserAuthServiceServer is the server API of the auth service.
type UserAuthServiceServer interface {
	Add(context.Context, *model.User) (*UserResponse, error)
	Delete(context.Context, *model.IDRequest) (*BoolResponse, error)
	Update(context.Context, *model.User) (*UserResponse, error)
	SelectByID(context.Context, *model.IDRequest) (*UserResponse, error)
	SelectByUsername(context.Context, *model.UsernameRequest) (*UserResponse, error)
	List(context.Context, *model.UserQuery) (*PageResponse, error)
	CheckUserValid(context.Context, *model.UsernameRequest) (*BoolResponse, error)
	VerifyToken(context.Context, *model.TokenRequest) (*Int64Response, error)
}

func RegisterUserAuthServiceServer(s grpc.ServiceRegistrar, srv UserAuthServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserAuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Add", Handler: grpcx.Unary(MethodAdd, UserAuthServiceServer.Add)},
		{MethodName: "Delete", Handler: grpcx.Unary(MethodDelete, UserAuthServiceServer.Delete)},
		{MethodName: "Update", Handler: grpcx.Unary(MethodUpdate, UserAuthServiceServer.Update)},
		{MethodName: "SelectById", Handler: grpcx.Unary(MethodSelectByID, UserAuthServiceServer.SelectByID)},
		{MethodName: "SelectByUsername", Handler: grpcx.Unary(MethodSelectByUsername, UserAuthServiceServer.SelectByUsername)},
		{MethodName: "List", Handler: grpcx.Unary(MethodList, UserAuthServiceServer.List)},
		{MethodName: "CheckUserValid", Handler: grpcx.Unary(MethodCheckUserValid, UserAuthServiceServer.CheckUserValid)},
		{MethodName: "VerifyToken", Handler: grpcx.Unary(MethodVerifyToken, UserAuthServiceServer.VerifyToken)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "userauth.json",
}
