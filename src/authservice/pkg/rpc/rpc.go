package rpc

import (
	"context"

	"github.com/pnoker/dc3/src/authservice/pkg/service"
	"github.com/pnoker/dc3/src/common/api/userauth"
	"github.com/pnoker/dc3/src/common/model"
)

// UserAuthService serves the orchestrator over gRPC. Failures travel in the
// response body, so handlers never return an error. Users go out without
// their password hash.
type UserAuthService struct {
	Logic service.UserAuthLogic
}

var _ userauth.UserAuthServiceServer = (*UserAuthService)(nil)

func (s *UserAuthService) Add(ctx context.Context, req *model.User) (*userauth.UserResponse, error) {
	return userReply(s.Logic.Add(ctx, req)), nil
}

func (s *UserAuthService) Delete(ctx context.Context, req *model.IDRequest) (*userauth.BoolResponse, error) {
	res := s.Logic.Delete(ctx, req.ID)
	return &res, nil
}

func (s *UserAuthService) Update(ctx context.Context, req *model.User) (*userauth.UserResponse, error) {
	return userReply(s.Logic.Update(ctx, req)), nil
}

func (s *UserAuthService) SelectByID(ctx context.Context, req *model.IDRequest) (*userauth.UserResponse, error) {
	return userReply(s.Logic.SelectByID(ctx, req.ID)), nil
}

func (s *UserAuthService) SelectByUsername(ctx context.Context, req *model.UsernameRequest) (*userauth.UserResponse, error) {
	return userReply(s.Logic.SelectByUsername(ctx, req.Username)), nil
}

func (s *UserAuthService) List(ctx context.Context, req *model.UserQuery) (*userauth.PageResponse, error) {
	res := s.Logic.List(ctx, *req)
	for i, u := range res.Data.Records {
		res.Data.Records[i] = u.WithoutPassword()
	}
	return &res, nil
}

func (s *UserAuthService) CheckUserValid(ctx context.Context, req *model.UsernameRequest) (*userauth.BoolResponse, error) {
	res := s.Logic.CheckUserValid(ctx, req.Username)
	return &res, nil
}

func (s *UserAuthService) VerifyToken(ctx context.Context, req *model.TokenRequest) (*userauth.Int64Response, error) {
	res := s.Logic.VerifyToken(ctx, req.Token)
	return &res, nil
}

func userReply(res userauth.UserResponse) *userauth.UserResponse {
	res.Data = res.Data.WithoutPassword()
	return &res
}
