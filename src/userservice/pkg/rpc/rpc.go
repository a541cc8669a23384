package rpc

import (
	"context"
	"errors"
	"strings"

	"github.com/pnoker/dc3/src/common/api/userdbs"
	"github.com/pnoker/dc3/src/common/errorx"
	"github.com/pnoker/dc3/src/common/model"
	"github.com/pnoker/dc3/src/common/response"
	"github.com/pnoker/dc3/src/userservice/pkg/repo"
	"github.com/sirupsen/logrus"
)

const (
	msgNotFound         = "user does not exist"
	msgExists           = "user already exists"
	msgUsernameRequired = "username is required"
)

// UserDbsService serves user records. Failures are returned in the
// response body with a nil error.
type UserDbsService struct {
	Repo repo.UserRepository
	Log  *logrus.Logger
}

var _ userdbs.UserDbsServiceServer = (*UserDbsService)(nil)

func failure[T any](err error) *response.Response[T] {
	var r response.Response[T]
	switch {
	case errors.Is(err, errorx.ErrNotFound):
		r = response.Fail[T](msgNotFound)
	case errors.Is(err, errorx.ErrAlreadyExists):
		r = response.Fail[T](msgExists)
	default:
		r = response.Fail[T](err.Error())
	}
	return &r
}

func ok[T any](data T) *response.Response[T] {
	r := response.Ok(data)
	return &r
}

func (s *UserDbsService) Add(ctx context.Context, req *model.User) (*userdbs.UserResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		r := response.Fail[*model.User](msgUsernameRequired)
		return &r, nil
	}
	s.stripBookkeeping("Add", req)
	req.ID = 0
	if err := s.Repo.Create(ctx, req); err != nil {
		s.Log.Warnf("[Add] username %q: %v", req.Username, err)
		return failure[*model.User](err), nil
	}
	return ok(req), nil
}

// stripBookkeeping drops caller supplied timestamps and delete flags. Only
// Delete may flag a row.
func (s *UserDbsService) stripBookkeeping(method string, req *model.User) {
	if req.IsDeleted() {
		s.Log.Warnf("[%s] ignoring deleted flag on user %d", method, req.ID)
	}
	req.ResetBookkeeping()
}

func (s *UserDbsService) Delete(ctx context.Context, req *model.IDRequest) (*userdbs.BoolResponse, error) {
	if err := s.Repo.Delete(ctx, req.ID); err != nil {
		return failure[bool](err), nil
	}
	return ok(true), nil
}

// Update applies the change and answers with the stored row.
func (s *UserDbsService) Update(ctx context.Context, req *model.User) (*userdbs.UserResponse, error) {
	s.stripBookkeeping("Update", req)
	if _, err := s.Repo.GetByID(ctx, req.ID); err != nil {
		return failure[*model.User](err), nil
	}
	if err := s.Repo.Update(ctx, req); err != nil {
		s.Log.Errorf("[Update] user %d: %v", req.ID, err)
		return failure[*model.User](err), nil
	}
	return s.SelectByID(ctx, &model.IDRequest{ID: req.ID})
}

func (s *UserDbsService) SelectByID(ctx context.Context, req *model.IDRequest) (*userdbs.UserResponse, error) {
	user, err := s.Repo.GetByID(ctx, req.ID)
	if err != nil {
		return failure[*model.User](err), nil
	}
	return ok(user), nil
}

func (s *UserDbsService) SelectByUsername(ctx context.Context, req *model.UsernameRequest) (*userdbs.UserResponse, error) {
	user, err := s.Repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return failure[*model.User](err), nil
	}
	return ok(user), nil
}

func (s *UserDbsService) List(ctx context.Context, req *model.UserQuery) (*userdbs.PageResponse, error) {
	q := req.Normalize()
	users, total, err := s.Repo.List(ctx, q)
	if err != nil {
		s.Log.Errorf("[List] %v", err)
		return failure[model.Page[*model.User]](err), nil
	}
	return ok(model.NewPage(users, total, *q.Page)), nil
}
