// Package client holds the auth service's clients of downstream services.
package client

import (
	"context"
	"time"

	"github.com/pnoker/dc3/src/common/api/userdbs"
	"github.com/pnoker/dc3/src/common/model"
	"github.com/pnoker/dc3/src/common/response"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"google.golang.org/grpc/status"
)

// UserDbsClient calls the user data service behind a circuit breaker and a
// per-call timeout. Transport failures come back as failed Responses
// carrying the status message; they never surface as Go errors.
type UserDbsClient struct {
	client  userdbs.UserDbsServiceClient
	cb      *gobreaker.CircuitBreaker
	timeout time.Duration
	log     *logrus.Logger
}

func NewUserDbsClient(client userdbs.UserDbsServiceClient, timeout time.Duration, log *logrus.Logger) *UserDbsClient {
	st := gobreaker.Settings{
		Name:        "UserDbsService",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnf("CircuitBreaker[%s] state changed from %s to %s", name, from, to)
		},
	}

	return &UserDbsClient{
		client:  client,
		cb:      gobreaker.NewCircuitBreaker(st),
		timeout: timeout,
		log:     log,
	}
}

func call[T any](ctx context.Context, w *UserDbsClient, method string, fn func(context.Context) (*response.Response[T], error)) response.Response[T] {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	res, err := w.cb.Execute(func() (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		w.log.Warnf("[UserDbs.%s] call failed: %v", method, err)
		return response.Fail[T](status.Convert(err).Message())
	}
	return *res.(*response.Response[T])
}

// userCall is call for methods answering with a user. The password hash
// never leaves the client.
func userCall(ctx context.Context, w *UserDbsClient, method string, fn func(context.Context) (*userdbs.UserResponse, error)) response.Response[*model.User] {
	r := call(ctx, w, method, fn)
	r.Data = r.Data.WithoutPassword()
	return r
}

func (w *UserDbsClient) Add(ctx context.Context, user *model.User) response.Response[*model.User] {
	return userCall(ctx, w, "Add", func(ctx context.Context) (*userdbs.UserResponse, error) {
		return w.client.Add(ctx, user)
	})
}

func (w *UserDbsClient) Delete(ctx context.Context, id int64) response.Response[bool] {
	return call(ctx, w, "Delete", func(ctx context.Context) (*userdbs.BoolResponse, error) {
		return w.client.Delete(ctx, &model.IDRequest{ID: id})
	})
}

func (w *UserDbsClient) Update(ctx context.Context, user *model.User) response.Response[*model.User] {
	return userCall(ctx, w, "Update", func(ctx context.Context) (*userdbs.UserResponse, error) {
		return w.client.Update(ctx, user)
	})
}

func (w *UserDbsClient) SelectByID(ctx context.Context, id int64) response.Response[*model.User] {
	return userCall(ctx, w, "SelectById", func(ctx context.Context) (*userdbs.UserResponse, error) {
		return w.client.SelectByID(ctx, &model.IDRequest{ID: id})
	})
}

func (w *UserDbsClient) SelectByUsername(ctx context.Context, username string) response.Response[*model.User] {
	return userCall(ctx, w, "SelectByUsername", func(ctx context.Context) (*userdbs.UserResponse, error) {
		return w.client.SelectByUsername(ctx, &model.UsernameRequest{Username: username})
	})
}

func (w *UserDbsClient) List(ctx context.Context, query model.UserQuery) response.Response[model.Page[*model.User]] {
	r := call(ctx, w, "List", func(ctx context.Context) (*userdbs.PageResponse, error) {
		return w.client.List(ctx, &query)
	})
	for i, u := range r.Data.Records {
		r.Data.Records[i] = u.WithoutPassword()
	}
	return r
}
