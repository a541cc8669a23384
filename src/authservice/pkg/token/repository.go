// Package token manages the per-user tokens of the auth service.
package token

import (
	"context"
	"errors"

	"github.com/pnoker/dc3/src/common/errorx"
	"github.com/pnoker/dc3/src/common/model"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, t *model.Token) error
	Delete(ctx context.Context, id int64) error
	GetByUserID(ctx context.Context, userID int64) (*model.Token, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *model.Token) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// Delete flags the token as deleted. ErrNotFound means no live row matched.
func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Token{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errorx.ErrNotFound
	}
	return nil
}

// GetByUserID returns the newest live token of the user, the only one that
// verifies.
func (r *repository) GetByUserID(ctx context.Context, userID int64) (*model.Token, error) {
	var t model.Token
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
