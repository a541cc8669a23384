package repo

import (
	"context"
	"errors"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/pnoker/dc3/src/common/errorx"
	"github.com/pnoker/dc3/src/common/model"
	"gorm.io/gorm"
)

// mysql error number for a unique key violation
const errDupEntry = 1062

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
	Update(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, query model.UserQuery) ([]*model.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) && myErr.Number == errDupEntry {
		return errorx.ErrAlreadyExists
	}
	return err
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errorx.ErrNotFound
	}
	return nil
}

// Update writes the non-zero fields of user. The username, create_time and
// deleted columns are never written.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Model(user).Omit("username", "create_time", "deleted").Updates(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	return first(r.db.WithContext(ctx).Where("id = ?", id), &user)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	return first(r.db.WithContext(ctx).Where("username = ?", username), &user)
}

func first(tx *gorm.DB, user *model.User) (*model.User, error) {
	err := tx.First(user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// List returns one page of users matching query and the total match count.
func (r *userRepository) List(ctx context.Context, query model.UserQuery) ([]*model.User, int64, error) {
	q := query.Normalize()
	tx := r.db.WithContext(ctx).Model(&model.User{})
	if q.Username != "" {
		tx = tx.Where("username LIKE ?", "%"+q.Username+"%")
	}
	if q.Phone != "" {
		tx = tx.Where("phone LIKE ?", "%"+q.Phone+"%")
	}
	if q.Email != "" {
		tx = tx.Where("email LIKE ?", "%"+q.Email+"%")
	}
	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	users := []*model.User{}
	if total == 0 {
		return users, 0, nil
	}
	if err := tx.Order("id").Offset(q.Offset()).Limit(int(q.Page.Size)).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
