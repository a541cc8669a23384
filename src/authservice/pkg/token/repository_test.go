package token

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pnoker/dc3/src/common/errorx"
	"github.com/pnoker/dc3/src/common/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec("INSERT INTO `dc3_token`").WillReturnResult(sqlmock.NewResult(9, 1))

	tok := &model.Token{UserID: 3, Token: "signed"}
	require.NoError(t, repo.Create(context.Background(), tok))
	assert.Equal(t, int64(9), tok.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteIsSoft(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec("UPDATE `dc3_token` SET `deleted`").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 9))

	mock.ExpectExec("UPDATE `dc3_token` SET `deleted`").WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.Delete(context.Background(), 9)
	assert.ErrorIs(t, err, errorx.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "token"}).AddRow(9, 3, "signed")
	mock.ExpectQuery("SELECT \\* FROM `dc3_token` WHERE user_id = \\? .*ORDER BY id DESC LIMIT \\?").WillReturnRows(rows)

	tok, err := repo.GetByUserID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(9), tok.ID)
	assert.Equal(t, int64(3), tok.UserID)
	assert.Equal(t, "signed", tok.Token)

	mock.ExpectQuery("SELECT \\* FROM `dc3_token`").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = repo.GetByUserID(context.Background(), 4)
	assert.ErrorIs(t, err, errorx.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
