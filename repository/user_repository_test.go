package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rocketboost-admin/models"
)

func TestUserRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	created := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM users WHERE (username ILIKE $1 OR platform_user_id ILIKE $2)")).
		WithArgs("%mint%", "%mint%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $3 OFFSET $4")).
		WithArgs("%mint%", "%mint%", 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "platform_user_id", "username", "balance", "total_spent", "created_at"}).
			AddRow(1, "U123", "mint", "150.50", "2000.00", created))

	page, err := repo.List(context.Background(), models.UserFilter{Page: 1, PageSize: 20, Search: "mint"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.True(t, decimal.RequireFromString("150.5").Equal(page.Data[0].Balance))
	assert.Equal(t, "U123", page.Data[0].PlatformUserID)
}

func TestUserRepository_TopUp(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(balance, 0) FROM users WHERE id = $1 FOR UPDATE")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("50.00"))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET balance = COALESCE(balance, 0) + $1 WHERE id = $2 RETURNING balance")).
		WithArgs("100", 4).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("150.00"))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO transactions")).
		WithArgs(4, models.TransactionTypeTopUp, "100", "https://drive.google.com/file/d/abcdefghijkl/view", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(88))
	mock.ExpectCommit()

	result, err := repo.TopUp(context.Background(), 4, &models.TopUpRequest{
		Amount:  decimal.NewFromInt(100),
		SlipURL: strPtr("https://drive.google.com/file/d/abcdefghijkl/view"),
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int64(88), result.TransactionID)
	assert.True(t, decimal.NewFromInt(150).Equal(result.Balance))
}

func TestUserRepository_TopUp_UserNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}))
	mock.ExpectRollback()

	_, err := repo.TopUp(context.Background(), 9, &models.TopUpRequest{Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_TopUp_InsertFailsRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("0"))
	mock.ExpectQuery("UPDATE users").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("10"))
	mock.ExpectQuery("INSERT INTO transactions").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.TopUp(context.Background(), 1, &models.TopUpRequest{Amount: decimal.NewFromInt(10)})
	assert.Error(t, err)
}

func TestUserRepository_TopUp_RejectsNonPositive(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewUserRepository(db)

	_, err := repo.TopUp(context.Background(), 1, &models.TopUpRequest{Amount: decimal.Zero})
	assert.Error(t, err)
}

func TestTransactionRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepository(db)

	mock.ExpectQuery("FROM transactions WHERE id = \\$1").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 3)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestTransactionRepository_ListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepository(db)

	cols := []string{"id", "user_id", "type", "amount", "order_id", "slip_url", "remark", "created_at"}
	mock.ExpectQuery("WHERE user_id = \\$1").
		WithArgs(4, 50).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(2, 4, "TOPUP", "100.00", nil, nil, "promo", nil).
			AddRow(1, 4, "ORDER", "-20.00", 9, nil, nil, nil))

	txs, err := repo.ListByUser(context.Background(), 4, 50)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "TOPUP", txs[0].Type)
	assert.Equal(t, int64(9), *txs[1].OrderID)
}
