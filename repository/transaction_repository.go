package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"rocketboost-admin/models"
)

// TransactionRepository reads balance transactions
type TransactionRepository struct {
	db *sqlx.DB
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *sqlx.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Ensure TransactionRepository implements TransactionRepositoryInterface
var _ TransactionRepositoryInterface = (*TransactionRepository)(nil)

const transactionColumns = `id, user_id, type, amount, order_id, slip_url, remark, created_at`

// GetByID returns a single transaction
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.GetContext(ctx, &t, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &t, nil
}

// ListByUser returns the latest transactions of a user, newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	err := r.db.SelectContext(ctx, &transactions, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	return transactions, nil
}
