package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"rocketboost-admin/logging"
	"rocketboost-admin/models"
)

// UserRepository handles database operations for customers
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure UserRepository implements UserRepositoryInterface
var _ UserRepositoryInterface = (*UserRepository)(nil)

// List returns one page of users, oldest first
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) (*models.Page[models.User], error) {
	var b clauseBuilder
	if search := strings.TrimSpace(filter.Search); search != "" {
		b.add("(username ILIKE $%d OR platform_user_id ILIKE $%d)", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT count(*) FROM users"+b.where(), b.args...); err != nil {
		logging.Sugar.Errorf("❌ ListUsers: Error counting users: %v", err)
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, platform_user_id, username,
		       COALESCE(balance, 0) AS balance, COALESCE(total_spent, 0) AS total_spent, created_at
		FROM users%s
		ORDER BY created_at
		LIMIT $%d OFFSET $%d`, b.where(), b.next(), b.next()+1)

	users := []models.User{}
	args := append(b.args, filter.PageSize, offset(filter.Page, filter.PageSize))
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		logging.Sugar.Errorf("❌ ListUsers: Error querying users: %v", err)
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	return &models.Page[models.User]{
		Data:     users,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Total:    total,
	}, nil
}

// TopUp credits a user's balance and records a TOPUP transaction atomically
func (r *UserRepository) TopUp(ctx context.Context, userID int64, req *models.TopUpRequest) (*models.TopUpResult, error) {
	logging.Sugar.Infof("💰 TopUp: user=%d, amount=%s", userID, req.Amount)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be greater than 0")
	}
	amount := req.Amount.Round(2)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current decimal.Decimal
	err = tx.GetContext(ctx, &current,
		`SELECT COALESCE(balance, 0) FROM users WHERE id = $1 FOR UPDATE`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logging.Sugar.Warnf("❌ TopUp: User not found: %d", userID)
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}

	var balance decimal.Decimal
	err = tx.GetContext(ctx, &balance,
		`UPDATE users SET balance = COALESCE(balance, 0) + $1 WHERE id = $2 RETURNING balance`,
		amount, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	var transactionID int64
	err = tx.GetContext(ctx, &transactionID, `
		INSERT INTO transactions (user_id, type, amount, slip_url, remark)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		userID, models.TransactionTypeTopUp, amount, req.SlipURL, req.Remark)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logging.Sugar.Infof("✅ TopUp: user=%d balance %s -> %s (transaction %d)", userID, current, balance, transactionID)
	return &models.TopUpResult{
		Success:       true,
		Balance:       balance,
		TransactionID: transactionID,
	}, nil
}
