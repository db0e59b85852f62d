package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is a customer of the shop, identified by their chat platform id
type User struct {
	ID             int64           `db:"id" json:"id"`
	PlatformUserID string          `db:"platform_user_id" json:"platform_user_id"`
	Username       *string         `db:"username" json:"username"`
	Balance        decimal.Decimal `db:"balance" json:"balance"`
	TotalSpent     decimal.Decimal `db:"total_spent" json:"total_spent"`
	CreatedAt      *time.Time      `db:"created_at" json:"created_at"`
}

// UserFilter holds the query parameters of the user list
type UserFilter struct {
	Page     int
	PageSize int
	Search   string
}

// TopUpRequest is the body of POST /api/users/{id}/topup
type TopUpRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	Remark  *string         `json:"remark"`
	SlipURL *string         `json:"slip_url"`
}

// TopUpResult is returned after crediting a user's balance
type TopUpResult struct {
	Success       bool            `json:"success"`
	Balance       decimal.Decimal `json:"balance"`
	TransactionID int64           `json:"transaction_id"`
}
