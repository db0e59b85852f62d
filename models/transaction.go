package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionTypeTopUp marks a manual balance credit
const TransactionTypeTopUp = "TOPUP"

// Transaction is a movement on a user's balance
type Transaction struct {
	ID        int64           `db:"id" json:"id"`
	UserID    *int64          `db:"user_id" json:"user_id"`
	Type      string          `db:"type" json:"type"` // TOPUP, ORDER, REFUND
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	OrderID   *int64          `db:"order_id" json:"order_id"`
	SlipURL   *string         `db:"slip_url" json:"slip_url"`
	Remark    *string         `db:"remark" json:"remark"`
	CreatedAt *time.Time      `db:"created_at" json:"created_at"`
}
