package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Provider is an upstream SMM panel
type Provider struct {
	Code      string     `db:"code" json:"code"`
	Name      *string    `db:"name" json:"name"`
	APIURL    string     `db:"api_url" json:"api_url"`
	APIKey    string     `db:"api_key" json:"api_key"`
	CreatedAt *time.Time `db:"created_at" json:"-"`
}

// UpdateProviderRequest is the body of PATCH /api/providers/{code}
type UpdateProviderRequest struct {
	Name   Optional[string] `json:"name"`
	APIURL *string          `json:"api_url"`
	APIKey *string          `json:"api_key"`
}

// Balance lookup outcomes
const (
	BalanceStatusOK    = "ok"
	BalanceStatusError = "error"
)

// ProviderBalance is the balance of one provider account
type ProviderBalance struct {
	Code           string           `json:"code"`
	Name           *string          `json:"name"`
	Balance        *decimal.Decimal `json:"balance"`
	Currency       string           `json:"currency,omitempty"`
	BalanceStatus  string           `json:"balance_status"`
	BalanceMessage string           `json:"balance_message,omitempty"`
	LowBalance     bool             `json:"low_balance"`
}
