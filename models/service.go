package models

import "github.com/shopspring/decimal"

// Default values applied when a service is created without them
const (
	DefaultMinQty = 100
	DefaultMaxQty = 10000
)

// Service is a sellable item mapped to a provider's service
type Service struct {
	ID                int64               `db:"id" json:"id"`
	Name              string              `db:"name" json:"name"`
	Price             decimal.Decimal     `db:"price" json:"price"`
	IsActive          *bool               `db:"is_active" json:"is_active"`
	ProviderCode      *string             `db:"provider_code" json:"provider_code"`
	ProviderServiceID int64               `db:"provider_service_id" json:"provider_service_id"`
	BackupServiceID   *int64              `db:"backup_service_id" json:"backup_service_id"`
	RefillServiceID   *int64              `db:"refill_service_id" json:"refill_service_id"`
	MinQty            *int                `db:"min_qty" json:"min_qty"`
	MaxQty            *int                `db:"max_qty" json:"max_qty"`
	CostPrice         decimal.NullDecimal `db:"cost_price" json:"cost_price"`
	PriceTiers        JSON                `db:"price_tiers" json:"price_tiers"`
}

// CreateServiceRequest is the body of POST /api/services
type CreateServiceRequest struct {
	ID                int64            `json:"id"`
	Name              string           `json:"name"`
	ProviderCode      *string          `json:"provider_code"`
	ProviderServiceID *int64           `json:"provider_service_id"`
	CostPrice         *decimal.Decimal `json:"cost_price"`
	Price             *decimal.Decimal `json:"price"`
	PriceTiers        JSON             `json:"price_tiers"`
	MinQty            *int             `json:"min_qty"`
	MaxQty            *int             `json:"max_qty"`
	IsActive          *bool            `json:"is_active"`
	BackupServiceID   *int64           `json:"backup_service_id"`
	RefillServiceID   *int64           `json:"refill_service_id"`
}

// UpdateServiceRequest is the body of PATCH /api/services/{id}. Nullable
// columns use Optional so an explicit null can be told apart from "leave as is".
type UpdateServiceRequest struct {
	Name              *string                   `json:"name"`
	Price             *decimal.Decimal          `json:"price"`
	IsActive          *bool                     `json:"is_active"`
	ProviderCode      Optional[string]          `json:"provider_code"`
	ProviderServiceID Optional[int64]           `json:"provider_service_id"`
	CostPrice         Optional[decimal.Decimal] `json:"cost_price"`
	PriceTiers        JSON                      `json:"price_tiers"`
	MinQty            Optional[int]             `json:"min_qty"`
	MaxQty            Optional[int]             `json:"max_qty"`
	BackupServiceID   Optional[int64]           `json:"backup_service_id"`
	RefillServiceID   Optional[int64]           `json:"refill_service_id"`
}
