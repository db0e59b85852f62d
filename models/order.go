package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses used by the admin API
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
)

// OrderListItem is one row of GET /api/orders
type OrderListItem struct {
	ID              int64     `db:"id" json:"id"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	Link            string    `db:"link" json:"link"`
	Quantity        int       `db:"quantity" json:"quantity"`
	Status          *string   `db:"status" json:"status"`
	ProviderOrderID *int64    `db:"provider_order_id" json:"provider_order_id"`
	StartCount      *int      `db:"start_count" json:"start_count"`
	Remark          *string   `db:"remark" json:"remark"`
	ServiceName     *string   `db:"service_name" json:"service_name"`
	ProviderCode    *string   `db:"provider_code" json:"provider_code"`
}

// OrderFilter holds the query parameters of the order list
type OrderFilter struct {
	Page      int
	PageSize  int
	Search    string
	Status    string
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	Remark    string
}

// Order is the subset of an order needed to process a refill
type Order struct {
	ID              int64     `db:"id" json:"id"`
	Link            string    `db:"link" json:"link"`
	Quantity        int       `db:"quantity" json:"quantity"`
	ServiceID       *int64    `db:"service_id" json:"service_id"`
	ProviderOrderID *int64    `db:"provider_order_id" json:"provider_order_id"`
	StartCount      int       `db:"start_count" json:"start_count"`
	Remark          *string   `db:"remark" json:"remark"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// UpdateOrderRequest is the body of PATCH /api/orders/{id}
type UpdateOrderRequest struct {
	Status *string          `json:"status"`
	Remark Optional[string] `json:"remark"`
}

// RefillRequest is the body of POST /api/orders/{id}/refill
type RefillRequest struct {
	CurrentCount *int `json:"current_count"`
}

// RefillWebhookPayload is sent to the refill webhook for a single order
type RefillWebhookPayload struct {
	OrderID      int64 `json:"order_id"`
	CurrentCount int   `json:"current_count"`
}

// ResubmitRequest is the body of POST /api/orders/resubmit
type ResubmitRequest struct {
	OldOrderID   int64  `json:"old_order_id"`
	NewServiceID int64  `json:"new_service_id"`
	Link         string `json:"link"`
	Qty          int    `json:"qty"`
}

// BulkOrderItem is one order forwarded to the bulk webhook
type BulkOrderItem struct {
	ServiceID   int64            `json:"service_id"`
	Link        string           `json:"link"`
	Quantity    int              `json:"quantity"`
	StartCount  *int             `json:"start_count,omitempty"`
	CustomPrice *decimal.Decimal `json:"custom_price,omitempty"`
	WaitForPrev *bool            `json:"wait_for_prev,omitempty"`
	Remark      string           `json:"remark,omitempty"`
}

// BulkOrderRequest is the body of POST /api/orders/bulk
type BulkOrderRequest struct {
	Orders []BulkOrderItem `json:"orders"`
}

// RefillBulkRequest is the body of POST /api/orders/refill-bulk
type RefillBulkRequest struct {
	Refills []RefillWebhookPayload `json:"refills"`
}
