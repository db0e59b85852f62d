package service

import (
	"context"
	"encoding/json"

	"rocketboost-admin/models"
	"rocketboost-admin/pricing"
)

// FulfillmentServiceInterface defines the contract for handing orders to the
// n8n automation that places them with providers
type FulfillmentServiceInterface interface {
	Refill(ctx context.Context, orderID int64, currentCount *int) (*models.SuccessResponse, error)
	RefillFloor(ctx context.Context, orderID int64) (pricing.RefillThreshold, error)
	Resubmit(ctx context.Context, req *models.ResubmitRequest) error
	SubmitBulk(ctx context.Context, req *models.BulkOrderRequest) (json.RawMessage, error)
	SubmitRefillBulk(ctx context.Context, req *models.RefillBulkRequest) (json.RawMessage, error)
}
