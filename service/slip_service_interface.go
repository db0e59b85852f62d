package service

import "context"

// SlipServiceInterface defines the contract for serving top-up slip previews
type SlipServiceInterface interface {
	Slip(ctx context.Context, transactionID int64, size string) ([]byte, error)
}
