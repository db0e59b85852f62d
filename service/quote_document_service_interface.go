package service

import (
	"context"

	"rocketboost-admin/pricing"
)

// QuoteDocumentServiceInterface defines the contract for rendering quotes as
// shareable documents
type QuoteDocumentServiceInterface interface {
	RenderHTML(quote pricing.Quote) (string, error)
	GeneratePDF(ctx context.Context, quote pricing.Quote) ([]byte, error)
	GeneratePNG(ctx context.Context, quote pricing.Quote) ([]byte, error)
}
