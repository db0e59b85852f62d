package service

import (
	"context"

	"rocketboost-admin/models"
)

// BalanceServiceInterface defines the contract for provider balance polling
type BalanceServiceInterface interface {
	Balances(ctx context.Context) ([]models.ProviderBalance, error)
	Invalidate(code string)
}
