package repository

import (
	"context"
	"time"

	"rocketboost-admin/models"
)

// OrderRepositoryInterface defines the contract for order repository operations
type OrderRepositoryInterface interface {
	List(ctx context.Context, filter models.OrderFilter) (*models.Page[models.OrderListItem], error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	Update(ctx context.Context, id int64, req *models.UpdateOrderRequest) error
	SetStatus(ctx context.Context, id int64, status string) error
}

// ServiceRepositoryInterface defines the contract for service catalog operations
type ServiceRepositoryInterface interface {
	List(ctx context.Context) ([]models.Service, error)
	Create(ctx context.Context, req *models.CreateServiceRequest) error
	Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) error
}

// ProviderRepositoryInterface defines the contract for provider operations
type ProviderRepositoryInterface interface {
	List(ctx context.Context) ([]models.Provider, error)
	Update(ctx context.Context, code string, req *models.UpdateProviderRequest) error
}

// UserRepositoryInterface defines the contract for user operations
type UserRepositoryInterface interface {
	List(ctx context.Context, filter models.UserFilter) (*models.Page[models.User], error)
	TopUp(ctx context.Context, userID int64, req *models.TopUpRequest) (*models.TopUpResult, error)
}

// TransactionRepositoryInterface defines the contract for balance transaction lookups
type TransactionRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*models.Transaction, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]models.Transaction, error)
}

// StatsRepositoryInterface defines the contract for dashboard statistics
type StatsRepositoryInterface interface {
	Summary(ctx context.Context, todayStart, refillSince time.Time) (*models.StatsSummary, error)
	PeriodOverview(ctx context.Context, start, end time.Time) (*models.PeriodOverview, error)
	Quality(ctx context.Context) ([]models.ServiceQuality, error)
}
