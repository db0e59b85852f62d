package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"rocketboost-admin/logging"
	"rocketboost-admin/models"
)

const pgUniqueViolation = "23505"

// ServiceRepository handles database operations for the service catalog
type ServiceRepository struct {
	db *sqlx.DB
}

// NewServiceRepository creates a new ServiceRepository
func NewServiceRepository(db *sqlx.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// Ensure ServiceRepository implements ServiceRepositoryInterface
var _ ServiceRepositoryInterface = (*ServiceRepository)(nil)

// List returns every service ordered by id
func (r *ServiceRepository) List(ctx context.Context) ([]models.Service, error) {
	query := `
		SELECT id, name, price, is_active, provider_code, provider_service_id,
		       backup_service_id, refill_service_id, min_qty, max_qty, cost_price, price_tiers
		FROM services
		ORDER BY id`

	services := []models.Service{}
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		logging.Sugar.Errorf("❌ ListServices: Error querying services: %v", err)
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	return services, nil
}

// Create inserts a service, filling in catalog defaults for omitted fields
func (r *ServiceRepository) Create(ctx context.Context, req *models.CreateServiceRequest) error {
	logging.Sugar.Infof("💾 CreateService: id=%d, name=%s", req.ID, req.Name)

	providerServiceID := int64(0)
	if req.ProviderServiceID != nil {
		providerServiceID = *req.ProviderServiceID
	}
	costPrice := decimal.Zero
	if req.CostPrice != nil {
		costPrice = req.CostPrice.Round(4)
	}
	priceTiers := req.PriceTiers
	if priceTiers.IsNull() {
		priceTiers = models.JSON("[]")
	}
	minQty := models.DefaultMinQty
	if req.MinQty != nil {
		minQty = *req.MinQty
	}
	maxQty := models.DefaultMaxQty
	if req.MaxQty != nil {
		maxQty = *req.MaxQty
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	query := `
		INSERT INTO services (id, name, provider_code, provider_service_id, cost_price, price,
		                      price_tiers, min_qty, max_qty, is_active, backup_service_id, refill_service_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		req.ID,
		req.Name,
		req.ProviderCode,
		providerServiceID,
		costPrice,
		req.Price.Round(2),
		priceTiers,
		minQty,
		maxQty,
		isActive,
		req.BackupServiceID,
		req.RefillServiceID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrServiceExists
		}
		logging.Sugar.Errorf("❌ CreateService: Error inserting service: %v", err)
		return fmt.Errorf("failed to insert service: %w", err)
	}

	logging.Sugar.Infof("✅ CreateService: Created service id=%d", req.ID)
	return nil
}

// Update applies a partial update. Explicit nulls on defaulted columns reset
// them to their catalog defaults.
func (r *ServiceRepository) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) error {
	var b clauseBuilder

	if req.Name != nil {
		b.add("name = $%d", *req.Name)
	}
	if req.Price != nil {
		b.add("price = $%d", req.Price.Round(2))
	}
	if req.IsActive != nil {
		b.add("is_active = $%d", *req.IsActive)
	}
	if req.ProviderCode.Set {
		b.add("provider_code = $%d", req.ProviderCode.Value)
	}
	if req.ProviderServiceID.Set {
		b.add("provider_service_id = $%d", valueOr(req.ProviderServiceID.Value, 0))
	}
	if req.CostPrice.Set {
		b.add("cost_price = $%d", valueOr(req.CostPrice.Value, decimal.Zero).Round(4))
	}
	if req.PriceTiers != nil {
		b.add("price_tiers = $%d", req.PriceTiers)
	}
	if req.MinQty.Set {
		b.add("min_qty = $%d", valueOr(req.MinQty.Value, models.DefaultMinQty))
	}
	if req.MaxQty.Set {
		b.add("max_qty = $%d", valueOr(req.MaxQty.Value, models.DefaultMaxQty))
	}
	if req.BackupServiceID.Set {
		b.add("backup_service_id = $%d", req.BackupServiceID.Value)
	}
	if req.RefillServiceID.Set {
		b.add("refill_service_id = $%d", req.RefillServiceID.Value)
	}

	if b.empty() {
		return ensureExists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM services WHERE id = $1)`, id, ErrServiceNotFound)
	}

	query := fmt.Sprintf("UPDATE services SET %s WHERE id = $%d", b.set(), b.next())
	result, err := r.db.ExecContext(ctx, query, append(b.args, id)...)
	if err != nil {
		logging.Sugar.Errorf("❌ UpdateService: Error updating service %d: %v", id, err)
		return fmt.Errorf("failed to update service: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func valueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
