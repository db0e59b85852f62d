package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"rocketboost-admin/logging"
	"rocketboost-admin/models"
)

// ProviderRepository handles database operations for upstream panels
type ProviderRepository struct {
	db *sqlx.DB
}

// NewProviderRepository creates a new ProviderRepository
func NewProviderRepository(db *sqlx.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

// Ensure ProviderRepository implements ProviderRepositoryInterface
var _ ProviderRepositoryInterface = (*ProviderRepository)(nil)

// List returns every provider ordered by code
func (r *ProviderRepository) List(ctx context.Context) ([]models.Provider, error) {
	providers := []models.Provider{}
	err := r.db.SelectContext(ctx, &providers,
		`SELECT code, name, api_url, api_key, created_at FROM providers ORDER BY code`)
	if err != nil {
		logging.Sugar.Errorf("❌ ListProviders: Error querying providers: %v", err)
		return nil, fmt.Errorf("failed to query providers: %w", err)
	}
	return providers, nil
}

// Update changes the name or API credentials of a provider
func (r *ProviderRepository) Update(ctx context.Context, code string, req *models.UpdateProviderRequest) error {
	var b clauseBuilder
	if req.Name.Set {
		b.add("name = $%d", req.Name.Value)
	}
	if req.APIURL != nil {
		b.add("api_url = $%d", *req.APIURL)
	}
	if req.APIKey != nil {
		b.add("api_key = $%d", *req.APIKey)
	}
	if b.empty() {
		return ensureExists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM providers WHERE code = $1)`, code, ErrProviderNotFound)
	}

	query := fmt.Sprintf("UPDATE providers SET %s WHERE code = $%d", b.set(), b.next())
	result, err := r.db.ExecContext(ctx, query, append(b.args, code)...)
	if err != nil {
		logging.Sugar.Errorf("❌ UpdateProvider: Error updating provider %s: %v", code, err)
		return fmt.Errorf("failed to update provider: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return ErrProviderNotFound
	}

	logging.Sugar.Infof("✅ UpdateProvider: Updated provider %s", code)
	return nil
}
