package service

import (
	"context"
	"sync"

	"rocketboost-admin/models"
	"rocketboost-admin/repository"
)

type fakeOrderRepo struct {
	mu       sync.Mutex
	orders   map[int64]*models.Order
	statuses map[int64]string
}

func newFakeOrderRepo(orders ...models.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[int64]*models.Order{}, statuses: map[int64]string{}}
	for i := range orders {
		r.orders[orders[i].ID] = &orders[i]
	}
	return r
}

func (r *fakeOrderRepo) List(ctx context.Context, filter models.OrderFilter) (*models.Page[models.OrderListItem], error) {
	return &models.Page[models.OrderListItem]{Data: []models.OrderListItem{}}, nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, id int64, req *models.UpdateOrderRequest) error {
	return nil
}

func (r *fakeOrderRepo) SetStatus(ctx context.Context, id int64, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return repository.ErrOrderNotFound
	}
	r.statuses[id] = status
	return nil
}

type fakeProviderRepo struct {
	providers []models.Provider
}

func (r *fakeProviderRepo) List(ctx context.Context) ([]models.Provider, error) {
	return r.providers, nil
}

func (r *fakeProviderRepo) Update(ctx context.Context, code string, req *models.UpdateProviderRequest) error {
	return nil
}

type fakeTransactionRepo struct {
	txs map[int64]*models.Transaction
}

func (r *fakeTransactionRepo) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	tx, ok := r.txs[id]
	if !ok {
		return nil, repository.ErrTransactionNotFound
	}
	return tx, nil
}

func (r *fakeTransactionRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]models.Transaction, error) {
	return nil, nil
}

type fakeDrive struct {
	files map[string][]byte
	calls int
}

func (d *fakeDrive) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	d.calls++
	data, ok := d.files[fileID]
	if !ok {
		return nil, context.DeadlineExceeded
	}
	return data, nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
