package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"rocketboost-admin/logging"
	"rocketboost-admin/models"
	"rocketboost-admin/utils"
)

// OrderRepository handles database operations for orders
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

func orderFilters(filter models.OrderFilter) (*clauseBuilder, error) {
	var b clauseBuilder

	if filter.Status != "" {
		b.add("o.status = $%d", filter.Status)
	}
	if filter.Remark != "" {
		b.add("o.remark ILIKE $%d", "%"+filter.Remark+"%")
	}
	if filter.StartDate != "" {
		start, _, err := utils.DayBounds(filter.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate %q: %w", filter.StartDate, err)
		}
		b.add("o.created_at >= $%d", start)
	}
	if filter.EndDate != "" {
		_, end, err := utils.DayBounds(filter.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate %q: %w", filter.EndDate, err)
		}
		b.add("o.created_at <= $%d", end)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		if id, err := strconv.ParseInt(search, 10, 64); err == nil {
			b.add("(o.id = $%d OR o.link ILIKE $%d)", id, "%"+search+"%")
		} else {
			b.add("o.link ILIKE $%d", "%"+search+"%")
		}
	}

	return &b, nil
}

// List returns one page of orders, newest first
func (r *OrderRepository) List(ctx context.Context, filter models.OrderFilter) (*models.Page[models.OrderListItem], error) {
	logging.Sugar.Debugf("🔍 ListOrders: page=%d, pageSize=%d, status=%q, search=%q",
		filter.Page, filter.PageSize, filter.Status, filter.Search)

	b, err := orderFilters(filter)
	if err != nil {
		return nil, err
	}

	var total int64
	countQuery := "SELECT count(*) FROM orders o" + b.where()
	if err := r.db.GetContext(ctx, &total, countQuery, b.args...); err != nil {
		logging.Sugar.Errorf("❌ ListOrders: Error counting orders: %v", err)
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT o.id, o.created_at, o.link, o.quantity, o.status, o.provider_order_id,
		       o.start_count, o.remark, s.name AS service_name, p.code AS provider_code
		FROM orders o
		LEFT JOIN services s ON o.service_id = s.id
		LEFT JOIN providers p ON s.provider_code = p.code%s
		ORDER BY o.created_at DESC
		LIMIT $%d OFFSET $%d`, b.where(), b.next(), b.next()+1)

	args := append(b.args, filter.PageSize, offset(filter.Page, filter.PageSize))

	data := []models.OrderListItem{}
	if err := r.db.SelectContext(ctx, &data, query, args...); err != nil {
		logging.Sugar.Errorf("❌ ListOrders: Error querying orders: %v", err)
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	return &models.Page[models.OrderListItem]{
		Data:     data,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Total:    total,
	}, nil
}

// GetByID returns the order fields needed to process a refill
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	query := `
		SELECT id, link, quantity, service_id, provider_order_id,
		       COALESCE(start_count, 0) AS start_count, remark, created_at
		FROM orders
		WHERE id = $1`

	var order models.Order
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// Update applies a partial status/remark update
func (r *OrderRepository) Update(ctx context.Context, id int64, req *models.UpdateOrderRequest) error {
	var b clauseBuilder
	if req.Status != nil {
		b.add("status = $%d", *req.Status)
	}
	if req.Remark.Set {
		b.add("remark = $%d", req.Remark.Value)
	}
	if b.empty() {
		return ensureExists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, id, ErrOrderNotFound)
	}
	b.parts = append(b.parts, "updated_at = now()")

	query := fmt.Sprintf("UPDATE orders SET %s WHERE id = $%d", b.set(), b.next())
	return r.exec(ctx, "UpdateOrder", query, append(b.args, id)...)
}

// SetStatus overwrites the status of an order
func (r *OrderRepository) SetStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE orders SET status = $1, updated_at = now() WHERE id = $2`
	return r.exec(ctx, "SetOrderStatus", query, status, id)
}

func (r *OrderRepository) exec(ctx context.Context, op, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logging.Sugar.Errorf("❌ %s: %v", op, err)
		return fmt.Errorf("failed to update order: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return ErrOrderNotFound
	}
	return nil
}
