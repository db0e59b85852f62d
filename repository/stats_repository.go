package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"rocketboost-admin/logging"
	"rocketboost-admin/models"
	"rocketboost-admin/utils"
)

const (
	topRefillServicesLimit = 5
	qualityMinOrders       = 5
	qualityServiceLimit    = 6
	qualityRefillRateFloor = 0.05
)

// StatsRepository computes dashboard statistics
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Ensure StatsRepository implements StatsRepositoryInterface
var _ StatsRepositoryInterface = (*StatsRepository)(nil)

// Summary counts today's orders, the pending queue and recent refills
func (r *StatsRepository) Summary(ctx context.Context, todayStart, refillSince time.Time) (*models.StatsSummary, error) {
	var summary models.StatsSummary

	if err := r.db.GetContext(ctx, &summary.TotalToday,
		`SELECT count(*) FROM orders WHERE created_at >= $1`, todayStart); err != nil {
		return nil, fmt.Errorf("failed to count today's orders: %w", err)
	}
	if err := r.db.GetContext(ctx, &summary.PendingQueue,
		`SELECT count(*) FROM orders WHERE status = $1`, models.OrderStatusPending); err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}
	if err := r.db.GetContext(ctx, &summary.RefillRequests,
		`SELECT count(*) FROM orders WHERE parent_order_id IS NOT NULL AND created_at >= $1`, refillSince); err != nil {
		return nil, fmt.Errorf("failed to count refill requests: %w", err)
	}

	return &summary, nil
}

type refillRemark struct {
	ID     int64   `db:"id"`
	Remark *string `db:"remark"`
}

// PeriodOverview aggregates revenue, expense, signups and refills in [start, end]
func (r *StatsRepository) PeriodOverview(ctx context.Context, start, end time.Time) (*models.PeriodOverview, error) {
	var sums struct {
		Revenue decimal.Decimal `db:"revenue"`
		Expense decimal.Decimal `db:"expense"`
	}
	err := r.db.GetContext(ctx, &sums, `
		SELECT COALESCE(sum(sale_amount), 0) AS revenue, COALESCE(sum(cost_amount), 0) AS expense
		FROM orders
		WHERE created_at >= $1 AND created_at <= $2`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to sum orders: %w", err)
	}

	overview := &models.PeriodOverview{
		Revenue:           sums.Revenue,
		Expense:           sums.Expense,
		Net:               sums.Revenue.Sub(sums.Expense),
		TopRefillServices: []models.RefillServiceCount{},
	}

	if err := r.db.GetContext(ctx, &overview.NewUsers,
		`SELECT count(*) FROM users WHERE created_at >= $1 AND created_at <= $2`, start, end); err != nil {
		return nil, fmt.Errorf("failed to count new users: %w", err)
	}

	var refills []refillRemark
	err = r.db.SelectContext(ctx, &refills, `
		SELECT id, remark
		FROM orders
		WHERE created_at >= $1 AND created_at <= $2 AND remark ILIKE '%refill%'`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query refill orders: %w", err)
	}
	overview.RefillCount = int64(len(refills))

	top, err := r.topRefillServices(ctx, refills)
	if err != nil {
		return nil, err
	}
	overview.TopRefillServices = top

	return overview, nil
}

// topRefillServices resolves the orders referenced by refill remarks back to
// their services and returns the most refilled ones
func (r *StatsRepository) topRefillServices(ctx context.Context, refills []refillRemark) ([]models.RefillServiceCount, error) {
	seen := make(map[int64]bool)
	var refIDs []int64
	for _, row := range refills {
		if row.Remark == nil {
			continue
		}
		id, ok := utils.ExtractOrderID(*row.Remark)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		refIDs = append(refIDs, id)
	}
	if len(refIDs) == 0 {
		return []models.RefillServiceCount{}, nil
	}

	query, args, err := sqlx.In(`SELECT service_id FROM orders WHERE id IN (?) AND service_id IS NOT NULL`, refIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build original order query: %w", err)
	}
	var serviceIDs []int64
	if err := r.db.SelectContext(ctx, &serviceIDs, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query original orders: %w", err)
	}

	counts := make(map[int64]int)
	for _, id := range serviceIDs {
		counts[id]++
	}
	if len(counts) == 0 {
		return []models.RefillServiceCount{}, nil
	}

	ids := make([]int64, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	query, args, err = sqlx.In(`SELECT id, name FROM services WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build service query: %w", err)
	}
	var services []models.RefillServiceCount
	if err := r.db.SelectContext(ctx, &services, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}

	for i := range services {
		services[i].Count = counts[services[i].ServiceID]
	}
	sort.SliceStable(services, func(i, j int) bool {
		if services[i].Count != services[j].Count {
			return services[i].Count > services[j].Count
		}
		return services[i].ServiceID < services[j].ServiceID
	})
	if len(services) > topRefillServicesLimit {
		services = services[:topRefillServicesLimit]
	}

	logging.Sugar.Debugf("📊 TopRefillServices: %d referenced orders, %d services", len(refIDs), len(services))
	return services, nil
}

type qualityRow struct {
	ID           *int64  `db:"id"`
	Name         *string `db:"name"`
	ProviderCode *string `db:"provider_code"`
	TotalOrders  int64   `db:"total_orders"`
	RefillCount  int64   `db:"refill_count"`
}

// Quality returns frequently ordered services whose refill rate is above 5%
func (r *StatsRepository) Quality(ctx context.Context) ([]models.ServiceQuality, error) {
	var rows []qualityRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT s.id, s.name, s.provider_code,
		       count(*) AS total_orders,
		       COALESCE(sum(CASE WHEN o.parent_order_id IS NULL THEN 0 ELSE 1 END), 0) AS refill_count
		FROM orders o
		LEFT JOIN services s ON o.service_id = s.id
		GROUP BY s.id, s.name, s.provider_code
		HAVING count(*) > $1
		LIMIT $2`, qualityMinOrders, qualityServiceLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query service quality: %w", err)
	}

	result := []models.ServiceQuality{}
	for _, row := range rows {
		q := models.ServiceQuality{
			Name:         "Unknown",
			TotalOrders:  row.TotalOrders,
			ProviderCode: row.ProviderCode,
		}
		if row.ID != nil {
			q.ID = *row.ID
		}
		if row.Name != nil {
			q.Name = *row.Name
		}
		if row.TotalOrders > 0 {
			q.RefillRate = float64(row.RefillCount) / float64(row.TotalOrders)
		}
		if q.RefillRate > qualityRefillRateFloor {
			result = append(result, q)
		}
	}
	return result, nil
}
