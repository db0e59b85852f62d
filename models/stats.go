package models

import "github.com/shopspring/decimal"

// StatsSummary is the dashboard counter strip
type StatsSummary struct {
	TotalToday     int64 `json:"totalToday"`
	PendingQueue   int64 `json:"pendingQueue"`
	RefillRequests int64 `json:"refillRequests"`
}

// RefillServiceCount is how many refills trace back to one service
type RefillServiceCount struct {
	ServiceID   int64  `db:"id" json:"service_id"`
	ServiceName string `db:"name" json:"service_name"`
	Count       int    `db:"-" json:"count"`
}

// PeriodOverview is the financial overview of one period
type PeriodOverview struct {
	Revenue           decimal.Decimal      `json:"revenue"`
	Expense           decimal.Decimal      `json:"expense"`
	Net               decimal.Decimal      `json:"net"`
	NewUsers          int64                `json:"newUsers"`
	RefillCount       int64                `json:"refillCount"`
	TopRefillServices []RefillServiceCount `json:"topRefillServices"`
}

// Overview is GET /api/stats/overview
type Overview struct {
	Today PeriodOverview `json:"today"`
	Week  PeriodOverview `json:"week"`
	Month PeriodOverview `json:"month"`
}

// ServiceQuality is the refill rate of a frequently ordered service
type ServiceQuality struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	TotalOrders  int64   `json:"totalOrders"`
	RefillRate   float64 `json:"refillRate"`
	ProviderCode *string `json:"providerCode"`
}
