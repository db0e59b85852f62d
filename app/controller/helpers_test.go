package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"rocketboost-admin/models"
	"rocketboost-admin/pricing"
	"rocketboost-admin/repository"
	"rocketboost-admin/service"
)

// serve mounts handler on pattern and performs one request against path
func serve(t *testing.T, method, pattern, path string, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, handler)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func strPtr(s string) *string { return &s }

type fakeOrderRepo struct {
	filter  models.OrderFilter
	page    *models.Page[models.OrderListItem]
	updated *models.UpdateOrderRequest
	err     error
}

func (f *fakeOrderRepo) List(ctx context.Context, filter models.OrderFilter) (*models.Page[models.OrderListItem], error) {
	f.filter = filter
	return f.page, f.err
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	return nil, repository.ErrOrderNotFound
}

func (f *fakeOrderRepo) Update(ctx context.Context, id int64, req *models.UpdateOrderRequest) error {
	f.updated = req
	return f.err
}

func (f *fakeOrderRepo) SetStatus(ctx context.Context, id int64, status string) error {
	return f.err
}

type fakeFulfillment struct {
	refillCount *int
	resubmit    *models.ResubmitRequest
	raw         json.RawMessage
	res         *models.SuccessResponse
	err         error
}

func (f *fakeFulfillment) Refill(ctx context.Context, orderID int64, currentCount *int) (*models.SuccessResponse, error) {
	f.refillCount = currentCount
	return f.res, f.err
}

func (f *fakeFulfillment) RefillFloor(ctx context.Context, orderID int64) (pricing.RefillThreshold, error) {
	if f.err != nil {
		return pricing.RefillThreshold{}, f.err
	}
	return pricing.RefillFloor(1200, 500), nil
}

func (f *fakeFulfillment) Resubmit(ctx context.Context, req *models.ResubmitRequest) error {
	f.resubmit = req
	return f.err
}

func (f *fakeFulfillment) SubmitBulk(ctx context.Context, req *models.BulkOrderRequest) (json.RawMessage, error) {
	return f.raw, f.err
}

func (f *fakeFulfillment) SubmitRefillBulk(ctx context.Context, req *models.RefillBulkRequest) (json.RawMessage, error) {
	return f.raw, f.err
}

type fakeServiceRepo struct {
	created *models.CreateServiceRequest
	updated *models.UpdateServiceRequest
	err     error
}

func (f *fakeServiceRepo) List(ctx context.Context) ([]models.Service, error) {
	return []models.Service{}, f.err
}

func (f *fakeServiceRepo) Create(ctx context.Context, req *models.CreateServiceRequest) error {
	f.created = req
	return f.err
}

func (f *fakeServiceRepo) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) error {
	f.updated = req
	return f.err
}

type fakeProviderRepo struct {
	err error
}

func (f *fakeProviderRepo) List(ctx context.Context) ([]models.Provider, error) {
	return []models.Provider{{Code: "panelA", APIURL: "https://a.test", APIKey: "k"}}, f.err
}

func (f *fakeProviderRepo) Update(ctx context.Context, code string, req *models.UpdateProviderRequest) error {
	return f.err
}

type fakeBalances struct {
	invalidated []string
}

func (f *fakeBalances) Balances(ctx context.Context) ([]models.ProviderBalance, error) {
	return []models.ProviderBalance{{Code: "panelA", BalanceStatus: models.BalanceStatusOK}}, nil
}

func (f *fakeBalances) Invalidate(code string) {
	f.invalidated = append(f.invalidated, code)
}

type fakeUserRepo struct {
	filter models.UserFilter
	err    error
}

func (f *fakeUserRepo) List(ctx context.Context, filter models.UserFilter) (*models.Page[models.User], error) {
	f.filter = filter
	return &models.Page[models.User]{Data: []models.User{}, Page: filter.Page, PageSize: filter.PageSize}, f.err
}

func (f *fakeUserRepo) TopUp(ctx context.Context, userID int64, req *models.TopUpRequest) (*models.TopUpResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.TopUpResult{Success: true, Balance: req.Amount, TransactionID: 7}, nil
}

type fakeTransactionRepo struct {
	limit int
}

func (f *fakeTransactionRepo) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	return nil, repository.ErrTransactionNotFound
}

func (f *fakeTransactionRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]models.Transaction, error) {
	f.limit = limit
	return []models.Transaction{}, nil
}

type fakeSlips struct {
	size string
	err  error
}

func (f *fakeSlips) Slip(ctx context.Context, transactionID int64, size string) ([]byte, error) {
	f.size = size
	if f.err != nil {
		return nil, f.err
	}
	return []byte{0xff, 0xd8, 0xff}, nil
}

type fakeStatsRepo struct {
	todayStart  time.Time
	refillSince time.Time
	starts      []time.Time
	err         error
}

func (f *fakeStatsRepo) Summary(ctx context.Context, todayStart, refillSince time.Time) (*models.StatsSummary, error) {
	f.todayStart, f.refillSince = todayStart, refillSince
	return &models.StatsSummary{TotalToday: 3, PendingQueue: 1, RefillRequests: 2}, f.err
}

func (f *fakeStatsRepo) PeriodOverview(ctx context.Context, start, end time.Time) (*models.PeriodOverview, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.PeriodOverview{NewUsers: int64(end.Sub(start).Hours())}, nil
}

func (f *fakeStatsRepo) Quality(ctx context.Context) ([]models.ServiceQuality, error) {
	return []models.ServiceQuality{}, f.err
}

type fakeAuth struct{}

func (fakeAuth) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	if req.Password != "pw" {
		return nil, service.ErrInvalidCredentials
	}
	return &models.LoginResponse{Token: "tok"}, nil
}

func (fakeAuth) ParseToken(token string) (*jwt.RegisteredClaims, error) {
	return nil, service.ErrInvalidToken
}

type fakeDocuments struct{}

func (fakeDocuments) RenderHTML(quote pricing.Quote) (string, error) { return "<html></html>", nil }

func (fakeDocuments) GeneratePDF(ctx context.Context, quote pricing.Quote) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

func (fakeDocuments) GeneratePNG(ctx context.Context, quote pricing.Quote) ([]byte, error) {
	return []byte("\x89PNG"), nil
}
