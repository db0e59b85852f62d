package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"rocketboost-admin/logging"
	"rocketboost-admin/metrics"
	"rocketboost-admin/models"
	"rocketboost-admin/repository"
)

const (
	maxConcurrentBalanceChecks = 8
	defaultBalanceCurrency     = "USD"
)

// BalanceService asks every provider panel for its account balance
// Implements BalanceServiceInterface
type BalanceService struct {
	providers repository.ProviderRepositoryInterface
	client    *http.Client
	cache     *Cache
	ttl       time.Duration
	threshold decimal.Decimal
}

// NewBalanceService creates a new BalanceService. cache may be nil to
// always query the panels.
func NewBalanceService(
	providers repository.ProviderRepositoryInterface,
	client *http.Client,
	cache *Cache,
	ttl time.Duration,
	threshold decimal.Decimal,
) *BalanceService {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &BalanceService{
		providers: providers,
		client:    client,
		cache:     cache,
		ttl:       ttl,
		threshold: threshold,
	}
}

// Ensure BalanceService implements BalanceServiceInterface
var _ BalanceServiceInterface = (*BalanceService)(nil)

func balanceCacheKey(code string) string {
	return "balance:" + code
}

// Balances checks all providers concurrently. A failing panel yields an
// item with balance_status "error" rather than failing the whole call.
func (s *BalanceService) Balances(ctx context.Context) ([]models.ProviderBalance, error) {
	providers, err := s.providers.List(ctx)
	if err != nil {
		return nil, err
	}
	logging.Sugar.Infof("💰 Balances: Checking %d providers", len(providers))

	results := make([]models.ProviderBalance, len(providers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentBalanceChecks)
	for i, p := range providers {
		i, p := i, p
		g.Go(func() error {
			results[i] = s.balance(gctx, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Invalidate drops the cached balance of one provider
func (s *BalanceService) Invalidate(code string) {
	if s.cache != nil {
		s.cache.Delete(balanceCacheKey(code))
	}
}

func (s *BalanceService) balance(ctx context.Context, p models.Provider) models.ProviderBalance {
	key := balanceCacheKey(p.Code)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			var item models.ProviderBalance
			if err := json.Unmarshal(cached, &item); err == nil {
				return item
			}
		}
	}

	item := models.ProviderBalance{Code: p.Code, Name: p.Name}

	amount, currency, err := s.fetch(ctx, p)
	if err != nil {
		logging.Sugar.Warnf("❌ Balance %s: %v", p.Code, err)
		metrics.RecordBalanceCheck(p.Code, models.BalanceStatusError)
		item.BalanceStatus = models.BalanceStatusError
		item.BalanceMessage = err.Error()
		return item
	}
	metrics.RecordBalanceCheck(p.Code, models.BalanceStatusOK)

	item.Balance = &amount
	item.Currency = currency
	item.BalanceStatus = models.BalanceStatusOK
	item.LowBalance = amount.LessThan(s.threshold)

	if s.cache != nil {
		if data, err := json.Marshal(item); err == nil {
			s.cache.Set(key, data, s.ttl)
		}
	}
	return item
}

// fetch calls the panel's standard "action=balance" endpoint
func (s *BalanceService) fetch(ctx context.Context, p models.Provider) (decimal.Decimal, string, error) {
	if p.APIURL == "" || p.APIKey == "" {
		return decimal.Zero, "", fmt.Errorf("api_url or api_key missing")
	}

	form := url.Values{}
	form.Set("key", p.APIKey)
	form.Set("action", "balance")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.APIURL, strings.NewReader(form.Encode()))
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("invalid api_url: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decimal.Zero, "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return decimal.Zero, "", fmt.Errorf("invalid JSON response")
	}

	if e := gjson.GetBytes(body, "error"); e.Exists() && e.String() != "" {
		return decimal.Zero, "", fmt.Errorf("%s", e.String())
	}

	raw := gjson.GetBytes(body, "balance")
	if !raw.Exists() || raw.String() == "" {
		return decimal.Zero, "", fmt.Errorf("response has no balance")
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(raw.String()))
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("invalid balance %q", raw.String())
	}

	currency := gjson.GetBytes(body, "currency").String()
	if currency == "" {
		currency = defaultBalanceCurrency
	}
	return amount, currency, nil
}
