package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rocketboost-admin/logging"
	"rocketboost-admin/repository"
	"rocketboost-admin/utils"
)

const (
	slipCacheTTL    = time.Hour
	maxSlipDownload = 20 << 20
)

// SlipService downloads transfer slips and returns resized JPEG previews
// Implements SlipServiceInterface
type SlipService struct {
	transactions repository.TransactionRepositoryInterface
	driveService DriveServiceInterface
	client       *http.Client
	cache        *Cache
}

// NewSlipService creates a new SlipService. driveService may be nil when no
// Google credentials are configured; Drive links are then fetched over HTTP.
func NewSlipService(
	transactions repository.TransactionRepositoryInterface,
	driveService DriveServiceInterface,
	client *http.Client,
	cache *Cache,
) *SlipService {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &SlipService{
		transactions: transactions,
		driveService: driveService,
		client:       client,
		cache:        cache,
	}
}

// Ensure SlipService implements SlipServiceInterface
var _ SlipServiceInterface = (*SlipService)(nil)

// Slip returns the optimized slip image of a transaction
func (s *SlipService) Slip(ctx context.Context, transactionID int64, size string) ([]byte, error) {
	key := fmt.Sprintf("slip:%d:%s", transactionID, size)
	if s.cache != nil {
		if data, ok := s.cache.Get(key); ok {
			logging.Sugar.Debugf("✓ Slip %d served from cache", transactionID)
			return data, nil
		}
	}

	tx, err := s.transactions.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if tx.SlipURL == nil || strings.TrimSpace(*tx.SlipURL) == "" {
		return nil, ErrSlipNotAvailable
	}

	raw, err := s.download(ctx, strings.TrimSpace(*tx.SlipURL))
	if err != nil {
		logging.Sugar.Errorf("❌ Slip %d: %v", transactionID, err)
		return nil, err
	}

	data, err := OptimizeImage(raw, size)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(key, data, slipCacheTTL)
	}
	logging.Sugar.Infof("✅ Slip %d: %d bytes (%s)", transactionID, len(data), size)
	return data, nil
}

func (s *SlipService) download(ctx context.Context, link string) ([]byte, error) {
	if fileID, ok := utils.DriveFileID(link); ok && s.driveService != nil {
		return s.driveService.DownloadFile(ctx, fileID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid slip url: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slip: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("slip url returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSlipDownload))
	if err != nil {
		return nil, fmt.Errorf("failed to read slip: %w", err)
	}
	return data, nil
}
