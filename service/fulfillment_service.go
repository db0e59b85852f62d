package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"rocketboost-admin/logging"
	"rocketboost-admin/metrics"
	"rocketboost-admin/models"
	"rocketboost-admin/pricing"
	"rocketboost-admin/repository"
	"rocketboost-admin/utils"
)

const (
	// orders older than this can no longer be refilled
	refillWindow = 30 * 24 * time.Hour

	defaultRefillMessage = "Refill sent"
	maxWebhookBody       = 1 << 20
)

// FulfillmentService forwards orders and refills to the n8n webhooks
// Implements FulfillmentServiceInterface
type FulfillmentService struct {
	orders    repository.OrderRepositoryInterface
	client    *http.Client
	bulkURL   string
	refillURL string
	now       func() time.Time
}

// NewFulfillmentService creates a new FulfillmentService
func NewFulfillmentService(orders repository.OrderRepositoryInterface, client *http.Client, bulkURL, refillURL string) *FulfillmentService {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &FulfillmentService{
		orders:    orders,
		client:    client,
		bulkURL:   bulkURL,
		refillURL: refillURL,
		now:       time.Now,
	}
}

// Ensure FulfillmentService implements FulfillmentServiceInterface
var _ FulfillmentServiceInterface = (*FulfillmentService)(nil)

// CheckRefillEligibility rejects refills of refill orders, of orders past the
// refill window and of orders that have not dropped below their floor
func CheckRefillEligibility(order *models.Order, currentCount *int, now time.Time) error {
	if order.Remark != nil && utils.IsRefillRemark(*order.Remark) {
		return fmt.Errorf("%w: order #%d is itself a refill", ErrRefillNotEligible, order.ID)
	}
	if now.Sub(order.CreatedAt) > refillWindow {
		return fmt.Errorf("%w: order #%d is older than 30 days", ErrRefillNotEligible, order.ID)
	}
	if currentCount != nil {
		threshold := pricing.RefillFloor(order.StartCount, order.Quantity)
		if !threshold.Qualifies(*currentCount) {
			return fmt.Errorf("%w: current count %d is above the refill floor %d",
				ErrRefillNotEligible, *currentCount, threshold.Floor)
		}
	}
	return nil
}

// Refill asks the automation to top up a delivered order
func (s *FulfillmentService) Refill(ctx context.Context, orderID int64, currentCount *int) (*models.SuccessResponse, error) {
	logging.Sugar.Infof("🔁 Refill: order=%d", orderID)

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if s.refillURL == "" {
		return nil, &notConfiguredError{envVar: "N8N_REFILL_WEBHOOK_URL"}
	}

	if err := CheckRefillEligibility(order, currentCount, s.now()); err != nil {
		logging.Sugar.Warnf("❌ Refill: %v", err)
		return nil, err
	}

	count := order.StartCount
	if currentCount != nil {
		count = *currentCount
	}

	status, body, err := s.post(ctx, s.refillURL, models.RefillWebhookPayload{OrderID: order.ID, CurrentCount: count})
	if err != nil {
		metrics.RecordWebhook("refill", false)
		return nil, err
	}
	if !isSuccess(status) {
		metrics.RecordWebhook("refill", false)
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = "Refill webhook failed"
		}
		return nil, &WebhookError{Webhook: "refill", StatusCode: status, Body: msg}
	}
	metrics.RecordWebhook("refill", true)

	logging.Sugar.Infof("✅ Refill: Sent order=%d current_count=%d", order.ID, count)
	return &models.SuccessResponse{Success: true, Message: refillMessage(body)}, nil
}

// refillMessage prefers the webhook's JSON "message", then its plain-text body
func refillMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return defaultRefillMessage
	}
	if gjson.ValidBytes(trimmed) {
		if msg := gjson.GetBytes(trimmed, "message"); msg.Exists() && msg.Type != gjson.Null {
			return msg.String()
		}
		return defaultRefillMessage
	}
	return string(trimmed)
}

// RefillFloor returns the count under which an order qualifies for a refill
func (s *FulfillmentService) RefillFloor(ctx context.Context, orderID int64) (pricing.RefillThreshold, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return pricing.RefillThreshold{}, err
	}
	return pricing.RefillFloor(order.StartCount, order.Quantity), nil
}

// Resubmit places a replacement order on another service and marks the old
// order as processing
func (s *FulfillmentService) Resubmit(ctx context.Context, req *models.ResubmitRequest) error {
	logging.Sugar.Infof("🔄 Resubmit: order=%d -> service=%d qty=%d", req.OldOrderID, req.NewServiceID, req.Qty)

	if s.bulkURL == "" {
		return &notConfiguredError{envVar: "N8N_BULK_WEBHOOK_URL"}
	}

	payload := models.BulkOrderRequest{Orders: []models.BulkOrderItem{{
		ServiceID: req.NewServiceID,
		Link:      req.Link,
		Quantity:  req.Qty,
		Remark:    fmt.Sprintf("Resubmit from order #%d", req.OldOrderID),
	}}}

	// the reply body is not used here, only the status
	if _, err := s.deliver(ctx, "bulk", s.bulkURL, payload); err != nil {
		return err
	}

	if err := s.orders.SetStatus(ctx, req.OldOrderID, models.OrderStatusProcessing); err != nil {
		return fmt.Errorf("failed to mark order %d as processing: %w", req.OldOrderID, err)
	}

	logging.Sugar.Infof("✅ Resubmit: order=%d resubmitted", req.OldOrderID)
	return nil
}

// SubmitBulk forwards a batch of new orders and relays the automation's answer
func (s *FulfillmentService) SubmitBulk(ctx context.Context, req *models.BulkOrderRequest) (json.RawMessage, error) {
	logging.Sugar.Infof("📦 SubmitBulk: %d orders", len(req.Orders))
	if s.bulkURL == "" {
		return nil, &notConfiguredError{envVar: "N8N_BULK_WEBHOOK_URL"}
	}
	return s.forward(ctx, "bulk", s.bulkURL, req)
}

// SubmitRefillBulk forwards a batch of refills and relays the automation's answer
func (s *FulfillmentService) SubmitRefillBulk(ctx context.Context, req *models.RefillBulkRequest) (json.RawMessage, error) {
	logging.Sugar.Infof("📦 SubmitRefillBulk: %d refills", len(req.Refills))
	if s.refillURL == "" {
		return nil, &notConfiguredError{envVar: "N8N_REFILL_WEBHOOK_URL"}
	}
	return s.forward(ctx, "refill", s.refillURL, req)
}

// forward posts payload and returns the JSON response body
func (s *FulfillmentService) forward(ctx context.Context, webhook, url string, payload any) (json.RawMessage, error) {
	body, err := s.deliver(ctx, webhook, url, payload)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return json.RawMessage(`{}`), nil
	}
	if !gjson.ValidBytes(trimmed) {
		return nil, fmt.Errorf("%w: %s webhook returned invalid JSON", ErrWebhookFailed, webhook)
	}
	return json.RawMessage(trimmed), nil
}

// deliver posts payload and fails on a non-2xx status
func (s *FulfillmentService) deliver(ctx context.Context, webhook, url string, payload any) ([]byte, error) {
	status, body, err := s.post(ctx, url, payload)
	if err != nil {
		metrics.RecordWebhook(webhook, false)
		return nil, err
	}
	if !isSuccess(status) {
		metrics.RecordWebhook(webhook, false)
		logging.Sugar.Errorf("❌ %s webhook returned %d: %s", webhook, status, body)
		return nil, &WebhookError{Webhook: webhook, StatusCode: status, Body: strings.TrimSpace(string(body))}
	}
	metrics.RecordWebhook(webhook, true)
	return body, nil
}

func (s *FulfillmentService) post(ctx context.Context, url string, payload any) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrWebhookFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxWebhookBody))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read webhook response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
