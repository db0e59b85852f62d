package service

import (
	"errors"
	"fmt"
)

var (
	ErrWebhookNotConfigured = errors.New("webhook url not set")
	ErrWebhookFailed        = errors.New("webhook failed")
	ErrRefillNotEligible    = errors.New("order is not eligible for refill")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrInvalidToken         = errors.New("invalid token")
	ErrSlipNotAvailable     = errors.New("transaction has no slip")
)

// WebhookError carries the upstream status and body of a failed webhook call
type WebhookError struct {
	Webhook    string
	StatusCode int
	Body       string
}

func (e *WebhookError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("n8n %s webhook failed", e.Webhook)
}

func (e *WebhookError) Unwrap() error {
	return ErrWebhookFailed
}

// notConfiguredError names the missing environment variable
type notConfiguredError struct {
	envVar string
}

func (e *notConfiguredError) Error() string {
	return e.envVar + " not set"
}

func (e *notConfiguredError) Unwrap() error {
	return ErrWebhookNotConfigured
}
