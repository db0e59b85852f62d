package repository

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrServiceExists       = errors.New("service already exists")
	ErrProviderNotFound    = errors.New("provider not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)
