package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"rocketboost-admin/app/middleware"
	"rocketboost-admin/logging"
	"rocketboost-admin/models"
	"rocketboost-admin/repository"
	"rocketboost-admin/service"
)

const (
	defaultPage     = 1
	defaultPageSize = 15
	maxPageSize     = 100
	maxBodyBytes    = 1 << 20
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Sugar.Errorf("❌ Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrServiceNotFound),
		errors.Is(err, repository.ErrProviderNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrTransactionNotFound),
		errors.Is(err, service.ErrSlipNotAvailable):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrServiceExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrRefillNotEligible):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError logs err under op and writes it with the mapped status
func writeDomainError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.Sugar.Errorf("❌ %s: %v", op, err)
	} else {
		logging.Sugar.Warnf("❌ %s: %v", op, err)
	}
	writeError(w, status, err.Error())
}

// actor names the authenticated admin for audit logs
func actor(r *http.Request) string {
	if claims, ok := middleware.Claims(r.Context()); ok && claims.Subject != "" {
		return claims.Subject
	}
	return "anonymous"
}

// decodeJSON decodes the request body into dst, rejecting unknown fields
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// pathID parses a positive integer URL parameter
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// queryInt reads an integer query parameter within [min, max]
func queryInt(r *http.Request, name string, fallback, min, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	if v < min || (max > 0 && v > max) {
		if max > 0 {
			return 0, fmt.Errorf("%s must be between %d and %d", name, min, max)
		}
		return 0, fmt.Errorf("%s must be at least %d", name, min)
	}
	return v, nil
}

// pagination reads page and pageSize
func pagination(r *http.Request) (int, int, error) {
	page, err := queryInt(r, "page", defaultPage, 1, 0)
	if err != nil {
		return 0, 0, err
	}
	pageSize, err := queryInt(r, "pageSize", defaultPageSize, 1, maxPageSize)
	if err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}
