package controller

import (
	"net/http"

	"rocketboost-admin/logging"
	"rocketboost-admin/models"
	"rocketboost-admin/repository"
	"rocketboost-admin/service"
)

const defaultTransactionLimit = 50

// UserController handles HTTP requests for customers and their balance
type UserController struct {
	users        repository.UserRepositoryInterface
	transactions repository.TransactionRepositoryInterface
	slips        service.SlipServiceInterface
}

// NewUserController creates a new UserController
func NewUserController(
	users repository.UserRepositoryInterface,
	transactions repository.TransactionRepositoryInterface,
	slips service.SlipServiceInterface,
) *UserController {
	return &UserController{
		users:        users,
		transactions: transactions,
		slips:        slips,
	}
}

// ListUsers handles GET /api/users?page&pageSize&search
func (c *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := pagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := c.users.List(r.Context(), models.UserFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   r.URL.Query().Get("search"),
	})
	if err != nil {
		writeDomainError(w, "ListUsers", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// TopUp handles POST /api/users/{id}/topup
// Example request:
//
//	{"amount": 500, "remark": "bank transfer", "slip_url": "https://drive.google.com/file/d/.../view"}
//
// Example response:
//
//	{"success": true, "balance": 750, "transaction_id": 311}
func (c *UserController) TopUp(w http.ResponseWriter, r *http.Request) {
	logging.Sugar.Infof("📥 TopUp: Received %s request to %s", r.Method, r.URL.Path)

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.TopUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "amount must be greater than 0")
		return
	}

	result, err := c.users.TopUp(r.Context(), id, &req)
	if err != nil {
		writeDomainError(w, "TopUp", err)
		return
	}

	logging.Sugar.Infof("✅ TopUp: user=%d amount=%s balance=%s by %s", id, req.Amount, result.Balance, actor(r))
	writeJSON(w, http.StatusOK, result)
}

// ListTransactions handles GET /api/users/{id}/transactions?limit
func (c *UserController) ListTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := queryInt(r, "limit", defaultTransactionLimit, 1, maxPageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := c.transactions.ListByUser(r.Context(), id, limit)
	if err != nil {
		writeDomainError(w, "ListTransactions", err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

// GetSlip handles GET /api/transactions/{id}/slip?size=thumb|medium
// Responds with a JPEG
func (c *UserController) GetSlip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	size := r.URL.Query().Get("size")
	if size == "" {
		size = service.SizeMedium
	}
	if !service.ValidImageSize(size) {
		writeError(w, http.StatusBadRequest, "size must be thumb or medium")
		return
	}

	data, err := c.slips.Slip(r.Context(), id, size)
	if err != nil {
		writeDomainError(w, "GetSlip", err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logging.Sugar.Errorf("❌ GetSlip: Error writing image: %v", err)
	}
}
