package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"rocketboost-admin/logging"
	"rocketboost-admin/models"
	"rocketboost-admin/repository"
	"rocketboost-admin/service"
)

// ProviderController handles HTTP requests for upstream providers
type ProviderController struct {
	repository repository.ProviderRepositoryInterface
	balances   service.BalanceServiceInterface
}

// NewProviderController creates a new ProviderController
func NewProviderController(repo repository.ProviderRepositoryInterface, balances service.BalanceServiceInterface) *ProviderController {
	return &ProviderController{
		repository: repo,
		balances:   balances,
	}
}

// ListProviders handles GET /api/providers
func (c *ProviderController) ListProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := c.repository.List(r.Context())
	if err != nil {
		writeDomainError(w, "ListProviders", err)
		return
	}
	writeJSON(w, http.StatusOK, providers)
}

// UpdateProvider handles PATCH /api/providers/{code}
// Example request:
//
//	{"name": "Main panel", "api_key": "..."}
func (c *ProviderController) UpdateProvider(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req models.UpdateProviderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := c.repository.Update(r.Context(), code, &req); err != nil {
		writeDomainError(w, "UpdateProvider", err)
		return
	}
	c.balances.Invalidate(code)

	logging.Sugar.Infof("✅ UpdateProvider: Updated provider %s by %s", code, actor(r))
	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Balances handles GET /api/providers/balances
// Example response:
//
//	[{"code": "panelA", "balance": 1.5, "currency": "USD", "balance_status": "ok", "low_balance": true}]
func (c *ProviderController) Balances(w http.ResponseWriter, r *http.Request) {
	items, err := c.balances.Balances(r.Context())
	if err != nil {
		writeDomainError(w, "Balances", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
