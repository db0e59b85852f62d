package controller

import (
	"net/http"
	"strings"

	"rocketboost-admin/logging"
	"rocketboost-admin/models"
	"rocketboost-admin/repository"
)

// ServiceController handles HTTP requests for the service catalog
type ServiceController struct {
	repository repository.ServiceRepositoryInterface
}

// NewServiceController creates a new ServiceController
func NewServiceController(repo repository.ServiceRepositoryInterface) *ServiceController {
	return &ServiceController{
		repository: repo,
	}
}

// ListServices handles GET /api/services
func (c *ServiceController) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := c.repository.List(r.Context())
	if err != nil {
		writeDomainError(w, "ListServices", err)
		return
	}
	writeJSON(w, http.StatusOK, services)
}

// CreateService handles POST /api/services
// Example request:
//
//	{"id": 12, "name": "IG Followers (HQ)", "price": 0.12, "provider_code": "panelA", "provider_service_id": 4411}
func (c *ServiceController) CreateService(w http.ResponseWriter, r *http.Request) {
	logging.Sugar.Infof("📥 CreateService: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateServiceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID <= 0 {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Price == nil {
		writeError(w, http.StatusBadRequest, "price is required")
		return
	}
	if req.Price.IsNegative() {
		writeError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	if err := c.repository.Create(r.Context(), &req); err != nil {
		writeDomainError(w, "CreateService", err)
		return
	}

	logging.Sugar.Infof("✅ CreateService: Created service id=%d by %s", req.ID, actor(r))
	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// UpdateService handles PATCH /api/services/{id}
func (c *ServiceController) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateServiceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Price != nil && req.Price.IsNegative() {
		writeError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	if err := c.repository.Update(r.Context(), id, &req); err != nil {
		writeDomainError(w, "UpdateService", err)
		return
	}

	logging.Sugar.Infof("✅ UpdateService: Updated service id=%d by %s", id, actor(r))
	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}
