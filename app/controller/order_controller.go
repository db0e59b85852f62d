package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"rocketboost-admin/logging"
	"rocketboost-admin/models"
	"rocketboost-admin/repository"
	"rocketboost-admin/service"
	"rocketboost-admin/utils"
)

// OrderController handles HTTP requests for orders
type OrderController struct {
	repository  repository.OrderRepositoryInterface
	fulfillment service.FulfillmentServiceInterface
}

// NewOrderController creates a new OrderController
func NewOrderController(repo repository.OrderRepositoryInterface, fulfillment service.FulfillmentServiceInterface) *OrderController {
	return &OrderController{
		repository:  repo,
		fulfillment: fulfillment,
	}
}

// ListOrders handles GET /api/orders
// Query: page, pageSize, search, status, startDate, endDate, remark
// Example response:
//
//	{"data": [...], "page": 1, "pageSize": 15, "total": 42}
func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	logging.Sugar.Infof("📥 ListOrders: Received %s request to %s", r.Method, r.URL.String())

	page, pageSize, err := pagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	filter := models.OrderFilter{
		Page:      page,
		PageSize:  pageSize,
		Search:    q.Get("search"),
		Status:    q.Get("status"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Remark:    q.Get("remark"),
	}
	for name, date := range map[string]string{"startDate": filter.StartDate, "endDate": filter.EndDate} {
		if date == "" {
			continue
		}
		if _, _, err := utils.DayBounds(date); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s must be YYYY-MM-DD", name))
			return
		}
	}

	result, err := c.repository.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, "ListOrders", err)
		return
	}

	logging.Sugar.Infof("✅ ListOrders: Returned %d of %d orders", len(result.Data), result.Total)
	writeJSON(w, http.StatusOK, result)
}

// UpdateOrder handles PATCH /api/orders/{id}
// Example request:
//
//	{"status": "COMPLETED", "remark": null}
func (c *OrderController) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := c.repository.Update(r.Context(), id, &req); err != nil {
		writeDomainError(w, "UpdateOrder", err)
		return
	}

	logging.Sugar.Infof("✅ UpdateOrder: Updated order id=%d by %s", id, actor(r))
	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Refill handles POST /api/orders/{id}/refill
// Example request:
//
//	{"current_count": 1650}
//
// Example response:
//
//	{"success": true, "message": "Refill sent"}
func (c *OrderController) Refill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.RefillRequest
	// the body is optional
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.CurrentCount != nil && *req.CurrentCount < 0 {
		writeError(w, http.StatusBadRequest, "current_count must not be negative")
		return
	}

	res, err := c.fulfillment.Refill(r.Context(), id, req.CurrentCount)
	if err != nil {
		var whErr *service.WebhookError
		if errors.As(err, &whErr) {
			logging.Sugar.Errorf("❌ Refill: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.SuccessResponse{Success: false, Message: whErr.Error()})
			return
		}
		writeDomainError(w, "Refill", err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// RefillFloor handles GET /api/orders/{id}/refill-floor
// Example response:
//
//	{"target_count": 1700, "discount": 50, "floor": 1650}
func (c *OrderController) RefillFloor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	threshold, err := c.fulfillment.RefillFloor(r.Context(), id)
	if err != nil {
		writeDomainError(w, "RefillFloor", err)
		return
	}
	writeJSON(w, http.StatusOK, threshold)
}

// Resubmit handles POST /api/orders/resubmit
// Example request:
//
//	{"old_order_id": 42, "new_service_id": 9, "link": "https://instagram.com/x", "qty": 500}
func (c *OrderController) Resubmit(w http.ResponseWriter, r *http.Request) {
	logging.Sugar.Infof("📥 Resubmit: Received %s request to %s", r.Method, r.URL.Path)

	var req models.ResubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.OldOrderID <= 0 || req.NewServiceID <= 0 {
		writeError(w, http.StatusBadRequest, "old_order_id and new_service_id are required")
		return
	}
	if req.Qty < 1 {
		writeError(w, http.StatusBadRequest, "qty must be at least 1")
		return
	}
	if !isURL(req.Link) {
		writeError(w, http.StatusBadRequest, "link must be a valid URL")
		return
	}

	if err := c.fulfillment.Resubmit(r.Context(), &req); err != nil {
		writeDomainError(w, "Resubmit", err)
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// SubmitBulk handles POST /api/orders/bulk and relays the automation's response
func (c *OrderController) SubmitBulk(w http.ResponseWriter, r *http.Request) {
	logging.Sugar.Infof("📥 SubmitBulk: Received %s request to %s", r.Method, r.URL.Path)

	var req models.BulkOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Orders) == 0 {
		writeError(w, http.StatusBadRequest, "orders must not be empty")
		return
	}
	for i, o := range req.Orders {
		if o.ServiceID <= 0 || strings.TrimSpace(o.Link) == "" || o.Quantity <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("orders[%d]: service_id, link and a positive quantity are required", i))
			return
		}
	}

	raw, err := c.fulfillment.SubmitBulk(r.Context(), &req)
	if err != nil {
		writeDomainError(w, "SubmitBulk", err)
		return
	}
	writeJSON(w, http.StatusOK, raw)
}

// SubmitRefillBulk handles POST /api/orders/refill-bulk
func (c *OrderController) SubmitRefillBulk(w http.ResponseWriter, r *http.Request) {
	logging.Sugar.Infof("📥 SubmitRefillBulk: Received %s request to %s", r.Method, r.URL.Path)

	var req models.RefillBulkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Refills) == 0 {
		writeError(w, http.StatusBadRequest, "refills must not be empty")
		return
	}

	raw, err := c.fulfillment.SubmitRefillBulk(r.Context(), &req)
	if err != nil {
		writeDomainError(w, "SubmitRefillBulk", err)
		return
	}
	writeJSON(w, http.StatusOK, raw)
}

func isURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
