package controller

import (
	"fmt"
	"net/http"

	"rocketboost-admin/logging"
	"rocketboost-admin/metrics"
	"rocketboost-admin/models"
	"rocketboost-admin/pricing"
	"rocketboost-admin/service"
)

const maxQuoteItems = 50

// PricingController handles the price calculator endpoints
type PricingController struct {
	engine    *pricing.Engine
	documents service.QuoteDocumentServiceInterface
}

// NewPricingController creates a new PricingController
func NewPricingController(engine *pricing.Engine, documents service.QuoteDocumentServiceInterface) *PricingController {
	return &PricingController{
		engine:    engine,
		documents: documents,
	}
}

// Rates handles GET /api/pricing/rates
func (c *PricingController) Rates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.NewRatesResponse(c.engine.Currency(), c.engine.Rates()))
}

// decodeQuote reads and validates a quote request and prices it
func (c *PricingController) decodeQuote(w http.ResponseWriter, r *http.Request, format string) (pricing.Quote, bool) {
	var req models.QuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return pricing.Quote{}, false
	}
	if len(req.Items) > maxQuoteItems {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("at most %d items per quote", maxQuoteItems))
		return pricing.Quote{}, false
	}
	for i, item := range req.Items {
		if item.Quantity < 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("items[%d]: quantity must not be negative", i))
			return pricing.Quote{}, false
		}
	}

	quote := c.engine.Quote(req.Items)

	metrics.RecordQuote(format)
	for _, item := range quote.Items {
		metrics.RecordQuoteItem(string(item.Platform), string(item.NoteKind))
	}
	return quote, true
}

// Quote handles POST /api/pricing/quote
// Example request:
//
//	{"items": [{"platform": "ig", "service": "followers", "quantity": 1000}]}
//
// Example response:
//
//	{"currency": "THB", "quote": {"items": [...], "total": 199, ...}, "summary": "..."}
func (c *PricingController) Quote(w http.ResponseWriter, r *http.Request) {
	quote, ok := c.decodeQuote(w, r, "json")
	if !ok {
		return
	}

	summary, err := c.engine.Summary(quote)
	if err != nil {
		writeDomainError(w, "Quote", err)
		return
	}

	logging.Sugar.Infof("✅ Quote: %d items, total=%s", len(quote.Items), quote.TotalPrice)
	writeJSON(w, http.StatusOK, models.QuoteResponse{
		Currency: c.engine.Currency(),
		Quote:    quote,
		Summary:  summary,
	})
}

// QuotePDF handles POST /api/pricing/quote/pdf
func (c *PricingController) QuotePDF(w http.ResponseWriter, r *http.Request) {
	quote, ok := c.decodeQuote(w, r, "pdf")
	if !ok {
		return
	}

	pdf, err := c.documents.GeneratePDF(r.Context(), quote)
	if err != nil {
		writeDomainError(w, "QuotePDF", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="quote.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		logging.Sugar.Errorf("❌ QuotePDF: Error writing PDF: %v", err)
	}
}

// QuotePNG handles POST /api/pricing/quote/png
func (c *PricingController) QuotePNG(w http.ResponseWriter, r *http.Request) {
	quote, ok := c.decodeQuote(w, r, "png")
	if !ok {
		return
	}

	png, err := c.documents.GeneratePNG(r.Context(), quote)
	if err != nil {
		writeDomainError(w, "QuotePNG", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		logging.Sugar.Errorf("❌ QuotePNG: Error writing image: %v", err)
	}
}

// RefillFloor handles GET /api/pricing/refill-floor?start_count&quantity
func (c *PricingController) RefillFloor(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("quantity") == "" {
		writeError(w, http.StatusBadRequest, "quantity is required")
		return
	}
	startCount, err := queryInt(r, "start_count", 0, 0, 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	quantity, err := queryInt(r, "quantity", 0, 0, 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, pricing.RefillFloor(startCount, quantity))
}

// QuickMessages handles GET /api/messages/quick?q=
func (c *PricingController) QuickMessages(w http.ResponseWriter, r *http.Request) {
	messages := c.engine.QuickMessages(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, models.QuickMessagesResponse{Messages: messages, Count: len(messages)})
}
