package models

import "rocketboost-admin/pricing"

// QuoteRequest is the body of the quote endpoints
type QuoteRequest struct {
	Items []pricing.LineItem `json:"items"`
}

// QuoteResponse pairs the priced quote with the customer message
type QuoteResponse struct {
	Currency string        `json:"currency"`
	Quote    pricing.Quote `json:"quote"`
	Summary  string        `json:"summary"`
}

// RateTableView is one service's breakpoints as exposed by the API
type RateTableView struct {
	Service  pricing.ServiceType `json:"service"`
	Label    string              `json:"label"`
	LongLead bool                `json:"longLead"`
	Entries  []pricing.RateEntry `json:"entries"`
}

// PlatformRatesView is one platform of GET /api/pricing/rates
type PlatformRatesView struct {
	Value    pricing.Platform `json:"value"`
	Label    string           `json:"label"`
	Services []RateTableView  `json:"services"`
}

// RatesResponse is GET /api/pricing/rates
type RatesResponse struct {
	Currency  string                `json:"currency"`
	Services  []pricing.ServiceInfo `json:"services"`
	Platforms []PlatformRatesView   `json:"platforms"`
}

// NewRatesResponse flattens a rate book for the API
func NewRatesResponse(currency string, book *pricing.RateBook) RatesResponse {
	resp := RatesResponse{
		Currency:  currency,
		Services:  book.Services(),
		Platforms: make([]PlatformRatesView, 0, len(book.Platforms())),
	}
	for _, p := range book.Platforms() {
		view := PlatformRatesView{Value: p.Platform, Label: p.Label}
		for _, s := range p.Services {
			view.Services = append(view.Services, RateTableView{
				Service:  s.Service,
				Label:    book.ServiceLabel(p.Platform, s.Service),
				LongLead: s.LongLead,
				Entries:  s.Table.Entries(),
			})
		}
		resp.Platforms = append(resp.Platforms, view)
	}
	return resp
}

// QuickMessagesResponse is GET /api/messages/quick
type QuickMessagesResponse struct {
	Messages []string `json:"messages"`
	Count    int      `json:"count"`
}
