package pricing

import "github.com/shopspring/decimal"

// LineItem is one requested service/quantity pair in a quote
type LineItem struct {
	Platform    Platform    `json:"platform"`
	ServiceType ServiceType `json:"service"`
	Quantity    int         `json:"quantity"`
	Link        string      `json:"link,omitempty"`
}

// PricedLineItem is a LineItem with its computed estimate
type PricedLineItem struct {
	LineItem
	Estimate
}

// Quote is a priced set of line items plus the flags that drive the
// customer message
type Quote struct {
	Items                   []PricedLineItem `json:"items"`
	TotalPrice              decimal.Decimal  `json:"total"`
	HasFollowerService      bool             `json:"hasFollowerService"`
	HasEngagementService    bool             `json:"hasEngagementService"`
	IncludesLongLeadService bool             `json:"includesLongLeadService"`
}

const noRateNote = "no rate available"

// Price estimates a single line item. Unknown platform/service pairs get a
// zero price and a no_rate note instead of an error.
func (b *RateBook) Price(item LineItem) PricedLineItem {
	table, ok := b.Lookup(item.Platform, item.ServiceType)
	if !ok {
		return PricedLineItem{
			LineItem: item,
			Estimate: Estimate{Price: decimal.Zero, NoteKind: NoteNoRate, Note: noRateNote},
		}
	}
	return PricedLineItem{LineItem: item, Estimate: Interpolate(table, item.Quantity)}
}

// BuildQuote prices every item and aggregates totals and flags. Items with
// zero quantity are kept in the output but contribute nothing to the total
// or the flags.
func (b *RateBook) BuildQuote(items []LineItem) Quote {
	quote := Quote{
		Items:      make([]PricedLineItem, 0, len(items)),
		TotalPrice: decimal.Zero,
	}

	for _, item := range items {
		priced := b.Price(item)
		quote.Items = append(quote.Items, priced)

		if item.Quantity <= 0 {
			continue
		}
		quote.TotalPrice = quote.TotalPrice.Add(priced.Price)

		switch b.ServiceClass(item.ServiceType) {
		case ClassFollower:
			quote.HasFollowerService = true
		case ClassEngagement:
			quote.HasEngagementService = true
		}
		if b.IsLongLead(item.Platform, item.ServiceType) {
			quote.IncludesLongLeadService = true
		}
	}

	return quote
}
