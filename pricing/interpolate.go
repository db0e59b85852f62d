package pricing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// NoteKind tells how an estimate was derived from the rate table
type NoteKind string

const (
	NoteNone       NoteKind = ""
	NoteExact      NoteKind = "exact"
	NoteBelowRange NoteKind = "below_range"
	NoteAboveRange NoteKind = "above_range"
	NoteBetween    NoteKind = "between"
	NoteNoRate     NoteKind = "no_rate"
)

// Estimate is the price and bonus for one requested quantity
type Estimate struct {
	Price     decimal.Decimal `json:"price"`
	FreeUnits int             `json:"free"`
	NoteKind  NoteKind        `json:"noteKind,omitempty"`
	Note      string          `json:"note"`
}

// Interpolate estimates price and free units for quantity from the table.
//
// Out-of-range quantities scale proportionally from the nearest end of the
// table with the price rounded up; quantities between two breakpoints are
// interpolated linearly and rounded to nearest. quantity must be >= 0.
func Interpolate(table RateTable, quantity int) Estimate {
	if quantity <= 0 || table.Len() == 0 {
		return Estimate{Price: decimal.Zero}
	}

	if exact, ok := table.find(quantity); ok {
		return Estimate{
			Price:     exact.Price,
			FreeUnits: exact.FreeUnits,
			NoteKind:  NoteExact,
			Note:      fmt.Sprintf("exact rate for %d", quantity),
		}
	}

	entries := table.entries
	first := entries[0]
	last := entries[len(entries)-1]

	if quantity < first.Quantity {
		est := scaleFrom(first, quantity)
		est.NoteKind = NoteBelowRange
		est.Note = fmt.Sprintf("proportional to minimum tier %d", first.Quantity)
		return est
	}

	if quantity > last.Quantity {
		est := scaleFrom(last, quantity)
		est.NoteKind = NoteAboveRange
		est.Note = fmt.Sprintf("proportional to maximum tier %d", last.Quantity)
		return est
	}

	// first breakpoint above quantity; exact matches were handled above
	i := sort.Search(len(entries), func(i int) bool {
		return entries[i].Quantity > quantity
	})
	lower, upper := entries[i-1], entries[i]

	offset := decimal.NewFromInt(int64(quantity - lower.Quantity))
	span := decimal.NewFromInt(int64(upper.Quantity - lower.Quantity))

	price := lower.Price.Add(upper.Price.Sub(lower.Price).Mul(offset).Div(span)).Round(0)

	lowerFree := decimal.NewFromInt(int64(lower.FreeUnits))
	upperFree := decimal.NewFromInt(int64(upper.FreeUnits))
	free := lowerFree.Add(upperFree.Sub(lowerFree).Mul(offset).Div(span)).Round(0)

	return Estimate{
		Price:     price,
		FreeUnits: int(free.IntPart()),
		NoteKind:  NoteBetween,
		Note:      fmt.Sprintf("interpolated between %d-%d", lower.Quantity, upper.Quantity),
	}
}

// scaleFrom prices quantity proportionally to a single breakpoint
func scaleFrom(anchor RateEntry, quantity int) Estimate {
	q := decimal.NewFromInt(int64(quantity))
	base := decimal.NewFromInt(int64(anchor.Quantity))

	price := anchor.Price.Mul(q).Div(base).Ceil()
	free := decimal.NewFromInt(int64(anchor.FreeUnits)).Mul(q).Div(base).Round(0)

	return Estimate{
		Price:     price,
		FreeUnits: int(free.IntPart()),
	}
}
