package pricing

import "github.com/shopspring/decimal"

const maxRefillDiscount = 100

var refillDiscountRate = decimal.RequireFromString("0.10")

// RefillThreshold describes when a delivered order qualifies for a free top-up
type RefillThreshold struct {
	TargetCount int `json:"target_count"`
	Discount    int `json:"discount"`
	Floor       int `json:"floor"`
}

// RefillFloor computes the count below which an order counts as dropped.
// The tolerated drop is 10% of the ordered quantity, rounded up and capped
// at 100 units.
func RefillFloor(startCount, quantity int) RefillThreshold {
	target := startCount + quantity

	discount := int(decimal.NewFromInt(int64(quantity)).Mul(refillDiscountRate).Ceil().IntPart())
	if discount > maxRefillDiscount {
		discount = maxRefillDiscount
	}

	return RefillThreshold{
		TargetCount: target,
		Discount:    discount,
		Floor:       target - discount,
	}
}

// Qualifies reports whether currentCount has dropped enough for a refill
func (t RefillThreshold) Qualifies(currentCount int) bool {
	return currentCount <= t.Floor
}
