package utils

import (
	"regexp"
	"strconv"
)

var (
	refillRemarkRegex = regexp.MustCompile(`(?i)refill|refil`)
	orderRefRegex     = regexp.MustCompile(`#?(\d+)`)
)

// IsRefillRemark reports whether an order remark marks it as a refill of
// another order. Misspelled "refil" counts too.
func IsRefillRemark(remark string) bool {
	return refillRemarkRegex.MatchString(remark)
}

// ExtractOrderID returns the first order number referenced in a remark,
// e.g. "Refill #1234" -> 1234
func ExtractOrderID(remark string) (int64, bool) {
	m := orderRefRegex.FindStringSubmatch(remark)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
