package pricing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Platform identifies a social network (ig, tiktok, facebookProfile, facebookPage, youtube)
type Platform string

// ServiceType identifies what is being sold on a platform (followers, likes, views)
type ServiceType string

const (
	ServiceFollowers ServiceType = "followers"
	ServiceLikes     ServiceType = "likes"
	ServiceViews     ServiceType = "views"
)

// ServiceClass groups service types by the link the customer has to supply
type ServiceClass string

const (
	// ClassFollower services need an account link
	ClassFollower ServiceClass = "follower"
	// ClassEngagement services need a post link
	ClassEngagement ServiceClass = "engagement"
)

// RateEntry is one pricing breakpoint
type RateEntry struct {
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	FreeUnits int             `json:"free"`
}

// RateTable is an immutable, quantity-ordered set of breakpoints for one
// (platform, service type) pair. The zero value has no entries.
type RateTable struct {
	entries []RateEntry
}

// NewRateTable validates and sorts entries into a RateTable
func NewRateTable(entries []RateEntry) (RateTable, error) {
	if len(entries) == 0 {
		return RateTable{}, fmt.Errorf("rate table needs at least one entry")
	}

	sorted := make([]RateEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Quantity < sorted[j].Quantity
	})

	for i, e := range sorted {
		if e.Quantity <= 0 {
			return RateTable{}, fmt.Errorf("quantity must be greater than 0, got %d", e.Quantity)
		}
		if e.Price.IsNegative() {
			return RateTable{}, fmt.Errorf("price for quantity %d cannot be negative", e.Quantity)
		}
		if e.FreeUnits < 0 {
			return RateTable{}, fmt.Errorf("free units for quantity %d cannot be negative", e.Quantity)
		}
		if i > 0 && sorted[i-1].Quantity == e.Quantity {
			return RateTable{}, fmt.Errorf("duplicate quantity %d", e.Quantity)
		}
	}

	return RateTable{entries: sorted}, nil
}

// MustRateTable is NewRateTable for static tables; it panics on invalid input
func MustRateTable(entries ...RateEntry) RateTable {
	t, err := NewRateTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Entries returns a copy of the breakpoints in ascending quantity order
func (t RateTable) Entries() []RateEntry {
	out := make([]RateEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of breakpoints
func (t RateTable) Len() int {
	return len(t.entries)
}

// find returns the breakpoint with exactly the given quantity
func (t RateTable) find(quantity int) (RateEntry, bool) {
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Quantity >= quantity
	})
	if i < len(t.entries) && t.entries[i].Quantity == quantity {
		return t.entries[i], true
	}
	return RateEntry{}, false
}

// ServiceInfo describes a service type across platforms
type ServiceInfo struct {
	Type  ServiceType  `json:"value"`
	Label string       `json:"label"`
	Class ServiceClass `json:"class"`
}

// ServiceRates is the rate table of one service on one platform
type ServiceRates struct {
	Service  ServiceType `json:"service"`
	Label    string      `json:"label,omitempty"`
	LongLead bool        `json:"longLead"`
	Table    RateTable   `json:"-"`
}

// PlatformRates groups the rate tables offered on a platform
type PlatformRates struct {
	Platform Platform       `json:"value"`
	Label    string         `json:"label"`
	Services []ServiceRates `json:"services"`
}

type rateKey struct {
	platform Platform
	service  ServiceType
}

// RateBook holds every configured rate table. It is built once at startup
// and never mutated afterwards.
type RateBook struct {
	platforms []PlatformRates
	services  []ServiceInfo
	index     map[rateKey]ServiceRates
	platIdx   map[Platform]int
	svcIdx    map[ServiceType]int
}

// NewRateBook indexes platform and service definitions
func NewRateBook(platforms []PlatformRates, services []ServiceInfo) (*RateBook, error) {
	book := &RateBook{
		platforms: platforms,
		services:  services,
		index:     make(map[rateKey]ServiceRates),
		platIdx:   make(map[Platform]int, len(platforms)),
		svcIdx:    make(map[ServiceType]int, len(services)),
	}

	for i, s := range services {
		if _, dup := book.svcIdx[s.Type]; dup {
			return nil, fmt.Errorf("duplicate service %q", s.Type)
		}
		book.svcIdx[s.Type] = i
	}

	for i, p := range platforms {
		if _, dup := book.platIdx[p.Platform]; dup {
			return nil, fmt.Errorf("duplicate platform %q", p.Platform)
		}
		book.platIdx[p.Platform] = i
		for _, sr := range p.Services {
			if _, known := book.svcIdx[sr.Service]; !known {
				return nil, fmt.Errorf("platform %q uses undefined service %q", p.Platform, sr.Service)
			}
			if sr.Table.Len() == 0 {
				return nil, fmt.Errorf("platform %q service %q has no rates", p.Platform, sr.Service)
			}
			key := rateKey{platform: p.Platform, service: sr.Service}
			if _, dup := book.index[key]; dup {
				return nil, fmt.Errorf("platform %q defines service %q twice", p.Platform, sr.Service)
			}
			book.index[key] = sr
		}
	}

	return book, nil
}

// Lookup returns the rate table for a platform/service pair. The second
// return value is false when no rate is configured for the combination.
func (b *RateBook) Lookup(platform Platform, service ServiceType) (RateTable, bool) {
	sr, ok := b.index[rateKey{platform: platform, service: service}]
	if !ok {
		return RateTable{}, false
	}
	return sr.Table, true
}

// Platforms returns the configured platforms in config order
func (b *RateBook) Platforms() []PlatformRates {
	return b.platforms
}

// Services returns the configured service types in config order
func (b *RateBook) Services() []ServiceInfo {
	return b.services
}

// PlatformLabel returns the display name of a platform, or the raw value when unknown
func (b *RateBook) PlatformLabel(platform Platform) string {
	if i, ok := b.platIdx[platform]; ok {
		return b.platforms[i].Label
	}
	return string(platform)
}

// ServiceLabel returns the display name of a service on a platform. A
// platform can rename a service (YouTube followers are "Subscribers").
func (b *RateBook) ServiceLabel(platform Platform, service ServiceType) string {
	if sr, ok := b.index[rateKey{platform: platform, service: service}]; ok && sr.Label != "" {
		return sr.Label
	}
	if i, ok := b.svcIdx[service]; ok {
		return b.services[i].Label
	}
	return string(service)
}

// ServiceClass returns the class of a service type, or "" when unknown
func (b *RateBook) ServiceClass(service ServiceType) ServiceClass {
	if i, ok := b.svcIdx[service]; ok {
		return b.services[i].Class
	}
	return ""
}

// IsLongLead reports whether the pair has the longer fulfilment turnaround
func (b *RateBook) IsLongLead(platform Platform, service ServiceType) bool {
	return b.index[rateKey{platform: platform, service: service}].LongLead
}
