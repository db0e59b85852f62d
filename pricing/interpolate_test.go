package pricing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rate(qty int, price int64, free int) RateEntry {
	return RateEntry{Quantity: qty, Price: decimal.NewFromInt(price), FreeUnits: free}
}

func followersTable() RateTable {
	return MustRateTable(
		rate(100, 20, 0),
		rate(200, 40, 0),
		rate(1000, 119, 0),
		rate(10000, 1050, 0),
	)
}

func TestInterpolate(t *testing.T) {
	table := followersTable()

	tests := []struct {
		name      string
		quantity  int
		wantPrice int64
		wantFree  int
		wantKind  NoteKind
	}{
		{"below minimum tier", 50, 10, 0, NoteBelowRange},
		{"exact tier", 200, 40, 0, NoteExact},
		{"between tiers", 150, 30, 0, NoteBetween},
		{"above maximum tier", 20000, 2100, 0, NoteAboveRange},
		{"single unit rounds up", 1, 1, 0, NoteBelowRange},
		{"zero quantity", 0, 0, 0, NoteNone},
		{"negative quantity", -5, 0, 0, NoteNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpolate(table, tt.quantity)
			assert.True(t, decimal.NewFromInt(tt.wantPrice).Equal(got.Price), "price %s", got.Price)
			assert.Equal(t, tt.wantFree, got.FreeUnits)
			assert.Equal(t, tt.wantKind, got.NoteKind)
		})
	}
}

func TestInterpolate_Notes(t *testing.T) {
	table := followersTable()

	assert.Equal(t, "exact rate for 1000", Interpolate(table, 1000).Note)
	assert.Equal(t, "proportional to minimum tier 100", Interpolate(table, 50).Note)
	assert.Equal(t, "proportional to maximum tier 10000", Interpolate(table, 12000).Note)
	assert.Equal(t, "interpolated between 200-1000", Interpolate(table, 500).Note)
	assert.Empty(t, Interpolate(table, 0).Note)
}

func TestInterpolate_FreeUnits(t *testing.T) {
	table := MustRateTable(
		rate(1000, 30, 0),
		rate(2000, 60, 200),
		rate(10000, 300, 1000),
	)

	mid := Interpolate(table, 1500)
	assert.True(t, decimal.NewFromInt(45).Equal(mid.Price))
	assert.Equal(t, 100, mid.FreeUnits)

	above := Interpolate(table, 15000)
	assert.True(t, decimal.NewFromInt(450).Equal(above.Price))
	assert.Equal(t, 1500, above.FreeUnits)

	below := Interpolate(table, 500)
	assert.True(t, decimal.NewFromInt(15).Equal(below.Price))
	assert.Equal(t, 0, below.FreeUnits)
}

func TestInterpolate_HalfRoundsUp(t *testing.T) {
	table := MustRateTable(rate(2000, 378, 0), rate(3000, 567, 500))

	got := Interpolate(table, 2500)
	assert.True(t, decimal.NewFromInt(473).Equal(got.Price), "price %s", got.Price)
	assert.Equal(t, 250, got.FreeUnits)
}

func TestInterpolate_SingleBreakpoint(t *testing.T) {
	table := MustRateTable(rate(100, 40, 10))

	assert.True(t, decimal.NewFromInt(40).Equal(Interpolate(table, 100).Price))
	assert.True(t, decimal.NewFromInt(20).Equal(Interpolate(table, 50).Price))
	assert.Equal(t, 5, Interpolate(table, 50).FreeUnits)
	assert.True(t, decimal.NewFromInt(80).Equal(Interpolate(table, 200).Price))
	assert.Equal(t, 20, Interpolate(table, 200).FreeUnits)
}

func TestInterpolate_EmptyTable(t *testing.T) {
	got := Interpolate(RateTable{}, 500)
	assert.True(t, got.Price.IsZero())
	assert.Equal(t, 0, got.FreeUnits)
}

func TestInterpolate_MatchesEveryBreakpoint(t *testing.T) {
	table := followersTable()
	for _, e := range table.Entries() {
		got := Interpolate(table, e.Quantity)
		assert.True(t, e.Price.Equal(got.Price), "quantity %d", e.Quantity)
		assert.Equal(t, e.FreeUnits, got.FreeUnits)
	}
}

func TestInterpolate_Monotonic(t *testing.T) {
	table := followersTable()

	prev := decimal.Zero
	for q := 1; q <= 25000; q += 7 {
		got := Interpolate(table, q)
		require.True(t, got.Price.GreaterThanOrEqual(prev), "price dropped at %d: %s < %s", q, got.Price, prev)
		prev = got.Price
	}
}

func TestNewRateTable_Validation(t *testing.T) {
	_, err := NewRateTable(nil)
	assert.Error(t, err)

	_, err = NewRateTable([]RateEntry{rate(0, 10, 0)})
	assert.Error(t, err)

	_, err = NewRateTable([]RateEntry{rate(100, -1, 0)})
	assert.Error(t, err)

	_, err = NewRateTable([]RateEntry{rate(100, 1, -1)})
	assert.Error(t, err)

	_, err = NewRateTable([]RateEntry{rate(100, 1, 0), rate(100, 2, 0)})
	assert.Error(t, err)
}

func TestNewRateTable_OrderIndependent(t *testing.T) {
	shuffled := MustRateTable(rate(10000, 1050, 0), rate(100, 20, 0), rate(1000, 119, 0), rate(200, 40, 0))
	sorted := followersTable()

	assert.Equal(t, sorted.Entries(), shuffled.Entries())
	for _, q := range []int{1, 50, 150, 999, 4321, 20000} {
		assert.Equal(t, Interpolate(sorted, q), Interpolate(shuffled, q), "quantity %d", q)
	}
}

func TestNoteKind_JSON(t *testing.T) {
	table := MustRateTable(rate(100, 20, 0), rate(200, 40, 0))

	for qty, want := range map[int]string{
		100: `"noteKind":"exact"`,
		50:  `"noteKind":"below_range"`,
		500: `"noteKind":"above_range"`,
		150: `"noteKind":"between"`,
	} {
		data, err := json.Marshal(Interpolate(table, qty))
		require.NoError(t, err)
		assert.Contains(t, string(data), want, qty)
	}

	data, err := json.Marshal(Interpolate(table, 0))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "noteKind")
}
