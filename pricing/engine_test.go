package pricing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine("")
	require.NoError(t, err)
	return engine
}

func TestNewEngine_BuiltInRates(t *testing.T) {
	engine := newDefaultEngine(t)

	assert.Equal(t, "THB", engine.Currency())

	platforms := engine.Rates().Platforms()
	require.Len(t, platforms, 5)
	assert.Equal(t, Platform("ig"), platforms[0].Platform)
	assert.Equal(t, Platform("youtube"), platforms[4].Platform)

	ig := platforms[0]
	require.Len(t, ig.Services, 3)
	assert.Equal(t, ServiceFollowers, ig.Services[0].Service)
	assert.Equal(t, ServiceLikes, ig.Services[1].Service)
	assert.Equal(t, ServiceViews, ig.Services[2].Service)

	table, ok := engine.Rates().Lookup("facebookPage", ServiceFollowers)
	require.True(t, ok)
	assert.Equal(t, 19, table.Len())

	assert.Equal(t, "Subscribers", engine.Rates().ServiceLabel("youtube", ServiceFollowers))
	assert.True(t, engine.Rates().IsLongLead("youtube", ServiceFollowers))
	assert.False(t, engine.Rates().IsLongLead("ig", ServiceFollowers))
}

func TestNewEngine_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalConfig), 0o600))

	engine, err := NewEngine(path)
	require.NoError(t, err)

	quote := engine.Quote([]LineItem{{Platform: "ig", ServiceType: ServiceLikes, Quantity: 150}})
	assert.True(t, decimal.NewFromInt(15).Equal(quote.TotalPrice))
	assert.Equal(t, 5, quote.Items[0].FreeUnits)
}

func TestNewEngine_MissingFile(t *testing.T) {
	_, err := NewEngine(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

const minimalConfig = `
currency: THB
services:
  - value: likes
    label: Likes
    class: engagement
platforms:
  - value: ig
    label: Instagram
    services:
      likes:
        rates:
          100: 10
          200: { price: 20, free: 10 }
summary:
  template: "{{.Total}} {{.Services}}"
quickMessages:
  - Hello there
  - Please send the SLIP
  - Refill is on the way
`

func TestNewEngineFromYAML_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "::"},
		{"no currency", strings.Replace(minimalConfig, "currency: THB", "", 1)},
		{"bad class", strings.Replace(minimalConfig, "class: engagement", "class: other", 1)},
		{"bad price", strings.Replace(minimalConfig, "100: 10", "100: ten", 1)},
		{"unknown rate field", strings.Replace(minimalConfig, "free: 10", "bonus: 10", 1)},
		{"negative price", strings.Replace(minimalConfig, "100: 10", "100: -10", 1)},
		{"undefined service", strings.Replace(minimalConfig, "      likes:", "      views:", 1)},
		{"bad template", strings.Replace(minimalConfig, "{{.Total}}", "{{.Total", 1)},
		{"empty template", strings.Replace(minimalConfig, `"{{.Total}} {{.Services}}"`, `""`, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngineFromYAML([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestEngine_QuickMessages(t *testing.T) {
	engine, err := NewEngineFromYAML([]byte(minimalConfig))
	require.NoError(t, err)

	assert.Len(t, engine.QuickMessages(""), 3)
	assert.Equal(t, []string{"Please send the SLIP"}, engine.QuickMessages("slip"))
	assert.Equal(t, []string{"Refill is on the way"}, engine.QuickMessages("  REFILL "))
	assert.Empty(t, engine.QuickMessages("nothing matches"))
}

func TestEngine_Summary(t *testing.T) {
	engine := newDefaultEngine(t)

	quote := engine.Quote([]LineItem{
		{Platform: "ig", ServiceType: ServiceFollowers, Quantity: 1000},
		{Platform: "ig", ServiceType: ServiceLikes, Quantity: 2000},
		{Platform: "youtube", ServiceType: ServiceFollowers, Quantity: 100},
	})
	require.True(t, decimal.NewFromInt(199).Equal(quote.TotalPrice))

	text, err := engine.Summary(quote)
	require.NoError(t, err)

	assert.Contains(t, text, "💰 ยอดที่ต้องชำระ: 199 บาท")
	assert.Contains(t, text, "#Instagram\n- Followers 1000\n- Likes 2000 + 200\n#YouTube\n- Subscribers 100")
	assert.Contains(t, text, "ลิงก์ account ที่ต้องการเพิ่มฟอล + ลิงก์โพสต์")
	assert.Contains(t, text, "เริ่มงานภายใน 24 ชั่วโมง")
}

func TestEngine_Summary_Variants(t *testing.T) {
	engine := newDefaultEngine(t)

	followersOnly, err := engine.Summary(engine.Quote([]LineItem{
		{Platform: "tiktok", ServiceType: ServiceFollowers, Quantity: 500},
	}))
	require.NoError(t, err)
	assert.Contains(t, followersOnly, "2️⃣ ส่งลิงก์ account ที่ต้องการเพิ่มฟอลมาให้ทางร้าน")
	assert.Contains(t, followersOnly, "เริ่มงานภายใน 2-3 ชั่วโมง")

	engagementOnly, err := engine.Summary(engine.Quote([]LineItem{
		{Platform: "ig", ServiceType: ServiceViews, Quantity: 1000},
	}))
	require.NoError(t, err)
	assert.Contains(t, engagementOnly, "2️⃣ ส่งลิงก์โพสต์ที่ต้องการเพิ่มไลก์/วิวมาให้ทางร้าน")

	empty, err := engine.Summary(engine.Quote(nil))
	require.NoError(t, err)
	assert.Contains(t, empty, "🛍️ บริการ:\n-\n")
	assert.Contains(t, empty, "ยอดที่ต้องชำระ: 0 บาท")
}
