package pricing

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"rocketboost-admin/logging"
)

//go:embed rates.yaml
var defaultConfig []byte

// Config is the YAML pricing configuration
type Config struct {
	Currency      string           `yaml:"currency"`
	Services      []serviceConfig  `yaml:"services"`
	Platforms     []platformConfig `yaml:"platforms"`
	Summary       SummaryTexts     `yaml:"summary"`
	QuickMessages []string         `yaml:"quickMessages"`
}

type serviceConfig struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
	Class string `yaml:"class"`
}

type platformConfig struct {
	Value    string                          `yaml:"value"`
	Label    string                          `yaml:"label"`
	Services map[string]platformServiceRates `yaml:"services"`
	// Order keeps services in the order they appear in the file
	Order []string `yaml:"-"`
}

type platformServiceRates struct {
	Label    string           `yaml:"label"`
	LongLead bool             `yaml:"longLead"`
	Rates    map[int]rawEntry `yaml:"rates"`
}

// rawEntry accepts either a bare price (`100: 40`) or a mapping
// (`100: {price: 40, free: 10}`)
type rawEntry struct {
	Price decimal.Decimal
	Free  int
}

// UnmarshalYAML normalizes both rate shapes into rawEntry
func (r *rawEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		price, err := decimal.NewFromString(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: invalid price %q", node.Line, node.Value)
		}
		r.Price = price
		return nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i].Value, node.Content[i+1].Value
			switch key {
			case "price":
				price, err := decimal.NewFromString(val)
				if err != nil {
					return fmt.Errorf("line %d: invalid price %q", node.Line, val)
				}
				r.Price = price
			case "free":
				free, err := strconv.Atoi(val)
				if err != nil {
					return fmt.Errorf("line %d: invalid free units %q", node.Line, val)
				}
				r.Free = free
			default:
				return fmt.Errorf("line %d: unknown rate field %q", node.Line, key)
			}
		}
		return nil
	default:
		return fmt.Errorf("line %d: rate must be a number or {price, free}", node.Line)
	}
}

// UnmarshalYAML decodes a platform and records service order
func (p *platformConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain platformConfig
	var decoded plain
	if err := node.Decode(&decoded); err != nil {
		return err
	}
	*p = platformConfig(decoded)

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "services" {
			continue
		}
		svcNode := node.Content[i+1]
		for j := 0; j+1 < len(svcNode.Content); j += 2 {
			p.Order = append(p.Order, svcNode.Content[j].Value)
		}
	}
	return nil
}

// Engine answers pricing questions from a loaded configuration
type Engine struct {
	currency   string
	book       *RateBook
	summarizer *Summarizer
	messages   []string
}

// NewEngine loads the pricing configuration from configPath, or the built-in
// rates when configPath is empty
func NewEngine(configPath string) (*Engine, error) {
	if configPath == "" {
		engine, err := NewEngineFromYAML(defaultConfig)
		if err != nil {
			return nil, fmt.Errorf("invalid built-in pricing config: %w", err)
		}
		logging.Sugar.Infof("✅ PricingEngine: Loaded built-in rate tables (%d platforms)", len(engine.book.Platforms()))
		return engine, nil
	}

	if !filepath.IsAbs(configPath) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath = filepath.Join(wd, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing config: %w", err)
	}

	engine, err := NewEngineFromYAML(data)
	if err != nil {
		return nil, err
	}

	logging.Sugar.Infof("✅ PricingEngine: Loaded pricing config from %s", configPath)
	return engine, nil
}

// NewEngineFromYAML builds an engine from raw YAML
func NewEngineFromYAML(data []byte) (*Engine, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse pricing config: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}

	book, err := buildRateBook(&cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}

	summarizer, err := NewSummarizer(book, cfg.Summary)
	if err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}

	return &Engine{
		currency:   cfg.Currency,
		book:       book,
		summarizer: summarizer,
		messages:   cfg.QuickMessages,
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if len(cfg.Services) == 0 {
		return fmt.Errorf("services are required")
	}
	if len(cfg.Platforms) == 0 {
		return fmt.Errorf("platforms are required")
	}
	for _, s := range cfg.Services {
		switch ServiceClass(s.Class) {
		case ClassFollower, ClassEngagement:
		default:
			return fmt.Errorf("service %q has unknown class %q", s.Value, s.Class)
		}
	}
	return nil
}

func buildRateBook(cfg *Config) (*RateBook, error) {
	services := make([]ServiceInfo, 0, len(cfg.Services))
	for _, s := range cfg.Services {
		services = append(services, ServiceInfo{
			Type:  ServiceType(s.Value),
			Label: s.Label,
			Class: ServiceClass(s.Class),
		})
	}

	platforms := make([]PlatformRates, 0, len(cfg.Platforms))
	for _, p := range cfg.Platforms {
		pr := PlatformRates{Platform: Platform(p.Value), Label: p.Label}

		for _, svc := range p.Order {
			raw := p.Services[svc]
			entries := make([]RateEntry, 0, len(raw.Rates))
			for qty, r := range raw.Rates {
				entries = append(entries, RateEntry{Quantity: qty, Price: r.Price, FreeUnits: r.Free})
			}
			sort.Slice(entries, func(i, j int) bool { return entries[i].Quantity < entries[j].Quantity })

			table, err := NewRateTable(entries)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", p.Value, svc, err)
			}
			pr.Services = append(pr.Services, ServiceRates{
				Service:  ServiceType(svc),
				Label:    raw.Label,
				LongLead: raw.LongLead,
				Table:    table,
			})
		}
		platforms = append(platforms, pr)
	}

	return NewRateBook(platforms, services)
}

// Currency returns the configured currency code
func (e *Engine) Currency() string {
	return e.currency
}

// Rates returns the immutable rate book
func (e *Engine) Rates() *RateBook {
	return e.book
}

// Quote prices a list of line items
func (e *Engine) Quote(items []LineItem) Quote {
	return e.book.BuildQuote(items)
}

// Summary renders the customer message for a quote
func (e *Engine) Summary(quote Quote) (string, error) {
	return e.summarizer.Render(quote)
}

// QuickMessages returns the canned replies containing filter, case-insensitively
func (e *Engine) QuickMessages(filter string) []string {
	needle := strings.ToLower(strings.TrimSpace(filter))
	out := make([]string, 0, len(e.messages))
	for _, m := range e.messages {
		if needle == "" || strings.Contains(strings.ToLower(m), needle) {
			out = append(out, m)
		}
	}
	return out
}
