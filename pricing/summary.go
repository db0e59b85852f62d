package pricing

import (
	"fmt"
	"strings"
	"text/template"
)

// SummaryTexts is the boilerplate used to build the customer message
type SummaryTexts struct {
	Template           string             `yaml:"template"`
	PaymentInstruction PaymentInstruction `yaml:"paymentInstruction"`
	Turnaround         Turnaround         `yaml:"turnaround"`
}

// PaymentInstruction is the "send us your link" step, chosen by service class
type PaymentInstruction struct {
	FollowersAndEngagement string `yaml:"followersAndEngagement"`
	Followers              string `yaml:"followers"`
	Engagement             string `yaml:"engagement"`
}

// Turnaround is the start-of-work promise, chosen by lead time
type Turnaround struct {
	Standard string `yaml:"standard"`
	Long     string `yaml:"long"`
}

// summaryData is what the summary template sees
type summaryData struct {
	Total              string
	Services           string
	PaymentInstruction string
	Turnaround         string
	ItemCount          int
}

// Summarizer renders quotes into customer-facing text
type Summarizer struct {
	book  *RateBook
	texts SummaryTexts
	tmpl  *template.Template
}

// NewSummarizer parses the summary template
func NewSummarizer(book *RateBook, texts SummaryTexts) (*Summarizer, error) {
	if strings.TrimSpace(texts.Template) == "" {
		return nil, fmt.Errorf("summary template is required")
	}
	tmpl, err := template.New("summary").Option("missingkey=error").Parse(texts.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to parse summary template: %w", err)
	}
	return &Summarizer{book: book, texts: texts, tmpl: tmpl}, nil
}

// Render builds the full customer message for a quote
func (s *Summarizer) Render(quote Quote) (string, error) {
	services := s.groupedLines(quote)
	if services == "" {
		services = "-"
	}

	data := summaryData{
		Total:              quote.TotalPrice.String(),
		Services:           services,
		PaymentInstruction: s.paymentInstruction(quote),
		Turnaround:         s.turnaround(quote),
		ItemCount:          len(quote.Items),
	}

	var b strings.Builder
	if err := s.tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render summary: %w", err)
	}
	return b.String(), nil
}

// groupedLines lists the non-empty items grouped by platform, in order of
// first appearance:
//
//	#Instagram
//	- Followers 1000
//	- Likes 2000 + 200
func (s *Summarizer) groupedLines(quote Quote) string {
	var order []string
	grouped := make(map[string][]string)

	for _, item := range quote.Items {
		if item.Quantity <= 0 {
			continue
		}
		label := s.book.PlatformLabel(item.Platform)
		if _, seen := grouped[label]; !seen {
			order = append(order, label)
		}
		grouped[label] = append(grouped[label], s.serviceLine(item))
	}

	blocks := make([]string, 0, len(order))
	for _, label := range order {
		blocks = append(blocks, "#"+label+"\n"+strings.Join(grouped[label], "\n"))
	}
	return strings.Join(blocks, "\n")
}

func (s *Summarizer) serviceLine(item PricedLineItem) string {
	label := s.book.ServiceLabel(item.Platform, item.ServiceType)
	if item.FreeUnits > 0 {
		return fmt.Sprintf("- %s %d + %d", label, item.Quantity, item.FreeUnits)
	}
	return fmt.Sprintf("- %s %d", label, item.Quantity)
}

func (s *Summarizer) paymentInstruction(quote Quote) string {
	switch {
	case quote.HasFollowerService && quote.HasEngagementService:
		return s.texts.PaymentInstruction.FollowersAndEngagement
	case quote.HasFollowerService:
		return s.texts.PaymentInstruction.Followers
	default:
		return s.texts.PaymentInstruction.Engagement
	}
}

func (s *Summarizer) turnaround(quote Quote) string {
	if quote.IncludesLongLeadService {
		return s.texts.Turnaround.Long
	}
	return s.texts.Turnaround.Standard
}
