package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"rocketboost-admin/logging"
	"rocketboost-admin/pricing"
	"rocketboost-admin/utils"
)

//go:embed templates/quote.html
var quoteTemplateFS embed.FS

const (
	documentTimeout = 30 * time.Second
	documentBrand   = "Rocket Boost"
)

// QuoteDocumentService renders quotes to HTML and prints them with headless Chrome
// Implements QuoteDocumentServiceInterface
type QuoteDocumentService struct {
	engine     *pricing.Engine
	tmpl       *template.Template
	chromePath string
	now        func() time.Time
}

// detectChromePath returns the configured Chrome path if it exists, then the
// first common installation path found
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
		logging.Sugar.Warnf("⚠️ CHROME_PATH %s not found, trying defaults", configured)
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// NewQuoteDocumentService creates a new QuoteDocumentService
func NewQuoteDocumentService(engine *pricing.Engine, chromePath string) (*QuoteDocumentService, error) {
	tmpl, err := template.ParseFS(quoteTemplateFS, "templates/quote.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &QuoteDocumentService{
		engine:     engine,
		tmpl:       tmpl,
		chromePath: chromePath,
		now:        time.Now,
	}, nil
}

// Ensure QuoteDocumentService implements QuoteDocumentServiceInterface
var _ QuoteDocumentServiceInterface = (*QuoteDocumentService)(nil)

type quoteRow struct {
	Platform string
	Service  string
	Quantity int
	Free     int
	Price    string
	Note     string
}

// RenderHTML renders the quote table and the customer message as a page
func (s *QuoteDocumentService) RenderHTML(quote pricing.Quote) (string, error) {
	summary, err := s.engine.Summary(quote)
	if err != nil {
		return "", err
	}

	book := s.engine.Rates()
	rows := make([]quoteRow, 0, len(quote.Items))
	for _, item := range quote.Items {
		if item.Quantity <= 0 {
			continue
		}
		rows = append(rows, quoteRow{
			Platform: book.PlatformLabel(item.Platform),
			Service:  book.ServiceLabel(item.Platform, item.ServiceType),
			Quantity: item.Quantity,
			Free:     item.FreeUnits,
			Price:    utils.FormatTHB(item.Price),
			Note:     item.Note,
		})
	}

	data := struct {
		Brand       string
		GeneratedAt string
		Rows        []quoteRow
		Total       string
		Summary     string
	}{
		Brand:       documentBrand,
		GeneratedAt: s.now().In(utils.Bangkok).Format("2006-01-02 15:04"),
		Rows:        rows,
		Total:       utils.FormatTHB(quote.TotalPrice),
		Summary:     summary,
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF prints the rendered quote to an A5 PDF
func (s *QuoteDocumentService) GeneratePDF(ctx context.Context, quote pricing.Quote) ([]byte, error) {
	var pdfBuf []byte
	err := s.print(ctx, quote, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		// A5 is 5.83" x 8.27"
		pdfBuf, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(5.83).
			WithPaperHeight(8.27).
			WithMarginTop(0).
			WithMarginBottom(0).
			WithMarginLeft(0).
			WithMarginRight(0).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	logging.Sugar.Infof("✅ QuoteDocument: PDF generated (%d bytes)", len(pdfBuf))
	return pdfBuf, nil
}

// GeneratePNG takes a full-page screenshot of the rendered quote
func (s *QuoteDocumentService) GeneratePNG(ctx context.Context, quote pricing.Quote) ([]byte, error) {
	var pngBuf []byte
	// quality 100 keeps PNG encoding
	if err := s.print(ctx, quote, chromedp.FullScreenshot(&pngBuf, 100)); err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	logging.Sugar.Infof("✅ QuoteDocument: PNG generated (%d bytes)", len(pngBuf))
	return pngBuf, nil
}

// print loads the quote page into a fresh headless browser and runs capture
func (s *QuoteDocumentService) print(ctx context.Context, quote pricing.Quote, capture chromedp.Action) error {
	html, err := s.RenderHTML(quote)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, documentTimeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	return chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(620, 900),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		capture,
	)
}
