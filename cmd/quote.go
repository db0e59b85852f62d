package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"rocketboost-admin/metrics"
	"rocketboost-admin/models"
	"rocketboost-admin/pricing"
	"rocketboost-admin/utils"
)

var (
	quoteJSON    bool
	quoteSummary bool
)

// quoteCmd prices line items from the command line
var quoteCmd = &cobra.Command{
	Use:   "quote platform:service:quantity...",
	Short: "Price one or more line items",
	Long: `Price line items with the configured rate tables.

Each argument is platform:service:quantity, for example:
  rocketboost quote ig:followers:1000 tiktok:views:25000`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuote,
}

// refillFloorCmd computes the refill threshold for an order
var refillFloorCmd = &cobra.Command{
	Use:   "refill-floor start_count quantity",
	Short: "Show the count below which an order qualifies for a refill",
	Args:  cobra.ExactArgs(2),
	RunE:  runRefillFloor,
}

func init() {
	quoteCmd.Flags().BoolVar(&quoteJSON, "json", false, "print the quote as JSON")
	quoteCmd.Flags().BoolVar(&quoteSummary, "summary", true, "print the customer message")
}

func runQuote(cmd *cobra.Command, args []string) error {
	items := make([]pricing.LineItem, 0, len(args))
	for _, arg := range args {
		item, err := parseLineItem(arg)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	engine, err := pricing.NewEngine(ratesPath)
	if err != nil {
		return err
	}

	quote := engine.Quote(items)
	summary, err := engine.Summary(quote)
	if err != nil {
		return err
	}

	metrics.RecordQuote("cli")

	out := cmd.OutOrStdout()
	if quoteJSON {
		return printJSON(out, models.QuoteResponse{Currency: engine.Currency(), Quote: quote, Summary: summary})
	}
	renderQuote(out, engine, quote)
	if quoteSummary {
		printHeader(out, "Customer message")
		fmt.Fprintln(out, summary)
	}
	return nil
}

// parseLineItem reads "platform:service:quantity"
func parseLineItem(arg string) (pricing.LineItem, error) {
	parts := strings.Split(arg, ":")
	if len(parts) != 3 {
		return pricing.LineItem{}, fmt.Errorf("invalid item %q: expected platform:service:quantity", arg)
	}

	platform := strings.TrimSpace(parts[0])
	service := strings.TrimSpace(parts[1])
	if platform == "" || service == "" {
		return pricing.LineItem{}, fmt.Errorf("invalid item %q: platform and service are required", arg)
	}

	qty, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(parts[2]), ",", ""))
	if err != nil {
		return pricing.LineItem{}, fmt.Errorf("invalid item %q: quantity must be a number", arg)
	}
	if qty < 0 {
		return pricing.LineItem{}, fmt.Errorf("invalid item %q: quantity must not be negative", arg)
	}

	return pricing.LineItem{
		Platform:    pricing.Platform(platform),
		ServiceType: pricing.ServiceType(service),
		Quantity:    qty,
	}, nil
}

func renderQuote(w io.Writer, engine *pricing.Engine, quote pricing.Quote) {
	book := engine.Rates()
	printHeader(w, "Quote")

	for _, item := range quote.Items {
		labelColor.Fprintf(w, "  %-18s %-10s", book.PlatformLabel(item.Platform), book.ServiceLabel(item.Platform, item.ServiceType))
		fmt.Fprintf(w, " %8d", item.Quantity)
		if item.FreeUnits > 0 {
			fmt.Fprintf(w, " + %d", item.FreeUnits)
		}
		priceColor.Fprintf(w, "  %s", utils.FormatTHB(item.Price))
		if item.NoteKind != pricing.NoteNone && item.NoteKind != pricing.NoteExact {
			warnColor.Fprintf(w, "  (%s)", item.Note)
		}
		fmt.Fprintln(w)
	}

	successColor.Fprintf(w, "\n  Total: %s\n", utils.FormatTHB(quote.TotalPrice))
}

func runRefillFloor(cmd *cobra.Command, args []string) error {
	start, err := strconv.Atoi(args[0])
	if err != nil || start < 0 {
		return fmt.Errorf("start_count must be a non-negative number")
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil || qty < 1 {
		return fmt.Errorf("quantity must be a positive number")
	}

	t := pricing.RefillFloor(start, qty)
	out := cmd.OutOrStdout()
	printHeader(out, "Refill threshold")
	fmt.Fprintf(out, "  Target:   %d\n", t.TargetCount)
	fmt.Fprintf(out, "  Discount: %d\n", t.Discount)
	priceColor.Fprintf(out, "  Floor:    %d\n", t.Floor)
	return nil
}
