package cmd

import (
	"encoding/json"
	"io"

	"github.com/fatih/color"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	priceColor   = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen, color.Bold)
)

func printHeader(w io.Writer, title string) {
	headerColor.Fprintf(w, "\n%s\n", title)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
