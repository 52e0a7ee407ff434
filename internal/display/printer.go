package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"stockengine/internal/book"
)

const footerWidth = 50

// Printer renders the book as a fixed-width table.
type Printer struct {
	w io.Writer
}

// NewPrinter writes to w, or stdout when w is nil.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{w: w}
}

// PrintTableHeader prints the title and the column header.
func (p *Printer) PrintTableHeader(title string) {
	header := fmt.Sprintf("%-6s | %-6s | %-8s | %-6s", "Type", "Ticker", "Qty", "Price")
	fmt.Fprintf(p.w, "\n%s\n%s\n%s\n", title, header, strings.Repeat("-", len(header)))
}

// PrintTradingHeader prints the column header for the event log.
func (p *Printer) PrintTradingHeader() {
	header := strings.Repeat(" ", 27) + "Action" + " | " + fmt.Sprintf("%-6s | %-8s | %-6s", "Ticker", "Qty", "Price")
	fmt.Fprintf(p.w, "%s\n%s\n", header, strings.Repeat("-", len(header)))
}

// PrintBook prints the given live orders in order, or an empty marker.
func (p *Printer) PrintBook(title string, orders []*book.Order) {
	p.PrintTableHeader(title)
	if len(orders) == 0 {
		fmt.Fprintln(p.w, "Order book is empty")
	}
	for _, o := range orders {
		fmt.Fprintln(p.w, o.String())
	}
	fmt.Fprintln(p.w, strings.Repeat("-", footerWidth))
}
