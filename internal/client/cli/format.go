package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/realty/internal/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.BrazilianPortuguese)

// formatPrice renders a monthly rent the way the site shows it: R$ 2.500
func formatPrice(p float64) string {
	return pricePrinter.Sprintf("R$ %d", int64(p+0.5))
}

func formatLine(p catalog.Property) string {
	line := fmt.Sprintf("#%d  %s | %s | %s | %s/month", p.ID, p.Title, p.Category, p.Location, formatPrice(p.Price))
	if !p.Active {
		line += " [inactive]"
	}
	return line
}

func formatDetails(p catalog.Property) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s\n", p.ID, p.Title)
	fmt.Fprintf(&b, "  Type:      %s\n", p.Category)
	fmt.Fprintf(&b, "  Location:  %s\n", p.Location)
	fmt.Fprintf(&b, "  Price:     %s/month\n", formatPrice(p.Price))
	fmt.Fprintf(&b, "  Bedrooms:  %d\n", p.Bedrooms)
	fmt.Fprintf(&b, "  Bathrooms: %d\n", p.Bathrooms)
	fmt.Fprintf(&b, "  Area:      %g m²\n", p.Area)
	if p.Image != "" {
		fmt.Fprintf(&b, "  Image:     %s\n", p.Image)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "  %s\n", p.Description)
	}
	if !p.Active {
		b.WriteString("  (inactive)\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
