package catalog

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/realty/internal/common"
	"golang.org/x/text/cases"
)

// PriceBand is one of the fixed monthly price ranges offered as a filter.
type PriceBand string

const (
	BandAll    PriceBand = "all"
	BandLow    PriceBand = "low"
	BandMedium PriceBand = "medium"
	BandHigh   PriceBand = "high"
)

// Band bounds. low is price <= LowBandMax, medium is LowBandMax < price <=
// MediumBandMax and high is everything above.
const (
	LowBandMax    = 1500
	MediumBandMax = 3000
)

var PriceBands = []PriceBand{BandLow, BandMedium, BandHigh}

// CategoryAll in Criteria.Category disables the category restriction.
const CategoryAll = "all"

// ParseBand accepts "", "all", "low", "medium" and "high" in any case.
// The empty string means all.
func ParseBand(s string) (PriceBand, error) {
	switch b := PriceBand(strings.ToLower(strings.TrimSpace(s))); b {
	case "", BandAll:
		return BandAll, nil
	case BandLow, BandMedium, BandHigh:
		return b, nil
	default:
		return "", fmt.Errorf("%w: unknown price band %q", common.ErrorValidation, s)
	}
}

// BandOf returns the band price falls into.
func BandOf(price float64) PriceBand {
	switch {
	case price <= LowBandMax:
		return BandLow
	case price <= MediumBandMax:
		return BandMedium
	default:
		return BandHigh
	}
}

// Contains reports whether price is inside b. BandAll contains everything.
func (b PriceBand) Contains(price float64) bool {
	if b == "" || b == BandAll {
		return true
	}
	return BandOf(price) == b
}

// Criteria are the inputs of Filter besides the catalog itself.
type Criteria struct {
	Search   string
	Category string
	Band     PriceBand
	Admin    bool
}

// Filter returns the listings of props that pass every criterion, in their
// original order. Anonymous viewers only see active listings. The search
// term is matched verbatim, surrounding blanks included, as a
// case-insensitive substring of title or location. props is not modified.
func Filter(props []Property, c Criteria) []Property {
	fold := cases.Fold()
	term := fold.String(c.Search)
	category := strings.TrimSpace(c.Category)
	if category == CategoryAll {
		category = ""
	}

	out := make([]Property, 0, len(props))
	for _, p := range props {
		if !c.Admin && !p.Active {
			continue
		}
		if term != "" &&
			!strings.Contains(fold.String(p.Title), term) &&
			!strings.Contains(fold.String(p.Location), term) {
			continue
		}
		if category != "" && string(p.Category) != category {
			continue
		}
		if !c.Band.Contains(p.Price) {
			continue
		}
		out = append(out, p)
	}
	return out
}
