// Package catalog is the listing core shared by the server and the CLI:
// the property model, the pure filter over it, an in-memory Store that
// mirrors a remote Collection and a Gateway that forwards mutations to the
// collection and reloads the store afterwards.
package catalog

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/realty/internal/common"
)

// Category classifies a listing. The set is open: any non-empty value is
// accepted, KnownCategories are the ones offered in forms and filters.
type Category string

const (
	CategoryApartment  Category = "Apartment"
	CategoryHouse      Category = "House"
	CategoryPenthouse  Category = "Penthouse"
	CategoryStudio     Category = "Studio"
	CategoryCommercial Category = "Commercial"
)

var KnownCategories = []Category{
	CategoryApartment,
	CategoryHouse,
	CategoryPenthouse,
	CategoryStudio,
	CategoryCommercial,
}

// Draft holds every field of a listing the admin can edit. It is what gets
// submitted on insert and update.
type Draft struct {
	Title       string   `json:"title"`
	Category    Category `json:"type"`
	Price       float64  `json:"price"`
	Location    string   `json:"location"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	Area        float64  `json:"area"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Active      bool     `json:"active"`
}

// Property is a stored listing. ID and timestamps are assigned by the
// collection.
type Property struct {
	ID int64 `json:"id"`
	Draft
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDraft returns the values a blank listing form starts with.
func NewDraft() Draft {
	return Draft{
		Category:  CategoryApartment,
		Bedrooms:  1,
		Bathrooms: 1,
		Active:    true,
	}
}

// Validate checks the field constraints of a listing. The returned error
// wraps common.ErrorValidation.
func (d Draft) Validate() error {
	var problems []string

	if strings.TrimSpace(d.Title) == "" {
		problems = append(problems, "title is required")
	}
	if strings.TrimSpace(string(d.Category)) == "" {
		problems = append(problems, "type is required")
	}
	if d.Price < 0 {
		problems = append(problems, "price must not be negative")
	}
	if d.Bedrooms < 0 {
		problems = append(problems, "bedrooms must not be negative")
	}
	if d.Bathrooms < 1 {
		problems = append(problems, "bathrooms must be at least 1")
	}
	if d.Area < 0 {
		problems = append(problems, "area must not be negative")
	}
	if d.Image != "" {
		if u, err := url.Parse(d.Image); err != nil || !u.IsAbs() {
			problems = append(problems, "image must be an absolute URI")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", common.ErrorValidation, strings.Join(problems, "; "))
	}
	return nil
}
