package inventory

import (
	"context"
	"strings"
	"time"

	"resortshare/internal/domain"
)

// Provider is one external inventory source. Implementations fetch raw
// listings under filter constraints and normalize them into the catalog's
// InsertResort shape. TransformListing must be total for any listing with a
// name; the sync service still guards against errors per item.
type Provider interface {
	Name() string
	Authenticate(ctx context.Context, credentials map[string]string) (bool, error)
	FetchInventory(ctx context.Context, filters *Filters) ([]ExternalListing, error)
	TransformListing(listing ExternalListing) (domain.InsertResort, error)
}

// Filters narrow a fetch. Zero values mean no constraint. Price bounds are an
// overlap test against the listing's own range, not a containment test.
type Filters struct {
	Destination string     `json:"destination,omitempty"`
	PriceMin    int        `json:"priceMin,omitempty"`
	PriceMax    int        `json:"priceMax,omitempty"`
	CheckIn     *time.Time `json:"checkIn,omitempty"`
	CheckOut    *time.Time `json:"checkOut,omitempty"`
	Limit       int        `json:"limit,omitempty"`
}

// ExternalListing is a provider's native representation of one rentable unit.
// ID is used only for error attribution and never persisted. Extra holds
// provider-specific fields that never outlive the transform step.
type ExternalListing struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Location     string         `json:"location,omitempty"`
	Destination  string         `json:"destination,omitempty"`
	Description  string         `json:"description,omitempty"`
	Images       []string       `json:"images,omitempty"`
	Amenities    []string       `json:"amenities,omitempty"`
	Rating       any            `json:"rating,omitempty"` // number or string, provider-dependent
	ReviewCount  int            `json:"reviewCount,omitempty"`
	Price        *PriceRange    `json:"price,omitempty"`
	Availability *Availability  `json:"availability,omitempty"`
	Extra        map[string]any `json:"-"`
}

type PriceRange struct {
	Min      int    `json:"min,omitempty"`
	Max      int    `json:"max,omitempty"`
	Currency string `json:"currency,omitempty"`
}

type Availability struct {
	Count int  `json:"count,omitempty"`
	IsNew bool `json:"isNew,omitempty"`
}

// ApplyFilters runs the standard provider-side filter semantics over a listing
// set: destination substring (case-insensitive, against destination then
// location), price-range overlap, then limit truncation.
func ApplyFilters(listings []ExternalListing, f *Filters) []ExternalListing {
	if f == nil {
		return listings
	}
	out := make([]ExternalListing, 0, len(listings))
	for _, l := range listings {
		if !matches(l, f) {
			continue
		}
		out = append(out, l)
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

func matches(l ExternalListing, f *Filters) bool {
	if f.Destination != "" {
		q := strings.ToLower(f.Destination)
		if !strings.Contains(strings.ToLower(l.Destination), q) &&
			!strings.Contains(strings.ToLower(l.Location), q) {
			return false
		}
	}
	if f.PriceMin > 0 || f.PriceMax > 0 {
		var min, max int
		if l.Price != nil {
			min, max = l.Price.Min, l.Price.Max
		}
		// Ranges must overlap, not nest.
		if f.PriceMin > 0 && max < f.PriceMin {
			return false
		}
		if f.PriceMax > 0 && min > f.PriceMax {
			return false
		}
	}
	return true
}
