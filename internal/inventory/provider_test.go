package inventory_test

import (
	"testing"

	"resortshare/internal/inventory"
)

func TestApplyFiltersPriceOverlap(t *testing.T) {
	listings := []inventory.ExternalListing{
		listing("a", "A", 100, 400),
		listing("b", "B", 500, 900),
		listing("c", "C", 390, 520),
	}

	cases := []struct {
		name    string
		filters inventory.Filters
		want    []string
	}{
		{"min only", inventory.Filters{PriceMin: 450}, []string{"b", "c"}},
		{"max only", inventory.Filters{PriceMax: 450}, []string{"a", "c"}},
		{"band", inventory.Filters{PriceMin: 410, PriceMax: 490}, []string{"c"}},
		{"wide band", inventory.Filters{PriceMin: 410, PriceMax: 550}, []string{"b", "c"}},
		{"no bounds", inventory.Filters{}, []string{"a", "b", "c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.ApplyFilters(listings, &tc.filters)
			if len(got) != len(tc.want) {
				t.Fatalf("want %v, got %+v", tc.want, got)
			}
			for i, id := range tc.want {
				if got[i].ID != id {
					t.Fatalf("want %v, got %+v", tc.want, got)
				}
			}
		})
	}
}

func TestApplyFiltersMissingPriceRange(t *testing.T) {
	// A listing without a price range behaves as a zero range; any positive
	// lower bound excludes it.
	noPrices := []inventory.ExternalListing{{ID: "x", Name: "X"}}
	if got := inventory.ApplyFilters(noPrices, &inventory.Filters{PriceMin: 1}); len(got) != 0 {
		t.Fatalf("zero-range listing should fail a min bound, got %+v", got)
	}
	if got := inventory.ApplyFilters(noPrices, &inventory.Filters{PriceMax: 100}); len(got) != 1 {
		t.Fatalf("zero-range listing should pass a max bound, got %+v", got)
	}
}

func TestApplyFiltersDestination(t *testing.T) {
	listings := []inventory.ExternalListing{
		{ID: "hi", Name: "A", Destination: "Hawaii", Location: "Maui, Hawaii"},
		{ID: "co", Name: "B", Destination: "Colorado", Location: "Aspen, Colorado"},
		{ID: "fl", Name: "C", Destination: "", Location: "Key West, Florida"},
	}

	got := inventory.ApplyFilters(listings, &inventory.Filters{Destination: "hawa"})
	if len(got) != 1 || got[0].ID != "hi" {
		t.Fatalf("case-insensitive substring match failed: %+v", got)
	}
	// Location is consulted when destination does not match.
	got = inventory.ApplyFilters(listings, &inventory.Filters{Destination: "florida"})
	if len(got) != 1 || got[0].ID != "fl" {
		t.Fatalf("location fallback match failed: %+v", got)
	}
}

func TestApplyFiltersLimitAfterFiltering(t *testing.T) {
	listings := []inventory.ExternalListing{
		listing("a", "A", 100, 200),
		listing("b", "B", 500, 900),
		listing("c", "C", 500, 900),
		listing("d", "D", 500, 900),
	}
	got := inventory.ApplyFilters(listings, &inventory.Filters{PriceMin: 450, Limit: 2})
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "c" {
		t.Fatalf("limit should truncate the filtered set in order, got %+v", got)
	}
}
