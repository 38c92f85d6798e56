package inventory_test

import (
	"context"
	"errors"
	"testing"

	"resortshare/internal/inventory"
)

func TestFallbackSubstitutesSamplesOnFetchError(t *testing.T) {
	broken := &fakeProvider{name: "RedWeek", fetchErr: errors.New("dial tcp: connection refused")}
	p := inventory.WithFallback(broken, inventory.SampleListings())

	listings, err := p.FetchInventory(context.Background(), nil)
	if err != nil {
		t.Fatalf("fallback should swallow the fetch error: %v", err)
	}
	if len(listings) != 3 {
		t.Fatalf("want the 3 sample listings, got %d", len(listings))
	}
}

func TestFallbackAppliesFiltersToSamples(t *testing.T) {
	broken := &fakeProvider{name: "RedWeek", fetchErr: errors.New("boom")}
	p := inventory.WithFallback(broken, inventory.SampleListings())

	listings, err := p.FetchInventory(context.Background(), &inventory.Filters{Destination: "hawaii"})
	if err != nil {
		t.Fatal(err)
	}
	if len(listings) != 1 || listings[0].ID != "rw-001" {
		t.Fatalf("samples must go through the same filters, got %+v", listings)
	}
}

func TestFallbackPassesThroughOnSuccess(t *testing.T) {
	live := &fakeProvider{name: "RedWeek", listings: []inventory.ExternalListing{
		listing("live-1", "Live", 100, 200),
	}}
	p := inventory.WithFallback(live, inventory.SampleListings())

	listings, err := p.FetchInventory(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(listings) != 1 || listings[0].ID != "live-1" {
		t.Fatalf("successful fetch must not be substituted, got %+v", listings)
	}
}

func TestFallbackRespectsCancelledContext(t *testing.T) {
	broken := &fakeProvider{name: "RedWeek", fetchErr: context.Canceled}
	p := inventory.WithFallback(broken, inventory.SampleListings())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.FetchInventory(ctx, nil); err == nil {
		t.Fatal("a cancelled context must not be papered over with samples")
	}
}

func TestFallbackKeepsWrappedIdentity(t *testing.T) {
	wrapped := &fakeProvider{name: "RedWeek"}
	p := inventory.WithFallback(wrapped, nil)
	if p.Name() != "RedWeek" {
		t.Fatalf("name %q", p.Name())
	}

	r, err := p.TransformListing(listing("x", "X", 100, 200))
	if err != nil {
		t.Fatal(err)
	}
	if r.Name != "X" {
		t.Fatalf("transform must delegate to the wrapped provider, got %+v", r)
	}
}
