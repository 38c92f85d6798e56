package inventory

import (
	"context"
	"log"

	"resortshare/internal/domain"
)

// FallbackProvider wraps a live provider and substitutes a fixed sample data
// set, filtered the same way, when the wrapped fetch fails. It exists so
// development environments stay exercisable without live network access;
// production registrations never carry it, and every substitution is logged.
type FallbackProvider struct {
	wrapped Provider
	samples []ExternalListing
}

func WithFallback(p Provider, samples []ExternalListing) *FallbackProvider {
	return &FallbackProvider{wrapped: p, samples: samples}
}

func (f *FallbackProvider) Name() string { return f.wrapped.Name() }

func (f *FallbackProvider) Authenticate(ctx context.Context, credentials map[string]string) (bool, error) {
	return f.wrapped.Authenticate(ctx, credentials)
}

func (f *FallbackProvider) FetchInventory(ctx context.Context, filters *Filters) ([]ExternalListing, error) {
	listings, err := f.wrapped.FetchInventory(ctx, filters)
	if err == nil {
		return listings, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	log.Printf("[inventory] %s fetch failed (%v), serving %d sample listings", f.wrapped.Name(), err, len(f.samples))
	return ApplyFilters(f.samples, filters), nil
}

func (f *FallbackProvider) TransformListing(l ExternalListing) (domain.InsertResort, error) {
	return f.wrapped.TransformListing(l)
}

// SampleListings is the development data set served by FallbackProvider.
func SampleListings() []ExternalListing {
	return []ExternalListing{
		{
			ID:           "rw-001",
			Name:         "Ocean View Resort & Spa",
			Location:     "Maui, Hawaii",
			Destination:  "Hawaii",
			Description:  "Luxurious oceanfront resort with world-class amenities and stunning sunset views.",
			Images:       []string{"https://images.unsplash.com/photo-1571003123894-1f0594d2b5d9?w=800"},
			Amenities:    []string{"Ocean View", "Spa", "Pool", "Restaurant", "WiFi", "Gym"},
			Rating:       4.8,
			ReviewCount:  156,
			Price:        &PriceRange{Min: 350, Max: 650, Currency: "USD"},
			Availability: &Availability{Count: 3, IsNew: true},
		},
		{
			ID:           "rw-002",
			Name:         "Mountain Lodge Retreat",
			Location:     "Aspen, Colorado",
			Destination:  "Colorado",
			Description:  "Cozy mountain retreat perfect for skiing and outdoor adventures.",
			Images:       []string{"https://images.unsplash.com/photo-1551882547-ff40c63fe5fa?w=800"},
			Amenities:    []string{"Mountain View", "Ski Access", "Fireplace", "Hot Tub", "WiFi"},
			Rating:       4.6,
			ReviewCount:  89,
			Price:        &PriceRange{Min: 280, Max: 480, Currency: "USD"},
			Availability: &Availability{Count: 2, IsNew: false},
		},
		{
			ID:           "rw-003",
			Name:         "Tropical Paradise Resort",
			Location:     "Key West, Florida",
			Destination:  "Florida",
			Description:  "Experience paradise at this tropical resort with pristine beaches and crystal clear waters.",
			Images:       []string{"https://images.unsplash.com/photo-1520250497591-112f2f40a3f4?w=800"},
			Amenities:    []string{"Beachfront", "Pool", "Water Sports", "Restaurant", "Bar", "WiFi"},
			Rating:       4.7,
			ReviewCount:  203,
			Price:        &PriceRange{Min: 300, Max: 500, Currency: "USD"},
			Availability: &Availability{Count: 5, IsNew: true},
		},
	}
}
