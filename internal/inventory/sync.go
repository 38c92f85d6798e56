package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resortshare/internal/domain"
)

// ErrProviderNotFound reports a sync or authenticate call against a name with
// no registered provider.
var ErrProviderNotFound = errors.New("provider not found")

// PersistFunc commits a transformed batch to the catalog and returns the
// records actually created (same or fewer than submitted). A nil PersistFunc
// puts Sync into preview mode: fetch and transform run, nothing is written.
type PersistFunc func(ctx context.Context, batch []domain.InsertResort) ([]domain.Resort, error)

// SyncError is one captured failure. ListingID is the provider-native id, or
// a sentinel ("bulk-save", "sync-process") when the failure is not
// attributable to a single item.
type SyncError struct {
	ListingID string `json:"listingId"`
	Message   string `json:"error"`
	Data      any    `json:"data,omitempty"`
}

// SyncResult is the outcome of one Sync invocation. Timestamp is capture
// time, set once when processing starts. Imported is the count the persist
// callback reported; zero in preview mode or when persistence failed.
type SyncResult struct {
	Provider  string      `json:"provider"`
	Timestamp time.Time   `json:"timestamp"`
	Total     int         `json:"total"`
	Imported  int         `json:"imported"`
	Errors    []SyncError `json:"errors"`
}

// Service runs the fetch/transform/persist pipeline over registered
// providers and tracks outcomes in an in-process history.
type Service struct {
	registry *Registry
	history  *History
}

func NewService(registry *Registry) *Service {
	return &Service{registry: registry, history: NewHistory()}
}

func (s *Service) Providers() []string { return s.registry.Names() }

func (s *Service) AuthenticateProvider(ctx context.Context, name string, credentials map[string]string) (bool, error) {
	p, ok := s.registry.Get(name)
	if !ok {
		return false, fmt.Errorf("%s: %w", name, ErrProviderNotFound)
	}
	return p.Authenticate(ctx, credentials)
}

// Sync fetches listings from the named provider, transforms each one, and
// persists the batch when a callback is supplied. An unknown provider name is
// the only error that propagates; every other failure is captured into the
// returned result.
func (s *Service) Sync(ctx context.Context, providerName string, filters *Filters, persist PersistFunc) (*SyncResult, error) {
	provider, ok := s.registry.Get(providerName)
	if !ok {
		return nil, fmt.Errorf("%s: %w", providerName, ErrProviderNotFound)
	}

	result := &SyncResult{
		Provider:  providerName,
		Timestamp: time.Now(),
		Errors:    []SyncError{},
	}

	listings, err := provider.FetchInventory(ctx, filters)
	if err != nil {
		result.Errors = append(result.Errors, SyncError{
			ListingID: "sync-process",
			Message:   fmt.Sprintf("Sync failed: %s", err.Error()),
		})
		s.history.Record(*result)
		return result, nil
	}
	result.Total = len(listings)

	transformed := make([]domain.InsertResort, 0, len(listings))
	for _, listing := range listings {
		resort, terr := provider.TransformListing(listing)
		if terr != nil {
			result.Errors = append(result.Errors, SyncError{
				ListingID: listing.ID,
				Message:   fmt.Sprintf("Transformation failed: %s", terr.Error()),
				Data:      listing,
			})
			continue
		}
		transformed = append(transformed, resort)
	}

	if persist != nil && len(transformed) > 0 {
		saved, perr := persist(ctx, transformed)
		if perr != nil {
			result.Errors = append(result.Errors, SyncError{
				ListingID: "bulk-save",
				Message:   fmt.Sprintf("Storage save failed: %s", perr.Error()),
				Data:      transformed,
			})
		} else {
			result.Imported = len(saved)
		}
	}

	s.history.Record(*result)
	return result, nil
}

// Recent returns up to limit past sync results, most recent first.
func (s *Service) Recent(limit int) []SyncResult { return s.history.Recent(limit) }
