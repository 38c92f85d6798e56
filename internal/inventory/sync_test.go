package inventory_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"resortshare/internal/domain"
	"resortshare/internal/inventory"
)

// fakeProvider is a deterministic in-memory provider. Listings whose ID has
// the "bad-" prefix fail transformation.
type fakeProvider struct {
	name     string
	listings []inventory.ExternalListing
	fetchErr error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Authenticate(ctx context.Context, credentials map[string]string) (bool, error) {
	return credentials["apiKey"] != "", nil
}

func (f *fakeProvider) FetchInventory(ctx context.Context, filters *inventory.Filters) ([]inventory.ExternalListing, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return inventory.ApplyFilters(f.listings, filters), nil
}

func (f *fakeProvider) TransformListing(l inventory.ExternalListing) (domain.InsertResort, error) {
	if strings.HasPrefix(l.ID, "bad-") {
		return domain.InsertResort{}, errors.New("missing name")
	}
	return domain.InsertResort{
		Name:        l.Name,
		Location:    l.Location,
		Destination: l.Destination,
		Rating:      "4.0",
		Amenities:   []string{},
	}, nil
}

func listing(id, name string, min, max int) inventory.ExternalListing {
	return inventory.ExternalListing{
		ID:    id,
		Name:  name,
		Price: &inventory.PriceRange{Min: min, Max: max},
	}
}

func newService(p inventory.Provider) *inventory.Service {
	reg := inventory.NewRegistry()
	reg.Register(p)
	return inventory.NewService(reg)
}

func echoPersist(calls *[][]domain.InsertResort) inventory.PersistFunc {
	return func(ctx context.Context, batch []domain.InsertResort) ([]domain.Resort, error) {
		if calls != nil {
			*calls = append(*calls, batch)
		}
		out := make([]domain.Resort, len(batch))
		for i, b := range batch {
			out[i] = domain.Resort{ID: b.Name, Name: b.Name}
		}
		return out, nil
	}
}

func TestSyncUnknownProvider(t *testing.T) {
	svc := newService(&fakeProvider{name: "Acme"})
	if _, err := svc.Sync(context.Background(), "Nope", nil, nil); !errors.Is(err, inventory.ErrProviderNotFound) {
		t.Fatalf("want ErrProviderNotFound, got %v", err)
	}
	if _, err := svc.AuthenticateProvider(context.Background(), "Nope", nil); !errors.Is(err, inventory.ErrProviderNotFound) {
		t.Fatalf("want ErrProviderNotFound, got %v", err)
	}
}

func TestSyncFetchFailureIsCapturedNotPropagated(t *testing.T) {
	svc := newService(&fakeProvider{name: "Acme", fetchErr: errors.New("connection refused")})

	res, err := svc.Sync(context.Background(), "Acme", nil, echoPersist(nil))
	if err != nil {
		t.Fatalf("fetch failure must not propagate: %v", err)
	}
	if res.Total != 0 || res.Imported != 0 {
		t.Fatalf("want zero counts, got total=%d imported=%d", res.Total, res.Imported)
	}
	if len(res.Errors) != 1 || res.Errors[0].ListingID != "sync-process" {
		t.Fatalf("want one sync-process error, got %+v", res.Errors)
	}
	if !strings.Contains(res.Errors[0].Message, "connection refused") {
		t.Fatalf("error message should carry the cause: %q", res.Errors[0].Message)
	}
}

func TestSyncPartialTransformFailureIsolated(t *testing.T) {
	p := &fakeProvider{name: "Acme", listings: []inventory.ExternalListing{
		listing("ok-1", "First", 100, 200),
		listing("bad-2", "Second", 100, 200),
		listing("ok-3", "Third", 100, 200),
	}}
	svc := newService(p)

	var calls [][]domain.InsertResort
	res, err := svc.Sync(context.Background(), "Acme", nil, echoPersist(&calls))
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 3 {
		t.Fatalf("want total=3, got %d", res.Total)
	}
	if len(res.Errors) != 1 || res.Errors[0].ListingID != "bad-2" {
		t.Fatalf("want one error keyed bad-2, got %+v", res.Errors)
	}
	if !strings.HasPrefix(res.Errors[0].Message, "Transformation failed:") {
		t.Fatalf("unexpected message %q", res.Errors[0].Message)
	}
	if res.Imported != 2 {
		t.Fatalf("want imported=2, got %d", res.Imported)
	}
	if len(calls) != 1 || len(calls[0]) != 2 {
		t.Fatalf("persist should receive exactly the 2 good items, got %+v", calls)
	}
	if calls[0][0].Name != "First" || calls[0][1].Name != "Third" {
		t.Fatalf("wrong batch contents: %+v", calls[0])
	}
}

func TestSyncPreviewHasNoSideEffects(t *testing.T) {
	p := &fakeProvider{name: "Acme", listings: []inventory.ExternalListing{
		listing("ok-1", "First", 100, 200),
		listing("ok-2", "Second", 300, 400),
	}}
	svc := newService(p)

	r1, err := svc.Sync(context.Background(), "Acme", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := svc.Sync(context.Background(), "Acme", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range []*inventory.SyncResult{r1, r2} {
		if r.Total != 2 || r.Imported != 0 || len(r.Errors) != 0 {
			t.Fatalf("preview should be total=2 imported=0 no errors, got %+v", r)
		}
	}
}

func TestSyncPersistFailureBulkSave(t *testing.T) {
	p := &fakeProvider{name: "Acme", listings: []inventory.ExternalListing{
		listing("ok-1", "First", 100, 200),
		listing("ok-2", "Second", 300, 400),
	}}
	svc := newService(p)

	persist := func(ctx context.Context, batch []domain.InsertResort) ([]domain.Resort, error) {
		return nil, errors.New("disk full")
	}
	res, err := svc.Sync(context.Background(), "Acme", nil, persist)
	if err != nil {
		t.Fatalf("persist failure must not propagate: %v", err)
	}
	if res.Total != 2 || res.Imported != 0 {
		t.Fatalf("want total=2 imported=0, got total=%d imported=%d", res.Total, res.Imported)
	}
	if len(res.Errors) != 1 || res.Errors[0].ListingID != "bulk-save" {
		t.Fatalf("want one bulk-save error, got %+v", res.Errors)
	}
	if !strings.Contains(res.Errors[0].Message, "disk full") {
		t.Fatalf("error message should carry the cause: %q", res.Errors[0].Message)
	}
}

func TestSyncTrustsPersistCount(t *testing.T) {
	p := &fakeProvider{name: "Acme", listings: []inventory.ExternalListing{
		listing("ok-1", "First", 100, 200),
		listing("ok-2", "Second", 300, 400),
	}}
	svc := newService(p)

	// A callback that deduplicates everything: empty result is not an error.
	persist := func(ctx context.Context, batch []domain.InsertResort) ([]domain.Resort, error) {
		return []domain.Resort{}, nil
	}
	res, err := svc.Sync(context.Background(), "Acme", nil, persist)
	if err != nil {
		t.Fatal(err)
	}
	if res.Imported != 0 || len(res.Errors) != 0 {
		t.Fatalf("empty persist result is a valid outcome, got %+v", res)
	}
}

func TestSyncEmptyFetchIsSuccess(t *testing.T) {
	svc := newService(&fakeProvider{name: "Acme"})
	res, err := svc.Sync(context.Background(), "Acme", nil, echoPersist(nil))
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 0 || res.Imported != 0 || len(res.Errors) != 0 {
		t.Fatalf("empty fetch should be all-zero success, got %+v", res)
	}
}

func TestSyncPriceFilterEndToEnd(t *testing.T) {
	p := &fakeProvider{name: "Acme", listings: []inventory.ExternalListing{
		listing("low", "Budget Stay", 100, 400),
		listing("high", "Luxury Stay", 500, 900),
	}}
	svc := newService(p)

	var calls [][]domain.InsertResort
	res, err := svc.Sync(context.Background(), "Acme", &inventory.Filters{PriceMin: 450}, echoPersist(&calls))
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 1 || len(res.Errors) != 0 {
		t.Fatalf("want total=1 no errors, got %+v", res)
	}
	if res.Imported != 1 {
		t.Fatalf("want imported=1, got %d", res.Imported)
	}
	if len(calls) != 1 || calls[0][0].Name != "Luxury Stay" {
		t.Fatalf("wrong listing passed the filter: %+v", calls)
	}
}

func TestSyncLimitTruncatesTotal(t *testing.T) {
	p := &fakeProvider{name: "Acme", listings: []inventory.ExternalListing{
		listing("a", "A", 100, 200),
		listing("b", "B", 100, 200),
		listing("c", "C", 100, 200),
	}}
	svc := newService(p)

	res, err := svc.Sync(context.Background(), "Acme", &inventory.Filters{Limit: 2}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 2 {
		t.Fatalf("total must reflect the truncated fetch, got %d", res.Total)
	}
}

func TestSyncRecordsHistory(t *testing.T) {
	svc := newService(&fakeProvider{name: "Acme", listings: []inventory.ExternalListing{
		listing("a", "A", 100, 200),
	}})

	if _, err := svc.Sync(context.Background(), "Acme", nil, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Sync(context.Background(), "Acme", nil, nil); err != nil {
		t.Fatal(err)
	}
	h := svc.Recent(10)
	if len(h) != 2 {
		t.Fatalf("want 2 history entries, got %d", len(h))
	}
	if h[0].Provider != "Acme" {
		t.Fatalf("unexpected provider %q", h[0].Provider)
	}
}
