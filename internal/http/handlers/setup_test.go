package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"resortshare/internal/config"
	"resortshare/internal/domain"
	"resortshare/internal/http/handlers"
	"resortshare/internal/inventory"
	"resortshare/internal/objectstore"
	"resortshare/internal/repos"
	"resortshare/internal/services"
)

// stubProvider serves a fixed listing set; "broken" makes fetch fail, authErr
// makes authentication fail, and ids with the "bad-" prefix fail
// transformation.
type stubProvider struct {
	listings []inventory.ExternalListing
	broken   bool
	authErr  error
}

func (s *stubProvider) Name() string { return "Stub" }

func (s *stubProvider) Authenticate(ctx context.Context, credentials map[string]string) (bool, error) {
	if s.authErr != nil {
		return false, s.authErr
	}
	return credentials["apiKey"] == "valid", nil
}

func (s *stubProvider) FetchInventory(ctx context.Context, filters *inventory.Filters) ([]inventory.ExternalListing, error) {
	if s.broken {
		return nil, errors.New("upstream unavailable")
	}
	return inventory.ApplyFilters(s.listings, filters), nil
}

func (s *stubProvider) TransformListing(l inventory.ExternalListing) (domain.InsertResort, error) {
	if len(l.ID) >= 4 && l.ID[:4] == "bad-" {
		return domain.InsertResort{}, errors.New("unusable listing")
	}
	return domain.InsertResort{
		Name:        l.Name,
		Location:    "Test Location",
		Destination: "Test Destination",
		Description: "Synced listing",
		ImageURL:    "https://example.test/img.jpg",
		Amenities:   []string{"Pool"},
		Rating:      "4.0",
		PriceMin:    100,
		PriceMax:    300,
	}, nil
}

func stubListings() []inventory.ExternalListing {
	return []inventory.ExternalListing{
		{ID: "s-1", Name: "Synced One", Price: &inventory.PriceRange{Min: 100, Max: 300}},
		{ID: "s-2", Name: "Synced Two", Price: &inventory.PriceRange{Min: 400, Max: 700}},
	}
}

// newTestApp wires the routes under test against an in-memory database.
// The stub provider is registered alongside nothing else, and two sessions
// are pre-bound: sid-admin (ADMIN) and sid-demo (USER).
func newTestApp(t *testing.T, provider inventory.Provider) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}
	if err := userRepo.BindSession("sid-admin", "u-admin"); err != nil {
		t.Fatal(err)
	}
	if err := userRepo.BindSession("sid-demo", "u-demo"); err != nil {
		t.Fatal(err)
	}

	registry := inventory.NewRegistry()
	if provider != nil {
		registry.Register(provider)
	}
	invSvc := inventory.NewService(registry)

	store, err := objectstore.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	app := fiber.New()
	deps := handlers.NewDeps(db, config.Config{}, authSvc, invSvc, store)

	api := app.Group("/api")
	api.Get("/resorts", deps.ResortHandler.List)
	api.Get("/resorts/search", deps.ResortHandler.Search)
	api.Get("/resorts/:id", deps.ResortHandler.Get)

	api.Post("/users/register", authH.Register)
	api.Post("/users/login", authH.Login)
	api.Post("/users/logout", authH.Logout)
	api.Get("/users/me", handlers.RequireAuth(authSvc), authH.Me)

	invAPI := api.Group("/inventory", handlers.RequireAdmin(authSvc))
	invAPI.Get("/providers", deps.InventoryHandler.Providers)
	invAPI.Post("/preview/:provider", deps.InventoryHandler.Preview)
	invAPI.Post("/sync/:provider", deps.InventoryHandler.Sync)
	invAPI.Post("/authenticate/:provider", deps.InventoryHandler.Authenticate)
	invAPI.Get("/history", deps.InventoryHandler.History)

	return app, db
}

func withSession(req *http.Request, sid string) *http.Request {
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	return req
}

func countResorts(t *testing.T, db *sqlx.DB) int {
	t.Helper()
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM resorts`); err != nil {
		t.Fatal(err)
	}
	return n
}
