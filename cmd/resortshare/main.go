package main

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"resortshare/internal/config"
	"resortshare/internal/domain"
	"resortshare/internal/http/handlers"
	"resortshare/internal/inventory"
	applog "resortshare/internal/log"
	"resortshare/internal/objectstore"
	"resortshare/internal/repos"
	"resortshare/internal/scheduler"
	"resortshare/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Inventory providers
	registry := inventory.NewRegistry()
	redweek := inventory.NewRedWeekProvider(cfg.RedWeekBaseURL, cfg.RedWeekRPM)
	if cfg.Env == "development" {
		// Development keeps working without provider access; substitutions are logged.
		registry.Register(inventory.WithFallback(redweek, inventory.SampleListings()))
	} else {
		registry.Register(redweek)
	}
	invSvc := inventory.NewService(registry)
	if cfg.RedWeekAPIKey != "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			ok, err := invSvc.AuthenticateProvider(ctx, redweek.Name(), map[string]string{"apiKey": cfg.RedWeekAPIKey})
			if err != nil || !ok {
				log.Printf("[inventory] RedWeek authentication failed: ok=%v err=%v", ok, err)
				return
			}
			log.Println("[inventory] RedWeek authenticated")
		}()
	}

	store, err := objectstore.NewLocalStore(cfg.MediaDir)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and return a generic message; never leak internals
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Something went wrong. Please try again.",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 5 << 20 // 5 MiB; contract PDFs go through here

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/contracts/")
		},
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc, invSvc, store)

	api := app.Group("/api")

	// Resorts
	api.Get("/resorts", deps.ResortHandler.List)
	api.Get("/resorts/top", deps.ResortHandler.Top)
	api.Get("/resorts/new-availability", deps.ResortHandler.NewAvailability)
	api.Get("/resorts/search", deps.ResortHandler.Search)
	api.Get("/resorts/destination/:destination", deps.ResortHandler.ByDestination)
	api.Get("/resorts/:id", deps.ResortHandler.Get)
	api.Get("/resorts/:id/reviews", deps.ReviewHandler.ByResort)
	api.Post("/reviews", handlers.RequireAuth(authSvc), deps.ReviewHandler.Create)

	// Users & sessions (login throttled)
	api.Post("/users/register", authH.Register)
	api.Post("/users/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": "Too many attempts. Please try again later."})
		},
	}), authH.Login)
	api.Post("/users/logout", authH.Logout)
	api.Get("/users/me", handlers.RequireAuth(authSvc), authH.Me)

	// Bookings & listings
	api.Post("/bookings", handlers.RequireAuth(authSvc), deps.BookingHandler.Create)
	api.Get("/users/:id/bookings", handlers.RequireAuth(authSvc), deps.BookingHandler.ByUser)
	api.Post("/listings", handlers.RequireAuth(authSvc), deps.ListingHandler.Create)
	api.Get("/users/:id/listings", deps.ListingHandler.ByOwner)
	api.Post("/listings/:id/contract", handlers.RequireAuth(authSvc), deps.ListingHandler.AttachContract)
	api.Post("/listings/:id/escrow", handlers.RequireAuth(authSvc), deps.ListingHandler.Escrow)
	api.Post("/contracts/upload", handlers.RequireAuth(authSvc), deps.ListingHandler.UploadContract)
	app.Get("/contracts/*", deps.ListingHandler.DownloadContract)

	// Property inquiries
	api.Post("/property-inquiries", deps.InquiryHandler.Create)

	// Admin
	admin := api.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/users", deps.AdminHandler.ListUsers)
	admin.Patch("/users/:id", deps.AdminHandler.UpdateUser)
	admin.Delete("/users/:id", deps.AdminHandler.DeleteUser)
	admin.Post("/resorts", deps.AdminHandler.CreateResort)
	admin.Patch("/resorts/:id", deps.AdminHandler.UpdateResort)
	admin.Delete("/resorts/:id", deps.AdminHandler.DeleteResort)
	admin.Get("/settings", deps.AdminHandler.GetSettings)
	admin.Get("/settings/:key", deps.AdminHandler.GetSetting)
	admin.Post("/settings", deps.AdminHandler.SetSetting)
	admin.Put("/settings/:key", deps.AdminHandler.SetSetting)
	admin.Delete("/settings/:key", deps.AdminHandler.DeleteSetting)
	admin.Get("/property-inquiries", deps.InquiryHandler.List)
	admin.Patch("/property-inquiries/:id", deps.InquiryHandler.Update)

	// Inventory sync (admin only)
	invAPI := api.Group("/inventory", handlers.RequireAdmin(authSvc))
	invAPI.Get("/providers", deps.InventoryHandler.Providers)
	invAPI.Post("/preview/:provider", deps.InventoryHandler.Preview)
	invAPI.Post("/sync/:provider", deps.InventoryHandler.Sync)
	invAPI.Post("/authenticate/:provider", deps.InventoryHandler.Authenticate)
	invAPI.Get("/history", deps.InventoryHandler.History)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Not found"})
	})

	// Optional background sync
	if cfg.SyncCron != "" {
		resortRepo := repos.NewResortRepo(db)
		persist := func(ctx context.Context, batch []domain.InsertResort) ([]domain.Resort, error) {
			return resortRepo.CreateBulk(batch)
		}
		var providers []string
		for _, p := range strings.Split(cfg.SyncProviders, ",") {
			if p = strings.TrimSpace(p); p != "" {
				providers = append(providers, p)
			}
		}
		sched := scheduler.New(invSvc, persist, providers, cfg.SyncCron)
		if err := sched.Start(context.Background()); err != nil {
			log.Fatal(err)
		}
		defer sched.Stop()
	}

	log.Fatal(app.Listen(":" + cfg.Port))
}
