package handlers

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"resortshare/internal/config"
	"resortshare/internal/domain"
	"resortshare/internal/inventory"
	"resortshare/internal/objectstore"
	"resortshare/internal/repos"
	"resortshare/internal/services"
)

type Deps struct {
	ResortHandler    *ResortHandler
	ReviewHandler    *ReviewHandler
	BookingHandler   *BookingHandler
	ListingHandler   *ListingHandler
	InquiryHandler   *InquiryHandler
	AdminHandler     *AdminHandler
	InventoryHandler *InventoryHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService, inv *inventory.Service, store objectstore.Store) *Deps {
	resortRepo := repos.NewResortRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	bookingRepo := repos.NewBookingRepo(db)
	listingRepo := repos.NewListingRepo(db)
	settingRepo := repos.NewSettingRepo(db)
	inquiryRepo := repos.NewInquiryRepo(db)

	catalogSvc := services.NewCatalogService(resortRepo, reviewRepo)
	listingSvc := services.NewListingService(listingRepo)

	// Commit-mode persistence target for inventory syncs.
	persist := func(ctx context.Context, batch []domain.InsertResort) ([]domain.Resort, error) {
		return resortRepo.CreateBulk(batch)
	}

	return &Deps{
		ResortHandler:    &ResortHandler{Catalog: catalogSvc, Resorts: resortRepo},
		ReviewHandler:    &ReviewHandler{Catalog: catalogSvc},
		BookingHandler:   &BookingHandler{Bookings: bookingRepo},
		ListingHandler:   &ListingHandler{Listings: listingSvc, Store: store},
		InquiryHandler:   &InquiryHandler{Inquiries: inquiryRepo},
		AdminHandler:     &AdminHandler{Users: auth.Users, Resorts: resortRepo, Settings: settingRepo, Inquiries: inquiryRepo},
		InventoryHandler: &InventoryHandler{Inv: inv, Persist: persist},
	}
}

func isNotFound(err error) bool { return errors.Is(err, repos.ErrNotFound) }
