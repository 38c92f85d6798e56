package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"resortshare/internal/domain"
	"resortshare/internal/repos"
)

type ListingService struct {
	Listings *repos.ListingRepo
}

func NewListingService(listings *repos.ListingRepo) *ListingService {
	return &ListingService{Listings: listings}
}

func (s *ListingService) Create(in domain.Listing) (domain.Listing, error) {
	return s.Listings.Create(in)
}

func (s *ListingService) ByOwner(ownerID string) ([]domain.Listing, error) {
	return s.Listings.ByOwner(ownerID)
}

func (s *ListingService) AttachContract(id, contractURL string) (domain.Listing, error) {
	return s.Listings.AttachContract(id, contractURL)
}

// InitiateEscrow opens a mock escrow account for a sale listing. Real
// integration with the escrow service is pending; the generated account id
// keeps the flow testable end to end.
func (s *ListingService) InitiateEscrow(id string, salePrice int) (domain.Listing, string, error) {
	escrowID := fmt.Sprintf("escrow_%d_%s", time.Now().Unix(), uuid.NewString()[:8])
	l, err := s.Listings.InitiateEscrow(id, escrowID, salePrice)
	if err != nil {
		return domain.Listing{}, "", err
	}
	return l, escrowID, nil
}
