package services

import (
	"resortshare/internal/domain"
	"resortshare/internal/repos"
)

type CatalogService struct {
	Resorts *repos.ResortRepo
	Reviews *repos.ReviewRepo
}

func NewCatalogService(resorts *repos.ResortRepo, reviews *repos.ReviewRepo) *CatalogService {
	return &CatalogService{Resorts: resorts, Reviews: reviews}
}

func (s *CatalogService) ListResorts() ([]domain.Resort, error) { return s.Resorts.List() }

func (s *CatalogService) GetResort(id string) (domain.Resort, error) { return s.Resorts.Get(id) }

func (s *CatalogService) ResortsByDestination(destination string) ([]domain.Resort, error) {
	return s.Resorts.ByDestination(destination)
}

func (s *CatalogService) NewAvailabilityResorts() ([]domain.Resort, error) {
	return s.Resorts.NewAvailability()
}

func (s *CatalogService) TopResorts() ([]domain.Resort, error) { return s.Resorts.Top(6) }

func (s *CatalogService) SearchResorts(q string) ([]domain.Resort, error) {
	return s.Resorts.Search(q)
}

func (s *CatalogService) ReviewsByResort(resortID string) ([]domain.Review, error) {
	return s.Reviews.ByResort(resortID)
}

func (s *CatalogService) CreateReview(in domain.Review) (domain.Review, error) {
	return s.Reviews.Create(in)
}
