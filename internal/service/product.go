package service

import (
	"context"

	"roofbox-backend/internal/domain"
	"roofbox-backend/internal/repository"
)

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.ListActive(ctx)
}

// GetProduct hides inactive products from the public catalog.
func (s *productService) GetProduct(ctx context.Context, slug string) (*domain.Product, error) {
	p, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
