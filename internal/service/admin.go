package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"roofbox-backend/internal/domain"
	"roofbox-backend/internal/logger"
	"roofbox-backend/internal/repository"
	"roofbox-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type adminService struct {
	productRepo repository.ProductRepository
	rentalRepo  repository.RentalRequestRepository
	contactRepo repository.ContactMessageRepository
	images      storage.ImageStore
}

func NewAdminService(
	productRepo repository.ProductRepository,
	rentalRepo repository.RentalRequestRepository,
	contactRepo repository.ContactMessageRepository,
	images storage.ImageStore,
) AdminService {
	return &adminService{
		productRepo: productRepo,
		rentalRepo:  rentalRepo,
		contactRepo: contactRepo,
		images:      images,
	}
}

func (s *adminService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.ListAll(ctx)
}

func (s *adminService) UpdateProductPrice(ctx context.Context, id uuid.UUID, pricePerDay decimal.Decimal) error {
	if !pricePerDay.IsPositive() {
		return domain.NewValidationError("pricePerDay", "Der Preis muss größer als 0 sein.")
	}
	// NUMERIC(10,2): more precision would be rounded silently by the database.
	if !pricePerDay.Equal(pricePerDay.Round(2)) {
		return domain.NewValidationError("pricePerDay", "Der Preis darf höchstens zwei Nachkommastellen haben.")
	}
	if err := s.productRepo.UpdatePrice(ctx, id, pricePerDay); err != nil {
		return fmt.Errorf("update product price: %w", err)
	}
	logger.Info("Product price updated", "productID", id, "pricePerDay", pricePerDay.String())
	return nil
}

// SetProductImage stores a new image and points the product at it. The
// previous file is left in place; stored requests never reference images.
func (s *adminService) SetProductImage(ctx context.Context, id uuid.UUID, contentType string, body io.Reader) (string, error) {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		return "", fmt.Errorf("load product: %w", err)
	}

	key, err := storage.NewImageKey(contentType)
	if err != nil {
		return "", domain.NewValidationError("contentType", "Nur JPEG, PNG, GIF oder WebP Bilder sind erlaubt.")
	}
	if err := s.images.SaveFile(ctx, key, body); err != nil {
		if errors.Is(err, storage.ErrFileTooLarge) {
			return "", domain.NewValidationError("image", "Das Bild ist zu groß.")
		}
		return "", fmt.Errorf("store product image: %w", err)
	}

	url := s.images.PublicURL(key)
	if err := s.productRepo.UpdateImageURL(ctx, id, url); err != nil {
		_ = s.images.DeleteFile(ctx, key)
		return "", fmt.Errorf("update product image: %w", err)
	}
	logger.Info("Product image updated", "productID", id, "key", key)
	return url, nil
}

func (s *adminService) ListRentalRequests(ctx context.Context, filter domain.RentalRequestFilter) ([]domain.RentalRequest, int32, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, domain.NewValidationError("status", "Ungültiger Status.")
	}
	return s.rentalRepo.List(ctx, filter)
}

// UpdateRentalRequestStatus allows any transition between known statuses. Last write wins.
func (s *adminService) UpdateRentalRequestStatus(ctx context.Context, id uuid.UUID, status domain.RentalStatus) error {
	if !status.Valid() {
		return domain.NewValidationError("status", "Ungültiger Status.")
	}
	if err := s.rentalRepo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update rental request status: %w", err)
	}
	logger.Info("Rental request status updated", "rentalID", id, "status", status)
	return nil
}

func (s *adminService) ListContactMessages(ctx context.Context, status domain.ContactStatus, page, pageSize int32) ([]domain.ContactMessage, int32, error) {
	if status != "" && !status.Valid() {
		return nil, 0, domain.NewValidationError("status", "Ungültiger Status.")
	}
	return s.contactRepo.List(ctx, status, page, pageSize)
}

func (s *adminService) UpdateContactMessageStatus(ctx context.Context, id uuid.UUID, status domain.ContactStatus) error {
	if !status.Valid() {
		return domain.NewValidationError("status", "Ungültiger Status.")
	}
	if err := s.contactRepo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update contact message status: %w", err)
	}
	return nil
}
