package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roofbox-backend/internal/domain"
	"roofbox-backend/internal/logger"
	"roofbox-backend/internal/metrics"
	"roofbox-backend/internal/repository"
	"roofbox-backend/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MsgPrivacyRequired    = "Bitte akzeptieren Sie die Datenschutzerklärung."
	MsgInvalidDates       = "Bitte wählen Sie gültige Mietdaten."
	MsgStartInPast        = "Das Startdatum darf nicht in der Vergangenheit liegen."
	MsgProductUnavailable = "Das gewählte Produkt ist nicht verfügbar."
)

type bookingService struct {
	productRepo repository.ProductRepository
	rentalRepo  repository.RentalRequestRepository
	notifier    Notifier
	loc         *time.Location
	now         func() time.Time
}

func NewBookingService(productRepo repository.ProductRepository, rentalRepo repository.RentalRequestRepository, notifier Notifier, loc *time.Location) BookingService {
	return NewBookingServiceWithClock(productRepo, rentalRepo, notifier, loc, time.Now)
}

// NewBookingServiceWithClock is NewBookingService with an injectable clock
// for the "start date not in the past" check.
func NewBookingServiceWithClock(productRepo repository.ProductRepository, rentalRepo repository.RentalRequestRepository, notifier Notifier, loc *time.Location, now func() time.Time) BookingService {
	if loc == nil {
		loc = time.UTC
	}
	return &bookingService{
		productRepo: productRepo,
		rentalRepo:  rentalRepo,
		notifier:    notifier,
		loc:         loc,
		now:         now,
	}
}

func (s *bookingService) Quote(ctx context.Context, productID uuid.UUID, startDate, endDate string) (*domain.Quote, error) {
	product, err := s.activeProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	days, total, err := utils.CalculateRentalPrice(startDate, endDate, product.PricePerDay)
	if err != nil {
		return nil, domain.NewValidationError("endDate", MsgInvalidDates)
	}

	return &domain.Quote{
		ProductID:   product.ID,
		StartDate:   startDate,
		EndDate:     endDate,
		Days:        days,
		PricePerDay: product.PricePerDay,
		TotalPrice:  total,
	}, nil
}

func (s *bookingService) SubmitRentalRequest(ctx context.Context, sub *domain.RentalSubmission) (*domain.RentalRequest, error) {
	logger.EnterMethod("bookingService.SubmitRentalRequest", "productID", sub.ProductID)

	if !sub.PrivacyAccepted {
		return nil, s.reject("privacy", domain.NewValidationError("privacyAccepted", MsgPrivacyRequired))
	}

	// Day count only; the price needs the product and is computed after lookup.
	if _, _, err := utils.CalculateRentalPrice(sub.StartDate, sub.EndDate, decimal.Zero); err != nil {
		return nil, s.reject("dates", domain.NewValidationError("endDate", MsgInvalidDates))
	}
	if err := utils.CheckStartNotPast(sub.StartDate, s.now(), s.loc); err != nil {
		return nil, s.reject("start_in_past", domain.NewValidationError("startDate", MsgStartInPast))
	}

	if err := ValidateRentalContact(sub.FirstName, sub.LastName, sub.Email, sub.Phone); err != nil {
		return nil, s.reject("contact", err)
	}

	product, err := s.activeProduct(ctx, sub.ProductID)
	if err != nil {
		if _, ok := domain.IsValidationError(err); ok {
			return nil, s.reject("product", err)
		}
		logger.ExitMethodWithError("bookingService.SubmitRentalRequest", err)
		return nil, err
	}

	days, total, err := utils.CalculateRentalPrice(sub.StartDate, sub.EndDate, product.PricePerDay)
	if err != nil {
		return nil, s.reject("dates", domain.NewValidationError("endDate", MsgInvalidDates))
	}

	req := &domain.RentalRequest{
		ProductID:       product.ID,
		ProductName:     product.Name,
		PricePerDay:     product.PricePerDay,
		StartDate:       sub.StartDate,
		EndDate:         sub.EndDate,
		Days:            days,
		TotalPrice:      total,
		FirstName:       sub.FirstName,
		LastName:        sub.LastName,
		Phone:           sub.Phone,
		Email:           sub.Email,
		PrivacyAccepted: true,
		Status:          domain.RentalStatusPending,
	}
	if err := s.rentalRepo.Create(ctx, req); err != nil {
		logger.ExitMethodWithError("bookingService.SubmitRentalRequest", err)
		if !errors.Is(err, domain.ErrPersistence) {
			err = fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
		return nil, err
	}
	metrics.RentalRequestsCreatedTotal.Inc()

	s.notifier.Notify(ctx, domain.NewRentalNotification(req))

	logger.ExitMethod("bookingService.SubmitRentalRequest", "rentalID", req.ID, "days", req.Days)
	return req, nil
}

func (s *bookingService) activeProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("productId", MsgProductUnavailable)
	}
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("productId", MsgProductUnavailable)
		}
		return nil, fmt.Errorf("load product: %w", err)
	}
	if !product.IsActive {
		return nil, domain.NewValidationError("productId", MsgProductUnavailable)
	}
	return product, nil
}

func (s *bookingService) reject(reason string, err error) error {
	metrics.RentalRequestsRejectedTotal.WithLabelValues(reason).Inc()
	logger.Info("Rental request rejected", "reason", reason, "error", err)
	return err
}
