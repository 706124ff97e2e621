package repository

import (
	"context"
	"time"

	"roofbox-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	ListActive(ctx context.Context) ([]domain.Product, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	UpdatePrice(ctx context.Context, id uuid.UUID, pricePerDay decimal.Decimal) error
	UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string) error
}

type RentalRequestRepository interface {
	Create(ctx context.Context, req *domain.RentalRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RentalRequest, error)
	List(ctx context.Context, filter domain.RentalRequestFilter) ([]domain.RentalRequest, int32, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RentalStatus) error
	CountByStatus(ctx context.Context, status domain.RentalStatus) (int32, error)
}

type ContactMessageRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
	List(ctx context.Context, status domain.ContactStatus, page, pageSize int32) ([]domain.ContactMessage, int32, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ContactStatus) error
	CountByStatus(ctx context.Context, status domain.ContactStatus) (int32, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
