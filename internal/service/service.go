package service

import (
	"context"
	"io"

	"roofbox-backend/internal/domain"
	"roofbox-backend/internal/security"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingService interface {
	Quote(ctx context.Context, productID uuid.UUID, startDate, endDate string) (*domain.Quote, error)
	SubmitRentalRequest(ctx context.Context, sub *domain.RentalSubmission) (*domain.RentalRequest, error)
}

type ContactService interface {
	SubmitContactMessage(ctx context.Context, name, email, message string) (*domain.ContactMessage, error)
}

type ProductService interface {
	ListActiveProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, slug string) (*domain.Product, error)
}

type NotificationService interface {
	Dispatch(ctx context.Context, payload *domain.NotificationPayload) (*domain.SendResult, error)
}

// Notifier hands a notification off without making the caller wait for
// the mail provider. Failures are logged by the implementation.
type Notifier interface {
	Notify(ctx context.Context, payload *domain.NotificationPayload)
}

type AdminService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProductPrice(ctx context.Context, id uuid.UUID, pricePerDay decimal.Decimal) error
	SetProductImage(ctx context.Context, id uuid.UUID, contentType string, body io.Reader) (string, error)
	ListRentalRequests(ctx context.Context, filter domain.RentalRequestFilter) ([]domain.RentalRequest, int32, error)
	UpdateRentalRequestStatus(ctx context.Context, id uuid.UUID, status domain.RentalStatus) error
	ListContactMessages(ctx context.Context, status domain.ContactStatus, page, pageSize int32) ([]domain.ContactMessage, int32, error)
	UpdateContactMessageStatus(ctx context.Context, id uuid.UUID, status domain.ContactStatus) error
}

type AuthService interface {
	SignUp(ctx context.Context, email, password string) (*domain.User, error)
	SignIn(ctx context.Context, email, password string) (string, *security.Session, error)
	SignOut(ctx context.Context, session *security.Session) error
	Authenticate(ctx context.Context, token string) (*security.Session, error)
}

// Mailer delivers one rendered HTML message to a single recipient.
type Mailer interface {
	Send(ctx context.Context, msg *MailMessage) (*domain.SendResult, error)
}

type MailMessage struct {
	FromAddress string
	FromName    string
	To          string
	Subject     string
	HTML        string
}
