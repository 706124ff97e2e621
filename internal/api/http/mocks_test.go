package http

import (
	"context"
	"io"

	"roofbox-backend/internal/domain"
	"roofbox-backend/internal/security"
	"roofbox-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockBookings struct{ mock.Mock }

func (m *mockBookings) Quote(ctx context.Context, productID uuid.UUID, startDate, endDate string) (*domain.Quote, error) {
	args := m.Called(ctx, productID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *mockBookings) SubmitRentalRequest(ctx context.Context, sub *domain.RentalSubmission) (*domain.RentalRequest, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}

type mockContacts struct{ mock.Mock }

func (m *mockContacts) SubmitContactMessage(ctx context.Context, name, email, message string) (*domain.ContactMessage, error) {
	args := m.Called(ctx, name, email, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactMessage), args.Error(1)
}

type mockProducts struct{ mock.Mock }

func (m *mockProducts) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProducts) GetProduct(ctx context.Context, slug string) (*domain.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type mockAdmin struct{ mock.Mock }

func (m *mockAdmin) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockAdmin) UpdateProductPrice(ctx context.Context, id uuid.UUID, pricePerDay decimal.Decimal) error {
	return m.Called(ctx, id, pricePerDay).Error(0)
}

func (m *mockAdmin) SetProductImage(ctx context.Context, id uuid.UUID, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, id, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *mockAdmin) ListRentalRequests(ctx context.Context, filter domain.RentalRequestFilter) ([]domain.RentalRequest, int32, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.RentalRequest), args.Get(1).(int32), args.Error(2)
}

func (m *mockAdmin) UpdateRentalRequestStatus(ctx context.Context, id uuid.UUID, status domain.RentalStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockAdmin) ListContactMessages(ctx context.Context, status domain.ContactStatus, page, pageSize int32) ([]domain.ContactMessage, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.ContactMessage), args.Get(1).(int32), args.Error(2)
}

func (m *mockAdmin) UpdateContactMessageStatus(ctx context.Context, id uuid.UUID, status domain.ContactStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockAuth struct{ mock.Mock }

func (m *mockAuth) SignUp(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockAuth) SignIn(ctx context.Context, email, password string) (string, *security.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*security.Session), args.Error(2)
}

func (m *mockAuth) SignOut(ctx context.Context, session *security.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockAuth) Authenticate(ctx context.Context, token string) (*security.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.Session), args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, msg *service.MailMessage) (*domain.SendResult, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SendResult), args.Error(1)
}
