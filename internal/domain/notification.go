package domain

import "github.com/shopspring/decimal"

type NotificationKind string

const (
	NotificationKindContact NotificationKind = "contact"
	NotificationKindRental  NotificationKind = "rental"
)

// NotificationPayload is the tagged message accepted by the notification
// dispatcher. Kind selects which of the field groups is meaningful.
// It is never persisted.
type NotificationPayload struct {
	Kind NotificationKind `json:"type"`

	// contact
	Name    string `json:"name,omitempty"`
	Message string `json:"message,omitempty"`

	// shared
	Email string `json:"email"`

	// rental
	FirstName   string          `json:"firstName,omitempty"`
	LastName    string          `json:"lastName,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	ProductName string          `json:"productName,omitempty"`
	StartDate   string          `json:"startDate,omitempty"`
	EndDate     string          `json:"endDate,omitempty"`
	Days        int             `json:"days,omitempty"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

func NewContactNotification(m *ContactMessage) *NotificationPayload {
	return &NotificationPayload{
		Kind:    NotificationKindContact,
		Name:    m.Name,
		Email:   m.Email,
		Message: m.Message,
	}
}

func NewRentalNotification(r *RentalRequest) *NotificationPayload {
	return &NotificationPayload{
		Kind:        NotificationKindRental,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		ProductName: r.ProductName,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Days:        r.Days,
		TotalPrice:  r.TotalPrice,
	}
}

// SendResult is what the mail provider reported for an accepted message.
type SendResult struct {
	ID       string `json:"id,omitempty"`
	Provider string `json:"provider"`
}
