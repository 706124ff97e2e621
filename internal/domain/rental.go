package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "pending"
	RentalStatusConfirmed RentalStatus = "confirmed"
	RentalStatusCancelled RentalStatus = "cancelled"
	RentalStatusCompleted RentalStatus = "completed"
)

// Valid reports whether s is one of the known rental statuses.
func (s RentalStatus) Valid() bool {
	switch s {
	case RentalStatusPending, RentalStatusConfirmed, RentalStatusCancelled, RentalStatusCompleted:
		return true
	}
	return false
}

type RentalRequest struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	// Snapshot fields, captured from the product at submission time.
	// Later edits to the product never change a stored request.
	ProductName     string          `json:"productName"`
	PricePerDay     decimal.Decimal `json:"pricePerDay"`
	StartDate       string          `json:"startDate"`
	EndDate         string          `json:"endDate"`
	Days            int             `json:"days"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
	PrivacyAccepted bool            `json:"privacyAccepted"`
	Status          RentalStatus    `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// RentalSubmission is the public booking form as received from the client.
type RentalSubmission struct {
	ProductID       uuid.UUID `json:"productId"`
	StartDate       string    `json:"startDate"`
	EndDate         string    `json:"endDate"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	PrivacyAccepted bool      `json:"privacyAccepted"`
}

// Quote is the live duration/price preview for a date range.
type Quote struct {
	ProductID   uuid.UUID       `json:"productId"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
	Days        int             `json:"days"`
	PricePerDay decimal.Decimal `json:"pricePerDay"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// RentalRequestFilter narrows admin listings. An empty Status lists everything.
type RentalRequestFilter struct {
	Status   RentalStatus
	Page     int32
	PageSize int32
}
