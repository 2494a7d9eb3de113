package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs
//
// Card format rules (16 digits, MM/YY expiry, CVV length) live in the
// payment usecase so declined-card messages stay consistent.

type ProcessPaymentRequest struct {
	AppointmentID uuid.UUID `json:"appointment_id" validate:"required"`
	Amount        float64   `json:"amount" validate:"required,gt=0"`
	PaymentMethod string    `json:"payment_method" validate:"required,oneof=credit_card debit_card paypal stripe"`
	CardNumber    string    `json:"card_number" validate:"required"`
	CardHolder    string    `json:"card_holder" validate:"required"`
	ExpiryDate    string    `json:"expiry_date" validate:"required"`
	CVV           string    `json:"cvv" validate:"required"`
}

// Response DTOs

type PaymentResponse struct {
	PaymentID     uuid.UUID `json:"payment_id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	Status        string    `json:"status"`
	TransactionID *string   `json:"transaction_id,omitempty"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	CardLast4     string    `json:"card_last4"`
	Message       string    `json:"message"`
	Success       bool      `json:"success"`
	CreatedAt     time.Time `json:"created_at"`
}
