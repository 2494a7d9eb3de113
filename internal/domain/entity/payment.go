package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the state of one payment attempt record
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// PaymentMethod is how the patient paid
type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodPaypal     PaymentMethod = "paypal"
	PaymentMethodStripe     PaymentMethod = "stripe"
)

// Payment records one sandbox payment attempt for an appointment. Only
// the last four card digits and the holder name are persisted; full card
// data never leaves the request.
type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"appointment_id"`
	PatientID     uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`

	Amount   float64       `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency string        `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	Method   PaymentMethod `gorm:"column:payment_method;type:varchar(20);not null" json:"payment_method"`
	Status   PaymentStatus `gorm:"type:varchar(10);not null;default:'pending';index" json:"status"`

	TransactionID *string `gorm:"type:varchar(64);uniqueIndex" json:"transaction_id,omitempty"`

	CardLast4      string `gorm:"type:varchar(4);not null" json:"card_last4"`
	CardHolder     string `gorm:"type:varchar(50);not null" json:"card_holder"`
	GatewayMessage string `gorm:"type:varchar(255)" json:"gateway_message"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	Patient     User        `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

// IsCompleted checks if the gateway accepted the charge
func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentStatusCompleted
}
