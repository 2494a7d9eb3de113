package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// PaymentState tracks whether the appointment has been paid for
type PaymentState string

const (
	PaymentStatePending  PaymentState = "pending"
	PaymentStatePaid     PaymentState = "paid"
	PaymentStateRefunded PaymentState = "refunded"
)

// Appointment is one booked slot on a doctor's calendar. At most one
// appointment with status pending or confirmed may exist per
// (doctor_id, date, time); the partial unique index
// idx_appointments_doctor_slot enforces this at the storage layer so the
// availability pre-check cannot race with concurrent inserts.
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index:idx_appointments_doctor_date" json:"doctor_id"`
	Date      time.Time `gorm:"type:date;not null;index:idx_appointments_doctor_date" json:"date"`
	Time      string    `gorm:"type:varchar(5);not null" json:"time"`

	Reason string `gorm:"type:varchar(500);not null" json:"reason"`
	Notes  string `gorm:"type:varchar(1000)" json:"notes,omitempty"`

	Status       AppointmentStatus `gorm:"type:varchar(10);not null;default:'pending';index" json:"status"`
	PaymentState PaymentState      `gorm:"column:payment_status;type:varchar(10);not null;default:'pending';index" json:"payment_status"`
	PaymentID    *uuid.UUID        `gorm:"type:uuid" json:"payment_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsCancelled checks if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsCompleted checks if the visit already took place
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

// IsPaid checks if the payment collaborator has marked this paid
func (a *Appointment) IsPaid() bool {
	return a.PaymentState == PaymentStatePaid
}

// IsLive reports whether the appointment still occupies its slot
func (a *Appointment) IsLive() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}
