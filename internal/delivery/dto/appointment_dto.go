package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs
//
// Date and time formats are checked by the scheduling validator, not by
// struct tags, so there is a single source of truth for booking rules.

type CreateAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	Date     string    `json:"date" validate:"required"`
	Time     string    `json:"time" validate:"required"`
	Reason   string    `json:"reason" validate:"required,min=10,max=500"`
	Notes    string    `json:"notes" validate:"omitempty,max=1000"`
}

type ConfirmAppointmentRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=1000"`
}

// Response DTOs

type AppointmentResponse struct {
	ID            uuid.UUID     `json:"id"`
	DoctorID      uuid.UUID     `json:"doctor_id"`
	PatientID     uuid.UUID     `json:"patient_id"`
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	Reason        string        `json:"reason"`
	Notes         string        `json:"notes,omitempty"`
	Status        string        `json:"status"`
	PaymentStatus string        `json:"payment_status"`
	PaymentID     *uuid.UUID    `json:"payment_id,omitempty"`
	Doctor        *UserResponse `json:"doctor,omitempty"`
	Patient       *UserResponse `json:"patient,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
