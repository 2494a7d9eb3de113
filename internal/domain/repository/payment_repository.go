package repository

import (
	"context"

	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*entity.Payment, error)
	FindByPatient(ctx context.Context, patientID uuid.UUID) ([]entity.Payment, error)
}
