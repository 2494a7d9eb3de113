package repository

import (
	"context"
	"time"

	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	// Create inserts a new appointment. When another live appointment
	// already holds the same (doctor, date, time) slot the storage
	// layer rejects the insert with a unique-constraint violation.
	Create(ctx context.Context, appointment *entity.Appointment) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	// FindByIDForUser scopes the lookup to the appointment's doctor or
	// patient depending on role, so callers cannot touch records they
	// do not own.
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID, role entity.Role) (*entity.Appointment, error)

	// FindActiveSlot returns the live (pending or confirmed)
	// appointment occupying the slot, or nil when the slot is free.
	FindActiveSlot(ctx context.Context, doctorID uuid.UUID, date time.Time, timeStr string) (*entity.Appointment, error)
	// FindBookedTimes projects the times of all live appointments for
	// a doctor on a date, ascending.
	FindBookedTimes(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error)

	FindByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	FindByDoctorAndStatus(ctx context.Context, doctorID uuid.UUID, status entity.AppointmentStatus) ([]entity.Appointment, error)
	FindByPatient(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error)

	// Confirm atomically moves a paid, live appointment to confirmed
	// and stores the doctor notes. Returns affected rows: 0 means the
	// precondition no longer held when the write landed.
	Confirm(ctx context.Context, id uuid.UUID, notes string) (int64, error)
	// Cancel atomically cancels unless the appointment is already
	// cancelled or completed. Returns affected rows.
	Cancel(ctx context.Context, id uuid.UUID) (int64, error)
	// MarkPaid flips the payment flag after a successful sandbox charge.
	MarkPaid(ctx context.Context, id, paymentID uuid.UUID) error
}
