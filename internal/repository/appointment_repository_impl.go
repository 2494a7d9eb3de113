package repository

import (
	"context"
	"errors"
	"time"

	"clinic-appointment-api/internal/domain/entity"
	domainRepo "clinic-appointment-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var liveStatuses = []entity.AppointmentStatus{
	entity.AppointmentStatusPending,
	entity.AppointmentStatusConfirmed,
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor").Preload("Patient").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID, role entity.Role) (*entity.Appointment, error) {
	ownerColumn := "patient_id"
	if role == entity.RoleDoctor {
		ownerColumn = "doctor_id"
	}

	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Where("id = ? AND "+ownerColumn+" = ?", id, userID).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindActiveSlot(ctx context.Context, doctorID uuid.UUID, date time.Time, timeStr string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date = ? AND time = ? AND status IN ?", doctorID, date, timeStr, liveStatuses).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindBookedTimes(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error) {
	var times []string
	err := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("doctor_id = ? AND date = ? AND status IN ?", doctorID, date, liveStatuses).
		Order("time ASC").
		Pluck("time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (r *appointmentRepository) FindByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("doctor_id = ? AND date = ? AND status IN ?", doctorID, date, liveStatuses).
		Order("time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorAndStatus(ctx context.Context, doctorID uuid.UUID, status entity.AppointmentStatus) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("doctor_id = ? AND status = ?", doctorID, status).
		Order("date ASC, time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("date DESC, time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// Confirm moves a paid live appointment to confirmed in a single
// conditional UPDATE. Affected rows 0 means a concurrent writer changed
// the record first (double-confirm or cancel race).
func (r *appointmentRepository) Confirm(ctx context.Context, id uuid.UUID, notes string) (int64, error) {
	updates := map[string]interface{}{"status": entity.AppointmentStatusConfirmed}
	if notes != "" {
		updates["notes"] = notes
	}

	result := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ? AND status IN ? AND payment_status = ?", id, liveStatuses, entity.PaymentStatePaid).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// Cancel atomically cancels ONLY if the appointment is still live.
// Returns affected rows: 1 = success, 0 = lost the race to another
// cancel or the visit already completed.
func (r *appointmentRepository) Cancel(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ? AND status IN ?", id, liveStatuses).
		Update("status", entity.AppointmentStatusCancelled)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) MarkPaid(ctx context.Context, id, paymentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_status": entity.PaymentStatePaid,
			"payment_id":     paymentID,
		}).Error
}
