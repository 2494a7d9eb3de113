package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-appointment-api/internal/converter"
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/delivery/http/middleware"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/domain/repository"
	"clinic-appointment-api/internal/scheduling"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrDoctorNotFound        = errors.New("doctor not found or inactive")
	ErrPatientNotFound       = errors.New("patient not found or inactive")
	ErrSlotUnavailable       = errors.New("time slot is not available")
	ErrDuplicateSlot         = errors.New("time slot was taken by a concurrent booking")
	ErrAppointmentNotFound   = errors.New("appointment not found or unauthorized")
	ErrPaymentRequired       = errors.New("appointment must be paid before confirmation")
	ErrAlreadyCancelled      = errors.New("appointment is already cancelled")
	ErrCannotCancelCompleted = errors.New("cannot cancel completed appointment")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	ConfirmAppointment(ctx context.Context, appointmentID uuid.UUID, req *dto.ConfirmAppointmentRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	GetTodayAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetDoctorAppointmentsByStatus(ctx context.Context, status entity.AppointmentStatus) (*dto.AppointmentListResponse, error)
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	policy          scheduling.Policy
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
	now             func() time.Time
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	policy scheduling.Policy,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		policy:          policy,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		now:             time.Now,
	}
}

// CreateAppointment books a slot for the logged-in patient.
//
// Flow:
// 1. Verify doctor and patient exist and are active
// 2. Validate date/time against the working-hours policy
// 3. Advisory availability pre-check (clean error for the common case)
// 4. Insert with status=pending; the partial unique index rejects any
//    concurrent booking of the same (doctor, date, time) that slipped
//    past the pre-check
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	if err := u.validateParticipants(ctx, req.DoctorID, patientID); err != nil {
		return nil, err
	}

	if err := u.policy.ValidateAppointmentTime(req.Date, req.Time, u.now()); err != nil {
		return nil, err
	}

	date, err := scheduling.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	existing, err := u.appointmentRepo.FindActiveSlot(ctx, req.DoctorID, date, req.Time)
	if err != nil {
		u.log.Warnf("Failed to check slot availability: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotUnavailable
	}

	appointment := &entity.Appointment{
		PatientID:    patientID,
		DoctorID:     req.DoctorID,
		Date:         date,
		Time:         req.Time,
		Reason:       req.Reason,
		Notes:        req.Notes,
		Status:       entity.AppointmentStatusPending,
		PaymentState: entity.PaymentStatePending,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		if isDuplicateKeyError(err, "doctor_slot") {
			return nil, ErrDuplicateSlot
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	full, err := u.appointmentRepo.FindByID(ctx, appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}

	u.log.Infof("Appointment created: id=%s, doctor=%s, date=%s, time=%s", appointment.ID, req.DoctorID, req.Date, req.Time)
	return converter.AppointmentToResponse(full), nil
}

// ConfirmAppointment moves a paid appointment to confirmed. Only the
// assigned doctor may confirm, and only after the payment collaborator
// has flipped payment_status to paid.
func (u *appointmentUsecase) ConfirmAppointment(ctx context.Context, appointmentID uuid.UUID, req *dto.ConfirmAppointmentRequest) (*dto.AppointmentResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByIDForUser(ctx, appointmentID, doctorID, entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if appointment.IsCancelled() {
		return nil, ErrAlreadyCancelled
	}
	if !appointment.IsPaid() {
		return nil, ErrPaymentRequired
	}

	notes := ""
	if req.Notes != "" {
		notes = "Doctor notes: " + req.Notes
	}

	affected, err := u.appointmentRepo.Confirm(ctx, appointmentID, notes)
	if err != nil {
		u.log.Warnf("Failed to confirm appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if affected == 0 {
		// The record changed between the read and the write, which for
		// a live, paid appointment can only mean a concurrent cancel.
		return nil, ErrAlreadyCancelled
	}

	full, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointmentID, err)
		return nil, ErrAppointmentNotFound
	}

	u.log.Infof("Appointment confirmed: id=%s, doctor=%s", appointmentID, doctorID)
	return converter.AppointmentToResponse(full), nil
}

// CancelAppointment cancels a live appointment. Both the assigned
// doctor and the assigned patient may cancel; completed visits may not
// be cancelled.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	role, ok := middleware.GetRoleFromContext(ctx)
	if !ok {
		return nil, errors.New("role not found in context")
	}

	appointment, err := u.appointmentRepo.FindByIDForUser(ctx, appointmentID, userID, role)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if appointment.IsCancelled() {
		return nil, ErrAlreadyCancelled
	}
	if appointment.IsCompleted() {
		return nil, ErrCannotCancelCompleted
	}

	affected, err := u.appointmentRepo.Cancel(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAlreadyCancelled
	}

	full, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointmentID, err)
		return nil, ErrAppointmentNotFound
	}

	u.log.Infof("Appointment cancelled: id=%s, by=%s (%s)", appointmentID, userID, role)
	return converter.AppointmentToResponse(full), nil
}

// GetTodayAppointments returns the logged-in doctor's live appointments
// for the current UTC day, ascending by time.
func (u *appointmentUsecase) GetTodayAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	today := scheduling.StartOfDay(u.now().UTC())
	appointments, err := u.appointmentRepo.FindByDoctorAndDate(ctx, doctorID, today)
	if err != nil {
		u.log.Warnf("Failed to find today appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetDoctorAppointmentsByStatus(ctx context.Context, status entity.AppointmentStatus) (*dto.AppointmentListResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointments, err := u.appointmentRepo.FindByDoctorAndStatus(ctx, doctorID, status)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointments, err := u.appointmentRepo.FindByPatient(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// validateParticipants checks that both users exist with the right role
// and are active. The doctor error takes precedence when both fail.
func (u *appointmentUsecase) validateParticipants(ctx context.Context, doctorID, patientID uuid.UUID) error {
	doctor, err := u.userRepo.FindActiveByRole(ctx, doctorID, entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to look up doctor %s: %+v", doctorID, err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	patient, err := u.userRepo.FindActiveByRole(ctx, patientID, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to look up patient %s: %+v", patientID, err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	return nil
}
