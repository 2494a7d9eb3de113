package usecase

import (
	"context"
	"time"

	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/domain/repository"
	"clinic-appointment-api/internal/scheduling"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ScheduleUsecase interface {
	GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, dateStr string) (*dto.AvailableSlotsResponse, error)
}

type scheduleUsecase struct {
	log             *logrus.Logger
	policy          scheduling.Policy
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
	now             func() time.Time
}

func NewScheduleUsecase(
	log *logrus.Logger,
	policy scheduling.Policy,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
) ScheduleUsecase {
	return &scheduleUsecase{
		log:             log,
		policy:          policy,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		now:             time.Now,
	}
}

// GetAvailableSlots returns the free slots for a doctor on a date:
// every policy slot minus the times already held by live appointments.
// Weekends and past dates yield an empty list rather than an error.
//
// This is a read-only answer with no reservation; the double-booking
// invariant is enforced at write time by the appointment store's
// unique constraint, not here.
func (u *scheduleUsecase) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, dateStr string) (*dto.AvailableSlotsResponse, error) {
	doctor, err := u.userRepo.FindActiveByRole(ctx, doctorID, entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to look up doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	date, err := scheduling.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	response := &dto.AvailableSlotsResponse{
		DoctorID:       doctorID,
		DoctorName:     doctor.Name,
		Date:           dateStr,
		AvailableSlots: []string{},
	}

	if scheduling.IsWeekend(date) || date.Before(scheduling.StartOfDay(u.now().UTC())) {
		return response, nil
	}

	bookedTimes, err := u.appointmentRepo.FindBookedTimes(ctx, doctorID, date)
	if err != nil {
		u.log.Warnf("Failed to find booked times for doctor %s on %s: %+v", doctorID, dateStr, err)
		return nil, err
	}

	booked := make(map[string]struct{}, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = struct{}{}
	}

	for _, slot := range u.policy.GenerateSlots() {
		if _, taken := booked[slot]; !taken {
			response.AvailableSlots = append(response.AvailableSlots, slot)
		}
	}
	response.TotalSlots = len(response.AvailableSlots)

	return response, nil
}
