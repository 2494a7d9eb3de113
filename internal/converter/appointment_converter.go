package converter

import (
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/scheduling"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to its response DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:            appointment.ID,
		DoctorID:      appointment.DoctorID,
		PatientID:     appointment.PatientID,
		Date:          appointment.Date.Format(scheduling.DateLayout),
		Time:          appointment.Time,
		Reason:        appointment.Reason,
		Notes:         appointment.Notes,
		Status:        string(appointment.Status),
		PaymentStatus: string(appointment.PaymentState),
		PaymentID:     appointment.PaymentID,
		CreatedAt:     appointment.CreatedAt,
		UpdatedAt:     appointment.UpdatedAt,
	}

	// Include participants only when they were preloaded
	if appointment.Doctor.ID != uuid.Nil {
		response.Doctor = UserToResponse(&appointment.Doctor)
	}
	if appointment.Patient.ID != uuid.Nil {
		response.Patient = UserToResponse(&appointment.Patient)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
