package handler

import (
	"encoding/json"
	"net/http"

	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/scheduling"
	"clinic-appointment-api/internal/usecase"
	"clinic-appointment-api/pkg/response"
	"clinic-appointment-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case scheduling.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD", nil)
		case scheduling.ErrPastDate:
			response.Error(w, http.StatusBadRequest, "Cannot schedule appointments in the past", nil)
		case scheduling.ErrWeekend:
			response.Error(w, http.StatusBadRequest, "Appointments cannot be scheduled on weekends", nil)
		case scheduling.ErrMalformedTime:
			response.Error(w, http.StatusBadRequest, "Invalid time format. Use HH:MM", nil)
		case scheduling.ErrOutOfHours:
			response.Error(w, http.StatusBadRequest, "Appointments must be between 7:00-12:00 or 14:00-18:00", nil)
		case usecase.ErrSlotUnavailable:
			response.Error(w, http.StatusBadRequest, "This time slot is not available", nil)
		case usecase.ErrDuplicateSlot:
			response.Error(w, http.StatusConflict, "This time slot was just booked by another patient", nil)
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.ConfirmAppointmentRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.ConfirmAppointment(r.Context(), appointmentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAlreadyCancelled:
			response.Error(w, http.StatusConflict, "Cannot confirm a cancelled appointment", nil)
		case usecase.ErrPaymentRequired:
			response.Error(w, http.StatusBadRequest, "Appointment must be paid before confirmation", nil)
		default:
			response.InternalServerError(w, "Failed to confirm appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment confirmed successfully", appointment)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.CancelAppointment(r.Context(), appointmentID)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAlreadyCancelled:
			response.Error(w, http.StatusConflict, "Appointment is already cancelled", nil)
		case usecase.ErrCannotCancelCompleted:
			response.Error(w, http.StatusBadRequest, "Cannot cancel a completed appointment", nil)
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetMyAppointments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetTodayAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetTodayAppointments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get today's appointments")
		return
	}

	response.Success(w, http.StatusOK, "Today's appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointmentsByStatus(w http.ResponseWriter, r *http.Request) {
	status := entity.AppointmentStatus(r.URL.Query().Get("status"))
	switch status {
	case entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed,
		entity.AppointmentStatusCancelled, entity.AppointmentStatusCompleted:
	default:
		response.Error(w, http.StatusBadRequest, "Status must be one of: pending, confirmed, cancelled, completed", nil)
		return
	}

	appointments, err := h.appointmentUsecase.GetDoctorAppointmentsByStatus(r.Context(), status)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}
