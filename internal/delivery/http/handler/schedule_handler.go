package handler

import (
	"net/http"

	"clinic-appointment-api/internal/scheduling"
	"clinic-appointment-api/internal/usecase"
	"clinic-appointment-api/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ScheduleHandler struct {
	scheduleUsecase usecase.ScheduleUsecase
}

func NewScheduleHandler(scheduleUsecase usecase.ScheduleUsecase) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUsecase: scheduleUsecase,
	}
}

// GetAvailableSlots returns the open slots for a doctor on a date.
// GET /doctors/{id}/slots?date=YYYY-MM-DD
func (h *ScheduleHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter 'date' is required", nil)
		return
	}

	slots, err := h.scheduleUsecase.GetAvailableSlots(r.Context(), doctorID, date)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case scheduling.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to get available slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}
