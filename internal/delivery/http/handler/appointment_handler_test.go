package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/scheduling"
	"clinic-appointment-api/internal/usecase"
	"clinic-appointment-api/pkg/response"
	"clinic-appointment-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// stubAppointmentUsecase returns a scripted result for every call.
type stubAppointmentUsecase struct {
	resp *dto.AppointmentResponse
	list *dto.AppointmentListResponse
	err  error
}

func (s *stubAppointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	return s.resp, s.err
}

func (s *stubAppointmentUsecase) ConfirmAppointment(ctx context.Context, id uuid.UUID, req *dto.ConfirmAppointmentRequest) (*dto.AppointmentResponse, error) {
	return s.resp, s.err
}

func (s *stubAppointmentUsecase) CancelAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return s.resp, s.err
}

func (s *stubAppointmentUsecase) GetTodayAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	return s.list, s.err
}

func (s *stubAppointmentUsecase) GetDoctorAppointmentsByStatus(ctx context.Context, status entity.AppointmentStatus) (*dto.AppointmentListResponse, error) {
	return s.list, s.err
}

func (s *stubAppointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	return s.list, s.err
}

func createBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(dto.CreateAppointmentRequest{
		DoctorID: uuid.New(),
		Date:     "2025-10-14",
		Time:     "09:30",
		Reason:   "Annual cardiology check-up",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewBuffer(body)
}

func TestCreateAppointment_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"created", nil, http.StatusCreated},
		{"doctor missing", usecase.ErrDoctorNotFound, http.StatusNotFound},
		{"past date", scheduling.ErrPastDate, http.StatusBadRequest},
		{"weekend", scheduling.ErrWeekend, http.StatusBadRequest},
		{"out of hours", scheduling.ErrOutOfHours, http.StatusBadRequest},
		{"slot taken", usecase.ErrSlotUnavailable, http.StatusBadRequest},
		{"lost the race", usecase.ErrDuplicateSlot, http.StatusConflict},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubAppointmentUsecase{err: tc.err}
			if tc.err == nil {
				stub.resp = &dto.AppointmentResponse{ID: uuid.New(), Status: "pending"}
			}
			h := NewAppointmentHandler(stub, validator.NewValidator())

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", createBody(t))
			h.CreateAppointment(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d; body %s", rec.Code, tc.wantStatus, rec.Body)
			}

			var resp response.Response
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if resp.Success != (tc.err == nil) {
				t.Errorf("success = %v", resp.Success)
			}
		})
	}
}

func TestCreateAppointment_ValidationFailures(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"missing fields", `{}`},
		{"short reason", `{"doctor_id":"` + uuid.NewString() + `","date":"2025-10-14","time":"09:30","reason":"too short"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewBufferString(tc.body))
			h.CreateAppointment(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body)
			}
		})
	}
}

func TestConfirmAppointment_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"confirmed", nil, http.StatusOK},
		{"not found", usecase.ErrAppointmentNotFound, http.StatusNotFound},
		{"cancelled", usecase.ErrAlreadyCancelled, http.StatusConflict},
		{"unpaid", usecase.ErrPaymentRequired, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubAppointmentUsecase{err: tc.err}
			if tc.err == nil {
				stub.resp = &dto.AppointmentResponse{ID: uuid.New(), Status: "confirmed"}
			}
			h := NewAppointmentHandler(stub, validator.NewValidator())

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+uuid.NewString()+"/confirm", nil)
			req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
			h.ConfirmAppointment(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d; body %s", rec.Code, tc.wantStatus, rec.Body)
			}
		})
	}
}

func TestConfirmAppointment_BadID(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/nope/confirm", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "nope"})
	h.ConfirmAppointment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetAppointmentsByStatus_RejectsUnknownStatus(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{list: &dto.AppointmentListResponse{}}, validator.NewValidator())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/by-status?status=archived", nil)
	h.GetAppointmentsByStatus(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body)
	}
}

func TestGetAppointmentsByStatus_ValidStatus(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{list: &dto.AppointmentListResponse{Total: 0}}, validator.NewValidator())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/by-status?status=pending", nil)
	h.GetAppointmentsByStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}
}
