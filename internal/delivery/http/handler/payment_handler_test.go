package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/usecase"
	"clinic-appointment-api/pkg/response"
	"clinic-appointment-api/pkg/validator"

	"github.com/google/uuid"
)

type stubPaymentUsecase struct {
	resp *dto.PaymentResponse
	err  error
}

func (s *stubPaymentUsecase) ProcessPayment(ctx context.Context, req *dto.ProcessPaymentRequest) (*dto.PaymentResponse, error) {
	return s.resp, s.err
}

func paymentBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(dto.ProcessPaymentRequest{
		AppointmentID: uuid.New(),
		Amount:        150,
		PaymentMethod: "credit_card",
		CardNumber:    "4111111111111111",
		CardHolder:    "Sam Porter",
		ExpiryDate:    "12/27",
		CVV:           "123",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewBuffer(body)
}

func TestProcessPayment_Accepted(t *testing.T) {
	txn := "TXN_1760346000000_deadbeef"
	stub := &stubPaymentUsecase{resp: &dto.PaymentResponse{
		PaymentID:     uuid.New(),
		Status:        "completed",
		TransactionID: &txn,
		Success:       true,
		Message:       "Payment processed successfully",
	}}
	h := NewPaymentHandler(stub, validator.NewValidator())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/process", paymentBody(t))
	h.ProcessPayment(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}
}

// A gateway decline is a 400 that still carries the recorded attempt,
// so clients can show the decline reason and let the patient retry.
func TestProcessPayment_Declined(t *testing.T) {
	stub := &stubPaymentUsecase{resp: &dto.PaymentResponse{
		PaymentID: uuid.New(),
		Status:    "failed",
		Success:   false,
		Message:   "Payment failed - Card declined",
	}}
	h := NewPaymentHandler(stub, validator.NewValidator())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/process", paymentBody(t))
	h.ProcessPayment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body)
	}

	var resp response.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Success {
		t.Error("declined payment must report success=false")
	}
	if resp.Data == nil {
		t.Error("declined payment must include the recorded attempt")
	}
	if resp.Message != "Payment failed - Card declined" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestProcessPayment_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"appointment missing", usecase.ErrAppointmentNotFound, http.StatusNotFound},
		{"cancelled", usecase.ErrCannotPayCancelled, http.StatusBadRequest},
		{"already paid", usecase.ErrAlreadyPaid, http.StatusConflict},
		{"bad card", usecase.ErrInvalidCardNumber, http.StatusBadRequest},
		{"expired card", usecase.ErrCardExpired, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewPaymentHandler(&stubPaymentUsecase{err: tc.err}, validator.NewValidator())

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/process", paymentBody(t))
			h.ProcessPayment(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d; body %s", rec.Code, tc.wantStatus, rec.Body)
			}
		})
	}
}

func TestProcessPayment_RejectsUnknownMethod(t *testing.T) {
	h := NewPaymentHandler(&stubPaymentUsecase{}, validator.NewValidator())

	body, _ := json.Marshal(map[string]interface{}{
		"appointment_id": uuid.New(),
		"amount":         150,
		"payment_method": "cash",
		"card_number":    "4111111111111111",
		"card_holder":    "Sam Porter",
		"expiry_date":    "12/27",
		"cvv":            "123",
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/process", bytes.NewBuffer(body))
	h.ProcessPayment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body)
	}
}
