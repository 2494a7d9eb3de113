package handler

import (
	"encoding/json"
	"net/http"

	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/usecase"
	"clinic-appointment-api/pkg/response"
	"clinic-appointment-api/pkg/validator"
)

type PaymentHandler struct {
	paymentUsecase usecase.PaymentUsecase
	validator      *validator.CustomValidator
}

func NewPaymentHandler(paymentUsecase usecase.PaymentUsecase, validator *validator.CustomValidator) *PaymentHandler {
	return &PaymentHandler{
		paymentUsecase: paymentUsecase,
		validator:      validator,
	}
}

// ProcessPayment charges the sandbox gateway for an appointment. A
// declined card is not an error: the attempt is recorded and returned
// with success=false so the patient can retry with another card.
func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.ProcessPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	payment, err := h.paymentUsecase.ProcessPayment(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrCannotPayCancelled:
			response.Error(w, http.StatusBadRequest, "Cannot pay for a cancelled appointment", nil)
		case usecase.ErrAlreadyPaid:
			response.Error(w, http.StatusConflict, "Appointment is already paid", nil)
		case usecase.ErrAmountTooLarge:
			response.Error(w, http.StatusBadRequest, "Amount exceeds the allowed maximum", nil)
		case usecase.ErrInvalidCardNumber:
			response.Error(w, http.StatusBadRequest, "Card number must be 16 digits", nil)
		case usecase.ErrInvalidExpiryDate:
			response.Error(w, http.StatusBadRequest, "Expiry date must be in MM/YY format", nil)
		case usecase.ErrCardExpired:
			response.Error(w, http.StatusBadRequest, "Card has expired", nil)
		case usecase.ErrInvalidCVV:
			response.Error(w, http.StatusBadRequest, "CVV must be 3 or 4 digits", nil)
		case usecase.ErrInvalidCardHolder:
			response.Error(w, http.StatusBadRequest, "Card holder name is required", nil)
		default:
			response.InternalServerError(w, "Failed to process payment")
		}
		return
	}

	if !payment.Success {
		response.JSON(w, http.StatusBadRequest, response.Response{
			Success: false,
			Message: payment.Message,
			Data:    payment,
		})
		return
	}

	response.Success(w, http.StatusOK, "Payment processed successfully", payment)
}
