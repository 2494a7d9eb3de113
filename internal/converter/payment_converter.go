package converter

import (
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
)

// PaymentToResponse converts a Payment entity to its response DTO.
// Only the stored last-four digits ever reach the client.
func PaymentToResponse(payment *entity.Payment) *dto.PaymentResponse {
	if payment == nil {
		return nil
	}

	return &dto.PaymentResponse{
		PaymentID:     payment.ID,
		AppointmentID: payment.AppointmentID,
		Status:        string(payment.Status),
		TransactionID: payment.TransactionID,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		CardLast4:     payment.CardLast4,
		Message:       payment.GatewayMessage,
		Success:       payment.IsCompleted(),
		CreatedAt:     payment.CreatedAt,
	}
}
