package usecase

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"clinic-appointment-api/config"
	"clinic-appointment-api/internal/converter"
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/delivery/http/middleware"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/domain/repository"
	"clinic-appointment-api/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrCannotPayCancelled = errors.New("cannot pay for cancelled appointment")
	ErrAlreadyPaid        = errors.New("appointment is already paid")
	ErrInvalidCardNumber  = errors.New("card number must be 16 digits")
	ErrInvalidExpiryDate  = errors.New("expiry date must be in MM/YY format")
	ErrCardExpired        = errors.New("card has expired")
	ErrInvalidCVV         = errors.New("CVV must be 3 or 4 digits")
	ErrInvalidCardHolder  = errors.New("card holder name is required")
	ErrAmountTooLarge     = errors.New("amount exceeds the allowed maximum")
)

var (
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
	nonDigits     = regexp.MustCompile(`\D`)
)

type PaymentUsecase interface {
	ProcessPayment(ctx context.Context, req *dto.ProcessPaymentRequest) (*dto.PaymentResponse, error)
}

type paymentUsecase struct {
	log             *logrus.Logger
	cfg             config.PaymentConfig
	gateway         service.PaymentGateway
	appointmentRepo repository.AppointmentRepository
	paymentRepo     repository.PaymentRepository
	now             func() time.Time
}

func NewPaymentUsecase(
	log *logrus.Logger,
	cfg config.PaymentConfig,
	gateway service.PaymentGateway,
	appointmentRepo repository.AppointmentRepository,
	paymentRepo repository.PaymentRepository,
) PaymentUsecase {
	return &paymentUsecase{
		log:             log,
		cfg:             cfg,
		gateway:         gateway,
		appointmentRepo: appointmentRepo,
		paymentRepo:     paymentRepo,
		now:             time.Now,
	}
}

// ProcessPayment charges the sandbox gateway for an appointment owned
// by the logged-in patient. A declined card is not an error: the
// attempt is recorded and returned with Success=false. On a successful
// charge the appointment's payment flag flips to paid, which is what
// the confirm transition gates on.
func (u *paymentUsecase) ProcessPayment(ctx context.Context, req *dto.ProcessPaymentRequest) (*dto.PaymentResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByIDForUser(ctx, req.AppointmentID, patientID, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", req.AppointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if appointment.IsCancelled() {
		return nil, ErrCannotPayCancelled
	}
	if appointment.IsPaid() {
		return nil, ErrAlreadyPaid
	}

	if req.Amount > u.cfg.MaxAmount {
		return nil, ErrAmountTooLarge
	}

	cardNumber, err := u.validateCard(req)
	if err != nil {
		return nil, err
	}

	result := u.gateway.Charge(cardNumber)

	payment := &entity.Payment{
		AppointmentID:  appointment.ID,
		PatientID:      patientID,
		Amount:         req.Amount,
		Currency:       u.cfg.Currency,
		Method:         entity.PaymentMethod(req.PaymentMethod),
		Status:         entity.PaymentStatusFailed,
		CardLast4:      cardNumber[len(cardNumber)-4:],
		CardHolder:     strings.TrimSpace(req.CardHolder),
		GatewayMessage: result.Message,
	}
	if result.Success {
		payment.Status = entity.PaymentStatusCompleted
		payment.TransactionID = &result.TransactionID
	}

	if err := u.paymentRepo.Create(ctx, payment); err != nil {
		u.log.Warnf("Failed to record payment for appointment %s: %+v", appointment.ID, err)
		return nil, err
	}

	if result.Success {
		if err := u.appointmentRepo.MarkPaid(ctx, appointment.ID, payment.ID); err != nil {
			u.log.Errorf("Payment %s recorded but appointment %s not marked paid: %+v", payment.ID, appointment.ID, err)
			return nil, err
		}
		u.log.Infof("Payment completed: id=%s, appointment=%s, txn=%s", payment.ID, appointment.ID, result.TransactionID)
	} else {
		u.log.Infof("Payment declined: appointment=%s", appointment.ID)
	}

	return converter.PaymentToResponse(payment), nil
}

// validateCard applies the sandbox card rules and returns the card
// number with separators stripped.
func (u *paymentUsecase) validateCard(req *dto.ProcessPaymentRequest) (string, error) {
	cardNumber := nonDigits.ReplaceAllString(req.CardNumber, "")
	if len(cardNumber) != 16 {
		return "", ErrInvalidCardNumber
	}

	if !expiryPattern.MatchString(req.ExpiryDate) {
		return "", ErrInvalidExpiryDate
	}
	parts := strings.Split(req.ExpiryDate, "/")
	month, _ := strconv.Atoi(parts[0])
	year, _ := strconv.Atoi(parts[1])
	expiry := time.Date(2000+year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	now := u.now().UTC()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if expiry.Before(currentMonth) {
		return "", ErrCardExpired
	}

	if !cvvPattern.MatchString(req.CVV) {
		return "", ErrInvalidCVV
	}

	if len(strings.TrimSpace(req.CardHolder)) < 2 {
		return "", ErrInvalidCardHolder
	}

	return cardNumber, nil
}
