package usecase

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"clinic-appointment-api/internal/delivery/http/middleware"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func patientCtx(id uuid.UUID) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, id)
	return context.WithValue(ctx, middleware.RoleKey, entity.RolePatient)
}

func doctorCtx(id uuid.UUID) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, id)
	return context.WithValue(ctx, middleware.RoleKey, entity.RoleDoctor)
}

// fakeUserRepo serves fixed users from memory.
type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindActiveByRole(ctx context.Context, id uuid.UUID, role entity.Role) (*entity.User, error) {
	u := r.users[id]
	if u == nil || u.Role != role || !u.IsActive {
		return nil, nil
	}
	return u, nil
}

// fakeAppointmentRepo mimics the storage-level slot constraint: Create
// rejects a second live appointment on the same (doctor, date, time)
// with the same unique-violation error Postgres would raise.
type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*entity.Appointment)}
}

func slotKey(doctorID uuid.UUID, date time.Time, timeStr string) string {
	return doctorID.String() + "|" + date.Format("2006-01-02") + "|" + timeStr
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := slotKey(appointment.DoctorID, appointment.Date, appointment.Time)
	for _, a := range r.appointments {
		if a.IsLive() && slotKey(a.DoctorID, a.Date, a.Time) == key {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_appointments_doctor_slot"}
		}
	}

	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	clone := *appointment
	r.appointments[appointment.ID] = &clone
	return nil
}

func (r *fakeAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.appointments[id]
	if a == nil {
		return nil, nil
	}
	clone := *a
	return &clone, nil
}

func (r *fakeAppointmentRepo) FindByIDForUser(ctx context.Context, id, userID uuid.UUID, role entity.Role) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.appointments[id]
	if a == nil {
		return nil, nil
	}
	owner := a.PatientID
	if role == entity.RoleDoctor {
		owner = a.DoctorID
	}
	if owner != userID {
		return nil, nil
	}
	clone := *a
	return &clone, nil
}

func (r *fakeAppointmentRepo) FindActiveSlot(ctx context.Context, doctorID uuid.UUID, date time.Time, timeStr string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := slotKey(doctorID, date, timeStr)
	for _, a := range r.appointments {
		if a.IsLive() && slotKey(a.DoctorID, a.Date, a.Time) == key {
			clone := *a
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepo) FindBookedTimes(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var times []string
	for _, a := range r.appointments {
		if a.IsLive() && a.DoctorID == doctorID && a.Date.Equal(date) {
			times = append(times, a.Time)
		}
	}
	sort.Strings(times)
	return times, nil
}

func (r *fakeAppointmentRepo) FindByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.IsLive() && a.DoctorID == doctorID && a.Date.Equal(date) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

func (r *fakeAppointmentRepo) FindByDoctorAndStatus(ctx context.Context, doctorID uuid.UUID, status entity.AppointmentStatus) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && a.Status == status {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) Confirm(ctx context.Context, id uuid.UUID, notes string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.appointments[id]
	if a == nil || !a.IsLive() || a.PaymentState != entity.PaymentStatePaid {
		return 0, nil
	}
	a.Status = entity.AppointmentStatusConfirmed
	if notes != "" {
		a.Notes = notes
	}
	return 1, nil
}

func (r *fakeAppointmentRepo) Cancel(ctx context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.appointments[id]
	if a == nil || !a.IsLive() {
		return 0, nil
	}
	a.Status = entity.AppointmentStatusCancelled
	return 1, nil
}

func (r *fakeAppointmentRepo) MarkPaid(ctx context.Context, id, paymentID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a := r.appointments[id]; a != nil {
		a.PaymentState = entity.PaymentStatePaid
		a.PaymentID = &paymentID
	}
	return nil
}

// fakePaymentRepo records payment attempts in memory.
type fakePaymentRepo struct {
	mu       sync.Mutex
	payments []*entity.Payment
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	clone := *payment
	r.payments = append(r.payments, &clone)
	return nil
}

func (r *fakePaymentRepo) FindByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.payments) - 1; i >= 0; i-- {
		if r.payments[i].AppointmentID == appointmentID {
			clone := *r.payments[i]
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) FindByPatient(ctx context.Context, patientID uuid.UUID) ([]entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Payment
	for _, p := range r.payments {
		if p.PatientID == patientID {
			out = append(out, *p)
		}
	}
	return out, nil
}

// fakeGateway returns a scripted result and records the charged card.
type fakeGateway struct {
	result      service.GatewayResult
	chargedCard string
}

func (g *fakeGateway) Charge(cardNumber string) service.GatewayResult {
	g.chargedCard = cardNumber
	return g.result
}

func approvingGateway() *fakeGateway {
	return &fakeGateway{result: service.GatewayResult{
		Success:       true,
		TransactionID: "TXN_1760346000000_deadbeef",
		Message:       "Payment processed successfully",
	}}
}

func decliningGateway() *fakeGateway {
	return &fakeGateway{result: service.GatewayResult{
		Success: false,
		Message: "Payment failed - Card declined",
	}}
}

func newTestDoctor() *entity.User {
	return &entity.User{
		ID:             uuid.New(),
		Name:           "Dr. Grace Hale",
		Email:          "grace.hale@clinic.test",
		Role:           entity.RoleDoctor,
		Specialization: "Cardiology",
		IsActive:       true,
	}
}

func newTestPatient() *entity.User {
	return &entity.User{
		ID:       uuid.New(),
		Name:     "Sam Porter",
		Email:    "sam.porter@clinic.test",
		Role:     entity.RolePatient,
		IsActive: true,
	}
}
