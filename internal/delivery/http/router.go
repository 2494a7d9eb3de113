package http

import (
	"net/http"

	"clinic-appointment-api/internal/delivery/http/handler"
	"clinic-appointment-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	appointmentHandler *handler.AppointmentHandler
	scheduleHandler    *handler.ScheduleHandler
	paymentHandler     *handler.PaymentHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	scheduleHandler *handler.ScheduleHandler,
	paymentHandler *handler.PaymentHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		appointmentHandler: appointmentHandler,
		scheduleHandler:    scheduleHandler,
		paymentHandler:     paymentHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Doctor availability (any authenticated user)
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.HandleFunc("/{id}/slots", r.scheduleHandler.GetAvailableSlots).Methods(http.MethodGet)

	// Appointments
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)

	patientOnly := appointments.NewRoute().Subrouter()
	patientOnly.Use(middleware.RequirePatient)
	patientOnly.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)

	doctorOnly := appointments.NewRoute().Subrouter()
	doctorOnly.Use(middleware.RequireDoctor)
	doctorOnly.HandleFunc("/today", r.appointmentHandler.GetTodayAppointments).Methods(http.MethodGet)
	doctorOnly.HandleFunc("/by-status", r.appointmentHandler.GetAppointmentsByStatus).Methods(http.MethodGet)
	doctorOnly.HandleFunc("/{id}/confirm", r.appointmentHandler.ConfirmAppointment).Methods(http.MethodPatch)

	appointments.HandleFunc("", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPatch)

	// Payments (patients pay for their own appointments)
	payments := api.PathPrefix("/payments").Subrouter()
	payments.Use(r.authMiddleware.Authenticate)
	payments.Use(middleware.RequirePatient)
	payments.HandleFunc("/process", r.paymentHandler.ProcessPayment).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
