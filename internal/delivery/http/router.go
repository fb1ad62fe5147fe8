package http

import (
	"net/http"

	"dental-clinic-api/internal/delivery/http/handler"
	"dental-clinic-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	appointmentHandler *handler.AppointmentHandler
	patientHandler     *handler.PatientHandler
	dentistHandler     *handler.DentistHandler
	serviceHandler     *handler.ServiceHandler
	specialtyHandler   *handler.SpecialtyHandler
	userHandler        *handler.UserHandler
	reportHandler      *handler.ReportHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	patientHandler *handler.PatientHandler,
	dentistHandler *handler.DentistHandler,
	serviceHandler *handler.ServiceHandler,
	specialtyHandler *handler.SpecialtyHandler,
	userHandler *handler.UserHandler,
	reportHandler *handler.ReportHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		appointmentHandler: appointmentHandler,
		patientHandler:     patientHandler,
		dentistHandler:     dentistHandler,
		serviceHandler:     serviceHandler,
		specialtyHandler:   specialtyHandler,
		userHandler:        userHandler,
		reportHandler:      reportHandler,
		auditLogHandler:    auditLogHandler,
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
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Staff routes: any authenticated clinic role
	staff := api.PathPrefix("").Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireStaff)

	staff.HandleFunc("/appointments", r.appointmentHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/appointments/{id}", r.appointmentHandler.GetByID).Methods(http.MethodGet)
	staff.HandleFunc("/appointments/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)

	staff.HandleFunc("/patients", r.patientHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id}", r.patientHandler.GetByID).Methods(http.MethodGet)

	staff.HandleFunc("/dentists", r.dentistHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/dentists/{id}", r.dentistHandler.GetByID).Methods(http.MethodGet)

	staff.HandleFunc("/services", r.serviceHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/services/{id}", r.serviceHandler.GetByID).Methods(http.MethodGet)

	staff.HandleFunc("/specialties", r.specialtyHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/specialties/{id}", r.specialtyHandler.GetByID).Methods(http.MethodGet)

	// Front desk routes: booking and billing
	frontDesk := api.PathPrefix("").Subrouter()
	frontDesk.Use(r.authMiddleware.Authenticate)
	frontDesk.Use(middleware.RequireFrontDesk)

	frontDesk.HandleFunc("/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)
	frontDesk.HandleFunc("/appointments/{id}/settle", r.appointmentHandler.Settle).Methods(http.MethodPost)

	frontDesk.HandleFunc("/patients", r.patientHandler.Create).Methods(http.MethodPost)
	frontDesk.HandleFunc("/patients/{id}", r.patientHandler.Update).Methods(http.MethodPut)

	frontDesk.HandleFunc("/reports/dashboard", r.reportHandler.DashboardStats).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/users", r.userHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/users", r.userHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.userHandler.GetByID).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.userHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}", r.userHandler.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/dentists", r.dentistHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/dentists/{id}", r.dentistHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/dentists/{id}", r.dentistHandler.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/services", r.serviceHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/services/{id}", r.serviceHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id}", r.serviceHandler.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/specialties", r.specialtyHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/specialties/{id}", r.specialtyHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/specialties/{id}", r.specialtyHandler.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/patients/{id}", r.patientHandler.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/audit-logs", r.auditLogHandler.List).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
