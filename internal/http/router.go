package http

import (
	"net/http"

	"frontdesk-backend/internal/handlers"
	"frontdesk-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	pageHandler *handlers.PageHandler,
	registrationHandler *handlers.RegistrationHandler,
	patientHandler *handlers.PatientHandler,
	visitorHandler *handlers.VisitorHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	// Menu shell: /?menu=register|edit|visitors
	r.HandleFunc("/", pageHandler.Home).Methods("GET")

	// Registration
	r.HandleFunc("/patients/register", registrationHandler.Register).Methods("POST")

	// Edit / discharge
	r.HandleFunc("/patients/update", patientHandler.Update).Methods("POST")
	r.HandleFunc("/patients/discharge", patientHandler.Discharge).Methods("POST")
	r.HandleFunc("/patients/export.csv", reportHandler.PatientsCSV).Methods("GET")

	// Visitor log
	r.HandleFunc("/visitors", visitorHandler.Log).Methods("POST")
	r.HandleFunc("/visitors/export.pdf", reportHandler.VisitorsPDF).Methods("GET")

	registerOps(r, healthHandler)
	return r
}

// NewConfigErrorRouter serves the blocking configuration page on every path
// except the probes and metrics.
func NewConfigErrorRouter(configError *handlers.ConfigErrorHandler, healthHandler *handlers.HealthHandler) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	registerOps(r, healthHandler)
	r.PathPrefix("/").Handler(configError)
	return r
}

func registerOps(r *mux.Router, healthHandler *handlers.HealthHandler) {
	// Health checks
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
}

// Wrap applies the outer middleware chain shared by both routers.
func Wrap(h http.Handler, cors func(http.Handler) http.Handler) http.Handler {
	return middleware.PanicRecovery(cors(middleware.RequestLogging(h)))
}
