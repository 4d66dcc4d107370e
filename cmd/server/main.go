package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"time"

	"frontdesk-backend/internal/cache"
	"frontdesk-backend/internal/config"
	"frontdesk-backend/internal/handlers"
	"frontdesk-backend/internal/health"
	h "frontdesk-backend/internal/http"
	"frontdesk-backend/internal/logging"
	"frontdesk-backend/internal/middleware"
	"frontdesk-backend/internal/models"
	"frontdesk-backend/internal/repositories"
	"frontdesk-backend/internal/services"
	"frontdesk-backend/internal/sheets"

	"github.com/rs/zerolog/log"
)

// startConfigErrorMode serves the blocking configuration page until the
// credential bundle is provided and the service restarted.
func startConfigErrorMode(cfg *config.Config, views *handlers.Views, cause error) {
	log.Error().Err(cause).Msg("[Config] Starting in configuration-error mode, no flow is reachable")

	healthHandler := handlers.NewHealthHandler(health.NewConfigErrorChecker(cause))
	router := h.NewConfigErrorRouter(handlers.NewConfigErrorHandler(views, cause), healthHandler)
	handler := h.Wrap(router, middleware.NewCORS(cfg))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("Configuration-error mode running")
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}

// openStore connects the configured spreadsheet backend.
func openStore(ctx context.Context, cfg *config.Config) (sheets.Store, error) {
	if cfg.Sheets.Backend == config.BackendMemory {
		log.Warn().Msg("[Sheets] Using in-memory worksheets, data is lost on restart")
		return seededMemoryStore(), nil
	}

	creds, err := cfg.Credentials(ctx)
	if err != nil {
		return nil, err
	}

	return sheets.NewGoogleStore(ctx, sheets.GoogleConfig{
		SpreadsheetID:   cfg.Sheets.SpreadsheetID,
		SpreadsheetName: cfg.Sheets.SpreadsheetName,
		Credentials:     creds,
		RetryMax:        cfg.Sheets.RetryMax,
		Timeout:         cfg.Sheets.Timeout,
	})
}

// seededMemoryStore creates the four worksheets with their headers.
func seededMemoryStore() *sheets.MemoryStore {
	m := sheets.NewMemoryStore()
	m.Seed(sheets.TablePatient, models.PatientColumns)
	m.Seed(sheets.TablePreviousPatient, models.PatientColumns)
	m.Seed(sheets.TableVisitors, models.VisitorColumns)
	m.Seed(sheets.TableAvailability, []string{"Ward", "Beds", "Available"})
	return m
}

func main() {
	// Parse command-line flags
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	logging.Setup(cfg.Log.Level, cfg.Log.Console)

	if *port != 0 {
		cfg.Server.Port = *port
	}

	views := handlers.NewViews()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	store, err := openStore(ctx, cfg)
	cancel()
	if errors.Is(err, config.ErrConfigurationMissing) {
		startConfigErrorMode(cfg, views, err)
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("[Sheets] Failed to open spreadsheet")
	}
	store = sheets.WithMetrics(store)
	log.Info().Str("backend", cfg.Sheets.Backend).Msg("[Sheets] Store ready")

	// Initialize Redis (optional - journal falls back to memory if unavailable)
	var redisCheck func() bool
	if cfg.Redis.Enabled {
		if err := cache.Init(cache.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}); err != nil {
			log.Warn().Err(err).Msg("[Redis] Unavailable, recovery journal kept in memory")
		} else {
			log.Info().Str("addr", cfg.Redis.Addr).Msg("[Redis] Connected")
		}
		redisCheck = cache.IsHealthy
		defer cache.Close()
	}
	journal := cache.NewJournal(cache.GetClient())

	// Initialize repositories
	patientRepo := repositories.NewPatientRepository(store)
	previousPatientRepo := repositories.NewPreviousPatientRepository(store)
	visitorRepo := repositories.NewVisitorRepository(store)
	availabilityRepo := repositories.NewAvailabilityRepository(store)

	// Initialize services
	registrationService := services.NewRegistrationService(patientRepo)
	patientService := services.NewPatientService(patientRepo, previousPatientRepo, journal)
	visitorService := services.NewVisitorService(visitorRepo, availabilityRepo)
	reportService := services.NewReportService(patientRepo, visitorRepo)

	// Initialize handlers
	registrationHandler := handlers.NewRegistrationHandler(registrationService, views)
	patientHandler := handlers.NewPatientHandler(patientService, views)
	visitorHandler := handlers.NewVisitorHandler(visitorService, views)
	reportHandler := handlers.NewReportHandler(reportService)
	pageHandler := handlers.NewPageHandler(views, registrationHandler, patientHandler, visitorHandler)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(store, redisCheck))

	router := h.NewRouter(pageHandler, registrationHandler, patientHandler, visitorHandler, reportHandler, healthHandler)

	// Wrap with panic recovery, CORS and request logging
	handler := h.Wrap(router, middleware.NewCORS(cfg))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("Server running")
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}
