package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"frontdesk-backend/internal/services"
	"frontdesk-backend/pkg/utils"

	"github.com/rs/zerolog/log"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// PatientsCSV handles GET /patients/export.csv
func (h *ReportHandler) PatientsCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	csvData, err := h.Service.PatientsCSV(ctx)
	if err != nil {
		log.Error().Err(err).Msg("[Reports] Patient CSV failed")
		status, msg, _ := flowError(err)
		http.Error(w, msg, status)
		return
	}

	filename := fmt.Sprintf("patients_%s.csv", h.Service.Clock.StampNow().Date)
	utils.Download(w, "text/csv", filename, csvData)
}

// VisitorsPDF handles GET /visitors/export.pdf
func (h *ReportHandler) VisitorsPDF(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	pdfData, err := h.Service.VisitorLogPDF(ctx)
	if err != nil {
		log.Error().Err(err).Msg("[Reports] Visitor PDF failed")
		status, msg, _ := flowError(err)
		http.Error(w, msg, status)
		return
	}

	filename := fmt.Sprintf("visitors_%s.pdf", h.Service.Clock.StampNow().Date)
	utils.Download(w, "application/pdf", filename, pdfData)
}
