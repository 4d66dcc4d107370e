package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"frontdesk-backend/internal/models"
	"frontdesk-backend/internal/repositories"
	"frontdesk-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReportService renders downloadable copies of the worksheets.
type ReportService struct {
	Patients *repositories.PatientRepository
	Visitors *repositories.VisitorRepository
	Clock    timeutil.Clock
}

func NewReportService(patients *repositories.PatientRepository, visitors *repositories.VisitorRepository) *ReportService {
	return &ReportService{Patients: patients, Visitors: visitors, Clock: timeutil.Now}
}

// PatientsCSV exports the current Patient sheet with its canonical header.
func (s *ReportService) PatientsCSV(ctx context.Context) ([]byte, error) {
	patients, err := s.Patients.List(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(models.PatientColumns)
	for _, p := range patients {
		values := p.Values()
		for i := range values {
			values[i] = csvSafe(values[i])
		}
		w.Write(values)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// csvSafe quotes cells a spreadsheet app would otherwise evaluate as formulas.
func csvSafe(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}

// VisitorLogPDF renders the Visitors sheet as an A4 table.
func (s *ReportService) VisitorLogPDF(ctx context.Context) ([]byte, error) {
	visitors, err := s.Visitors.List(ctx)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Hospital Front Desk - Visitor Log", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", s.Clock.StampNow().Combined), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	widths := []float64{30, 30, 45, 30, 30, 25}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	for i, col := range models.VisitorColumns {
		pdf.CellFormat(widths[i], 7, col, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	if len(visitors) == 0 {
		pdf.CellFormat(190, 7, "No visitors logged", "1", 1, "C", false, 0, "")
	}
	for _, v := range visitors {
		for i, val := range v.Values() {
			pdf.CellFormat(widths[i], 6, val, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(3)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(190, 6, fmt.Sprintf("Total movements: %d", len(visitors)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render visitor log pdf: %w", err)
	}
	return buf.Bytes(), nil
}
