package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"frontdesk-backend/internal/models"
	"frontdesk-backend/internal/repositories"
	"frontdesk-backend/internal/sheets"
)

func newVisitorService(store sheets.Store) *VisitorService {
	svc := NewVisitorService(repositories.NewVisitorRepository(store), repositories.NewAvailabilityRepository(store))
	svc.Clock = fixedClock()
	return svc
}

func TestVisitorLogAppendsOneRow(t *testing.T) {
	store := newFlakyStore()
	svc := newVisitorService(store)

	if _, err := svc.Log(context.Background(), models.CreateVisitorRequest{UID: "V1", Ward: "A", Bed: "3", Direction: "IN"}); err != nil {
		t.Fatalf("Log: %v", err)
	}

	rows := store.Rows(sheets.TableVisitors)
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	want := []string{"14:05:06", "2024-02-03", "V1", "A", "3", "IN"}
	for i := range want {
		if rows[0][i] != want[i] {
			t.Errorf("column %s: expected %q, got %q", models.VisitorColumns[i], want[i], rows[0][i])
		}
	}
}

func TestVisitorLogDirection(t *testing.T) {
	tests := map[string]string{"OUT": "OUT", "IN": "IN", "": "IN", "sideways": "IN"}
	for in, want := range tests {
		store := newFlakyStore()
		v, err := newVisitorService(store).Log(context.Background(), models.CreateVisitorRequest{Direction: in})
		if err != nil {
			t.Fatalf("Log(%q): %v", in, err)
		}
		if v.Direction != want {
			t.Errorf("direction %q: expected %s, got %s", in, want, v.Direction)
		}
	}
}

func TestVisitorAvailabilityPassthrough(t *testing.T) {
	tbl, err := newVisitorService(newFlakyStore()).AvailabilityTable(context.Background())
	if err != nil {
		t.Fatalf("AvailabilityTable: %v", err)
	}
	if tbl.Len() != 1 || tbl.Rows[0]["Free Beds"] != "4" {
		t.Errorf("unexpected availability %+v", tbl)
	}
}

func TestReports(t *testing.T) {
	store := newFlakyStore(alice, bob)
	store.MemoryStore.Append(context.Background(), sheets.TableVisitors, []string{"09:00:00", "2024-01-01", "V1", "A", "3", "IN"})
	svc := NewReportService(repositories.NewPatientRepository(store), repositories.NewVisitorRepository(store))
	svc.Clock = fixedClock()

	csvData, err := svc.PatientsCSV(context.Background())
	if err != nil {
		t.Fatalf("PatientsCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "Timestamp,Bed,Code") || !strings.Contains(lines[2], "Bob") {
		t.Errorf("unexpected csv:\n%s", csvData)
	}

	pdfData, err := svc.VisitorLogPDF(context.Background())
	if err != nil {
		t.Fatalf("VisitorLogPDF: %v", err)
	}
	if !bytes.HasPrefix(pdfData, []byte("%PDF")) {
		t.Error("expected a PDF document")
	}
}

func TestPatientsCSVNeutralizesFormulas(t *testing.T) {
	risky := []string{"2024-01-01 10:00:00", "B1", "=HYPERLINK(\"http://x\")", "Eve", "+1", "Female", "-W1", "@SUM(A1)", "Cough"}
	store := newFlakyStore(risky)
	svc := NewReportService(repositories.NewPatientRepository(store), repositories.NewVisitorRepository(store))

	data, err := svc.PatientsCSV(context.Background())
	if err != nil {
		t.Fatalf("PatientsCSV: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	row := records[1]
	want := map[int]string{2: "'=HYPERLINK(\"http://x\")", 3: "Eve", 4: "'+1", 6: "'-W1", 7: "'@SUM(A1)"}
	for i, v := range want {
		if row[i] != v {
			t.Errorf("column %s: expected %q, got %q", models.PatientColumns[i], v, row[i])
		}
	}
	if store.Rows(sheets.TablePatient)[0][2] != risky[2] {
		t.Error("the stored sheet must keep the original value")
	}
}
