package services

import (
	"context"
	"errors"
	"fmt"

	"frontdesk-backend/internal/metrics"
	"frontdesk-backend/internal/models"
	"frontdesk-backend/internal/repositories"
	"frontdesk-backend/internal/sheets"
	"frontdesk-backend/internal/timeutil"

	"github.com/rs/zerolog/log"
)

// MutationJournal keeps two-step operations between their steps.
type MutationJournal interface {
	Record(ctx context.Context, m *models.PendingMutation) error
	Resolve(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.PendingMutation, error)
	Find(ctx context.Context, operation string, p models.Patient) (*models.PendingMutation, error)
}

// PatientService edits and discharges rows of the Patient sheet.
type PatientService struct {
	Patients *repositories.PatientRepository
	Archive  *repositories.PatientRepository
	Journal  MutationJournal
	Clock    timeutil.Clock
}

func NewPatientService(patients, archive *repositories.PatientRepository, journal MutationJournal) *PatientService {
	return &PatientService{
		Patients: patients,
		Archive:  archive,
		Journal:  journal,
		Clock:    timeutil.Now,
	}
}

// PatientOption is one entry of the patient picker.
type PatientOption struct {
	Label    string
	Name     string
	Code     string
	Position int
}

// Options builds picker entries. Repeated "Name - Code" labels get a
// " (#n)" suffix so every option can be told apart.
func Options(snapshot []models.Patient) []PatientOption {
	total := make(map[string]int, len(snapshot))
	for _, p := range snapshot {
		total[p.Label()]++
	}

	seen := make(map[string]int, len(snapshot))
	opts := make([]PatientOption, 0, len(snapshot))
	for i, p := range snapshot {
		label := p.Label()
		seen[label]++
		if total[label] > 1 {
			label = fmt.Sprintf("%s (#%d)", label, seen[label])
		}
		opts = append(opts, PatientOption{Label: label, Name: p.Name, Code: p.Code, Position: i})
	}
	return opts
}

// ResolveStoreIndex maps a selection onto a worksheet row index using the
// given snapshot. The row at key.Position wins when it still carries the
// selected Name and Code; otherwise the selection must match exactly one row.
func ResolveStoreIndex(snapshot []models.Patient, key models.SelectionKey) (int, error) {
	matches := func(p models.Patient) bool {
		return p.Name == key.Name && p.Code == key.Code
	}

	if key.Position >= 0 && key.Position < len(snapshot) && matches(snapshot[key.Position]) {
		return sheets.StoreIndex(key.Position), nil
	}

	found, count := -1, 0
	for i, p := range snapshot {
		if matches(p) {
			if found < 0 {
				found = i
			}
			count++
		}
	}
	switch count {
	case 0:
		return 0, fmt.Errorf("%w: %s - %s", ErrPatientNotFound, key.Name, key.Code)
	case 1:
		return sheets.StoreIndex(found), nil
	default:
		return 0, fmt.Errorf("%w: %d rows are labelled %s - %s", ErrAmbiguousSelection, count, key.Name, key.Code)
	}
}

// List returns a fresh Patient snapshot.
func (s *PatientService) List(ctx context.Context) ([]models.Patient, error) {
	return s.Patients.List(ctx)
}

// Select re-reads Patient and returns the selected row and its store index.
func (s *PatientService) Select(ctx context.Context, key models.SelectionKey) (*models.Patient, int, error) {
	snapshot, err := s.Patients.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	index, err := ResolveStoreIndex(snapshot, key)
	if err != nil {
		return nil, 0, err
	}
	p := snapshot[index-sheets.FirstDataRow]
	return &p, index, nil
}

// Update rewrites the selected row in place with a fresh timestamp. The row
// keeps its position and the sheet keeps its row count.
func (s *PatientService) Update(ctx context.Context, req models.UpdatePatientRequest) (*models.Patient, error) {
	form := NormalizePatientForm(req.Form)
	if err := ValidatePatientForm(form); err != nil {
		return nil, err
	}

	_, index, err := s.Select(ctx, req.Key)
	if err != nil {
		return nil, err
	}

	updated := form.Stamped(s.Clock.StampNow().Combined)
	if err := s.Patients.UpdateAt(ctx, index, updated); err != nil {
		return nil, err
	}

	log.Info().Int("row", index).Str("name", updated.Name).Str("code", updated.Code).Msg("[Patients] Patient updated")
	return &updated, nil
}

// Discharge copies the selected row, as currently stored, to Previous Patient
// and then removes it from Patient. The archive append goes first so a
// failure never loses the record. If the removal fails the journal keeps the
// operation open and a repeated Discharge skips the second append.
func (s *PatientService) Discharge(ctx context.Context, key models.SelectionKey) (*models.Patient, error) {
	record, index, err := s.Select(ctx, key)
	if errors.Is(err, ErrPatientNotFound) {
		// The row may have gone after the archive step, e.g. a delete that
		// applied remotely but reported an error.
		if finished := s.finishVanished(ctx, key); finished != nil {
			return finished, nil
		}
	}
	if err != nil {
		return nil, err
	}

	pending, err := s.Journal.Find(ctx, models.MutationDischarge, *record)
	if err != nil {
		log.Warn().Err(err).Msg("[Patients] Recovery journal unavailable, archiving unconditionally")
		pending = nil
	}

	if pending == nil {
		if err := s.Archive.Create(ctx, *record); err != nil {
			return nil, err
		}
		pending = &models.PendingMutation{
			Operation: models.MutationDischarge,
			Step:      models.StepArchived,
			Patient:   *record,
			CreatedAt: timeutil.Now(),
		}
		if err := s.Journal.Record(ctx, pending); err != nil {
			log.Warn().Err(err).Str("name", record.Name).Msg("[Patients] Failed to journal archived discharge")
		}
	} else {
		log.Info().Str("journal_id", pending.ID).Str("name", record.Name).Msg("[Patients] Resuming discharge, already archived")
	}

	if err := s.Patients.DeleteAt(ctx, index); err != nil {
		metrics.PartialMutationsTotal.WithLabelValues(models.MutationDischarge).Inc()
		pending.Error = err.Error()
		if jerr := s.Journal.Record(ctx, pending); jerr != nil {
			log.Warn().Err(jerr).Msg("[Patients] Failed to journal discharge error")
		}
		log.Error().Err(err).Int("row", index).Str("name", record.Name).Str("code", record.Code).
			Msg("[Patients] Discharge archived but not removed from Patient")
		return nil, &PartialMutationError{
			Operation: models.MutationDischarge,
			Completed: models.StepArchived,
			Hint: fmt.Sprintf("%s has been copied to Previous Patient but is still listed in Patient. "+
				"Press Delete again to finish; the record will not be archived twice.", record.Label()),
			Err: err,
		}
	}

	if pending.ID != "" {
		if err := s.Journal.Resolve(ctx, pending.ID); err != nil {
			log.Warn().Err(err).Str("journal_id", pending.ID).Msg("[Patients] Failed to resolve journal entry")
		}
	}

	log.Info().Int("row", index).Str("name", record.Name).Str("code", record.Code).Msg("[Patients] Patient discharged")
	return record, nil
}

// finishVanished resolves open discharges for a Name and Code that no longer
// appear in Patient and returns the archived record, or nil if none was open.
func (s *PatientService) finishVanished(ctx context.Context, key models.SelectionKey) *models.Patient {
	entries, err := s.Journal.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("[Patients] Recovery journal unavailable")
		return nil
	}

	var finished *models.Patient
	for i := range entries {
		e := entries[i]
		if e.Operation != models.MutationDischarge || e.Patient.Name != key.Name || e.Patient.Code != key.Code {
			continue
		}
		if err := s.Journal.Resolve(ctx, e.ID); err != nil {
			log.Warn().Err(err).Str("journal_id", e.ID).Msg("[Patients] Failed to resolve journal entry")
			continue
		}
		log.Info().Str("journal_id", e.ID).Str("name", e.Patient.Name).Msg("[Patients] Discharge already complete, journal entry resolved")
		finished = &e.Patient
	}
	return finished
}

// PendingDischarges lists discharges that were archived but not yet removed.
// Entries whose record has already left Patient are resolved on the way.
func (s *PatientService) PendingDischarges(ctx context.Context) ([]models.PendingMutation, error) {
	entries, err := s.Journal.List(ctx)
	if err != nil || len(entries) == 0 {
		return entries, err
	}

	snapshot, err := s.Patients.List(ctx)
	if err != nil {
		return entries, nil
	}
	present := make(map[models.Patient]bool, len(snapshot))
	for _, p := range snapshot {
		present[p] = true
	}

	open := entries[:0]
	for _, e := range entries {
		if e.Operation == models.MutationDischarge && !present[e.Patient] {
			if err := s.Journal.Resolve(ctx, e.ID); err == nil {
				continue
			}
		}
		open = append(open, e)
	}
	return open, nil
}
