package services

import (
	"context"
	"time"

	"frontdesk-backend/internal/cache"
	"frontdesk-backend/internal/models"
	"frontdesk-backend/internal/repositories"
	"frontdesk-backend/internal/sheets"
	"frontdesk-backend/internal/timeutil"
)

var (
	alice = []string{"2024-01-01 10:00:00", "B1", "C1", "Alice", "40", "Female", "W1", "Flu", "Cough"}
	bob   = []string{"2024-01-01 11:00:00", "B2", "C2", "Bob", "50", "Male", "W2", "Fever", "Headache"}
	carol = []string{"2024-01-01 12:00:00", "B3", "C3", "Carol", "33", "Female", "W1", "Sprain", "Ankle pain"}
)

// flakyStore fails chosen operations on top of an in-memory store.
type flakyStore struct {
	*sheets.MemoryStore
	failAppend map[string]error
	failDelete error
	failUpdate error
	// lostDeleteReply applies DeleteAt but still reports this error
	lostDeleteReply error
}

func (f *flakyStore) Append(ctx context.Context, table string, values []string) error {
	if err := f.failAppend[table]; err != nil {
		return err
	}
	return f.MemoryStore.Append(ctx, table, values)
}

func (f *flakyStore) DeleteAt(ctx context.Context, table string, index int) error {
	if f.failDelete != nil {
		return f.failDelete
	}
	if f.lostDeleteReply != nil {
		if err := f.MemoryStore.DeleteAt(ctx, table, index); err != nil {
			return err
		}
		return f.lostDeleteReply
	}
	return f.MemoryStore.DeleteAt(ctx, table, index)
}

func (f *flakyStore) UpdateAt(ctx context.Context, table string, index int, values []string) error {
	if f.failUpdate != nil {
		return f.failUpdate
	}
	return f.MemoryStore.UpdateAt(ctx, table, index, values)
}

func newFlakyStore(patients ...[]string) *flakyStore {
	m := sheets.NewMemoryStore()
	m.Seed(sheets.TablePatient, models.PatientColumns, patients...)
	m.Seed(sheets.TablePreviousPatient, models.PatientColumns)
	m.Seed(sheets.TableVisitors, models.VisitorColumns)
	m.Seed(sheets.TableAvailability, []string{"Ward", "Free Beds"}, []string{"W1", "4"})
	return &flakyStore{MemoryStore: m, failAppend: map[string]error{}}
}

var fixedInstant = time.Date(2024, 2, 3, 14, 5, 6, 0, timeutil.MYT)

func fixedClock() timeutil.Clock {
	return func() time.Time { return fixedInstant }
}

func newPatientService(store sheets.Store) *PatientService {
	svc := NewPatientService(
		repositories.NewPatientRepository(store),
		repositories.NewPreviousPatientRepository(store),
		cache.NewJournal(nil),
	)
	svc.Clock = fixedClock()
	return svc
}

func validForm() models.PatientForm {
	return models.PatientForm{
		Bed: "B9", Code: "C9", Name: "Dana", Age: "29", Gender: models.GenderFemale,
		Ward: "W3", Diagnosis: "Migraine", Complaint: "Headache",
	}
}
