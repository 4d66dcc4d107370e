package repositories

import (
	"context"

	"frontdesk-backend/internal/models"
	"frontdesk-backend/internal/sheets"
)

// PatientRepository maps Patient-shaped worksheets. The same type serves the
// live Patient sheet and the Previous Patient archive.
type PatientRepository struct {
	Store sheets.Store
	Table string
}

func NewPatientRepository(store sheets.Store) *PatientRepository {
	return &PatientRepository{Store: store, Table: sheets.TablePatient}
}

func NewPreviousPatientRepository(store sheets.Store) *PatientRepository {
	return &PatientRepository{Store: store, Table: sheets.TablePreviousPatient}
}

func patientFromRow(r sheets.Row) models.Patient {
	return models.Patient{
		Timestamp: r["Timestamp"],
		Bed:       r["Bed"],
		Code:      r["Code"],
		Name:      r["Name"],
		Age:       r["Age"],
		Gender:    r["Gender"],
		Ward:      r["Ward"],
		Diagnosis: r["Diagnosis"],
		Complaint: r["Complaint"],
	}
}

// List returns a fresh snapshot in worksheet order.
func (r *PatientRepository) List(ctx context.Context) ([]models.Patient, error) {
	tbl, err := r.Store.ReadAll(ctx, r.Table)
	if err != nil {
		return nil, err
	}

	patients := make([]models.Patient, 0, tbl.Len())
	for _, row := range tbl.Rows {
		patients = append(patients, patientFromRow(row))
	}
	return patients, nil
}

func patientRow(p models.Patient) sheets.Row {
	row := make(sheets.Row, len(models.PatientColumns))
	for i, v := range p.Values() {
		row[models.PatientColumns[i]] = v
	}
	return row
}

func (r *PatientRepository) Create(ctx context.Context, p models.Patient) error {
	values, err := orderedValues(ctx, r.Store, r.Table, models.PatientColumns, patientRow(p), 0)
	if err != nil {
		return err
	}
	return r.Store.Append(ctx, r.Table, values)
}

// UpdateAt overwrites the row at a store index.
func (r *PatientRepository) UpdateAt(ctx context.Context, index int, p models.Patient) error {
	values, err := orderedValues(ctx, r.Store, r.Table, models.PatientColumns, patientRow(p), index)
	if err != nil {
		return err
	}
	return r.Store.UpdateAt(ctx, r.Table, index, values)
}

func (r *PatientRepository) DeleteAt(ctx context.Context, index int) error {
	return r.Store.DeleteAt(ctx, r.Table, index)
}
