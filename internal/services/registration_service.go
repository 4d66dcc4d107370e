package services

import (
	"context"
	"strings"

	"frontdesk-backend/internal/models"
	"frontdesk-backend/internal/repositories"
	"frontdesk-backend/internal/timeutil"

	"github.com/rs/zerolog/log"
)

type RegistrationService struct {
	Repo  *repositories.PatientRepository
	Clock timeutil.Clock
}

func NewRegistrationService(repo *repositories.PatientRepository) *RegistrationService {
	return &RegistrationService{Repo: repo, Clock: timeutil.Now}
}

// NormalizePatientForm trims surrounding whitespace from every field.
func NormalizePatientForm(f models.PatientForm) models.PatientForm {
	trim := strings.TrimSpace
	return models.PatientForm{
		Bed:       trim(f.Bed),
		Code:      trim(f.Code),
		Name:      trim(f.Name),
		Age:       trim(f.Age),
		Gender:    trim(f.Gender),
		Ward:      trim(f.Ward),
		Diagnosis: trim(f.Diagnosis),
		Complaint: trim(f.Complaint),
	}
}

// ValidatePatientForm requires all eight fields. The unselected gender option
// counts as empty.
func ValidatePatientForm(f models.PatientForm) error {
	fields := []struct {
		name  string
		value string
	}{
		{"Bed", f.Bed},
		{"Code", f.Code},
		{"Name", f.Name},
		{"Age", f.Age},
		{"Gender", f.Gender},
		{"Ward", f.Ward},
		{"Diagnosis", f.Diagnosis},
		{"Complaint", f.Complaint},
	}

	var missing []string
	for _, field := range fields {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Register validates the form and appends one stamped row to Patient.
// Repeated submissions append repeated rows.
func (s *RegistrationService) Register(ctx context.Context, form models.PatientForm) (*models.Patient, error) {
	form = NormalizePatientForm(form)
	if err := ValidatePatientForm(form); err != nil {
		return nil, err
	}

	patient := form.Stamped(s.Clock.StampNow().Combined)
	if err := s.Repo.Create(ctx, patient); err != nil {
		return nil, err
	}

	log.Info().Str("name", patient.Name).Str("code", patient.Code).Str("ward", patient.Ward).Msg("[Registration] Patient registered")
	return &patient, nil
}
