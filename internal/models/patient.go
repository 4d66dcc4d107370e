package models

import "fmt"

// Gender values offered by the registration form. The empty value is the
// unselected option and fails validation.
const (
	GenderUnset  = ""
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// GenderOptions in form order
var GenderOptions = []string{GenderUnset, GenderMale, GenderFemale}

// PatientColumns is the header of the Patient and Previous Patient worksheets.
var PatientColumns = []string{"Timestamp", "Bed", "Code", "Name", "Age", "Gender", "Ward", "Diagnosis", "Complaint"}

// Patient is one row of the Patient worksheet. It has no stored id; a row is
// addressed by its position in the current snapshot.
type Patient struct {
	Timestamp string `json:"timestamp"`
	Bed       string `json:"bed"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Age       string `json:"age"`
	Gender    string `json:"gender"`
	Ward      string `json:"ward"`
	Diagnosis string `json:"diagnosis"`
	Complaint string `json:"complaint"`
}

// Values returns the row in PatientColumns order.
func (p Patient) Values() []string {
	return []string{p.Timestamp, p.Bed, p.Code, p.Name, p.Age, p.Gender, p.Ward, p.Diagnosis, p.Complaint}
}

// Label is the text shown in the patient picker.
func (p Patient) Label() string {
	return fmt.Sprintf("%s - %s", p.Name, p.Code)
}

// PatientForm carries the eight user-entered fields of a patient.
type PatientForm struct {
	Bed       string `json:"bed"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Age       string `json:"age"`
	Gender    string `json:"gender"`
	Ward      string `json:"ward"`
	Diagnosis string `json:"diagnosis"`
	Complaint string `json:"complaint"`
}

// FormOf pre-fills a form from a stored patient.
func FormOf(p Patient) PatientForm {
	return PatientForm{
		Bed:       p.Bed,
		Code:      p.Code,
		Name:      p.Name,
		Age:       p.Age,
		Gender:    p.Gender,
		Ward:      p.Ward,
		Diagnosis: p.Diagnosis,
		Complaint: p.Complaint,
	}
}

// Stamped builds the stored patient with the given timestamp.
func (f PatientForm) Stamped(timestamp string) Patient {
	return Patient{
		Timestamp: timestamp,
		Bed:       f.Bed,
		Code:      f.Code,
		Name:      f.Name,
		Age:       f.Age,
		Gender:    f.Gender,
		Ward:      f.Ward,
		Diagnosis: f.Diagnosis,
		Complaint: f.Complaint,
	}
}

// SelectionKey identifies the patient picked on the edit page: the visible
// Name and Code plus the snapshot position the option was rendered from.
type SelectionKey struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Position int    `json:"position"`
}

// UpdatePatientRequest is the edit form submission.
type UpdatePatientRequest struct {
	Key  SelectionKey `json:"key"`
	Form PatientForm  `json:"form"`
}
