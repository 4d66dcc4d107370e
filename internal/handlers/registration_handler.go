package handlers

import (
	"fmt"
	"net/http"

	"frontdesk-backend/internal/models"
	"frontdesk-backend/internal/services"
)

type RegistrationHandler struct {
	Service *services.RegistrationService
	views   *Views
}

func NewRegistrationHandler(s *services.RegistrationService, views *Views) *RegistrationHandler {
	return &RegistrationHandler{Service: s, views: views}
}

type registerView struct {
	Page
	Form    models.PatientForm
	Genders []string
}

func (h *RegistrationHandler) render(w http.ResponseWriter, status int, page Page, form models.PatientForm) {
	page.Title = "Register Patient"
	page.Menu = MenuRegister
	h.views.Render(w, status, "register.html", registerView{Page: page, Form: form, Genders: models.GenderOptions})
}

// Page shows an empty registration form.
func (h *RegistrationHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, Page{}, models.PatientForm{})
}

// patientFormFrom reads the eight patient fields of a posted form.
func patientFormFrom(r *http.Request) models.PatientForm {
	return models.PatientForm{
		Bed:       r.FormValue("bed"),
		Code:      r.FormValue("code"),
		Name:      r.FormValue("name"),
		Age:       r.FormValue("age"),
		Gender:    r.FormValue("gender"),
		Ward:      r.FormValue("ward"),
		Diagnosis: r.FormValue("diagnosis"),
		Complaint: r.FormValue("complaint"),
	}
}

// Register appends the submitted patient. On failure the entered values stay
// in the form.
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, Page{Error: "Invalid form submission"}, models.PatientForm{})
		return
	}
	form := patientFormFrom(r)

	patient, err := h.Service.Register(r.Context(), form)
	recordOutcome(MenuRegister, err)
	if err != nil {
		status, msg, hint := flowError(err)
		h.render(w, status, Page{Error: msg, Hint: hint}, form)
		return
	}

	h.render(w, http.StatusOK, Page{Success: fmt.Sprintf("Patient %s registered successfully.", patient.Name)}, models.PatientForm{})
}
