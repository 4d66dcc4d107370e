package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"frontdesk-backend/internal/models"
	"frontdesk-backend/internal/services"

	"github.com/rs/zerolog/log"
)

type PatientHandler struct {
	Service *services.PatientService
	views   *Views
}

func NewPatientHandler(s *services.PatientService, views *Views) *PatientHandler {
	return &PatientHandler{Service: s, views: views}
}

type editView struct {
	Page
	Empty    bool
	Options  []services.PatientOption
	Selected int
	Loaded   bool
	Key      models.SelectionKey
	Form     models.PatientForm
	Genders  []string
	Pending  []models.PendingMutation
}

// renderEdit re-reads Patient and shows the picker with the row at selected
// loaded into the form. A non-nil form replaces the stored values, which keeps
// user input visible after a failed submission.
func (h *PatientHandler) renderEdit(w http.ResponseWriter, r *http.Request, status int, page Page, selected int, form *models.PatientForm) {
	page.Title = "Edit / Discharge Patient"
	page.Menu = MenuEdit
	view := editView{Page: page, Selected: selected, Genders: models.GenderOptions}

	ctx := r.Context()
	if pending, err := h.Service.PendingDischarges(ctx); err == nil {
		view.Pending = pending
	} else {
		log.Warn().Err(err).Msg("[Patients] Failed to list unfinished discharges")
	}

	snapshot, err := h.Service.List(ctx)
	if err != nil {
		errStatus, msg, hint := flowError(err)
		if view.Error == "" {
			view.Error, view.Hint = msg, hint
		}
		if status < errStatus {
			status = errStatus
		}
		view.Empty = true
		h.views.Render(w, status, "edit.html", view)
		return
	}

	if len(snapshot) == 0 {
		view.Empty = true
		h.views.Render(w, status, "edit.html", view)
		return
	}

	view.Options = services.Options(snapshot)
	if selected < 0 || selected >= len(snapshot) {
		selected = 0
	}
	view.Selected = selected
	view.Loaded = true

	p := snapshot[selected]
	view.Key = models.SelectionKey{Name: p.Name, Code: p.Code, Position: selected}
	view.Form = models.FormOf(p)
	if form != nil {
		view.Form = *form
	}

	h.views.Render(w, status, "edit.html", view)
}

// EditPage shows the picker and the form for ?patient=<position>.
func (h *PatientHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	selected, err := strconv.Atoi(r.URL.Query().Get("patient"))
	if err != nil {
		selected = 0
	}
	h.renderEdit(w, r, http.StatusOK, Page{}, selected, nil)
}

// selectionKeyFrom reads the hidden fields identifying the edited row.
func selectionKeyFrom(r *http.Request) (models.SelectionKey, error) {
	pos, err := strconv.Atoi(r.FormValue("key_position"))
	if err != nil {
		return models.SelectionKey{}, fmt.Errorf("invalid position: %w", err)
	}
	return models.SelectionKey{
		Name:     r.FormValue("key_name"),
		Code:     r.FormValue("key_code"),
		Position: pos,
	}, nil
}

// Update rewrites the selected row in place.
func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderEdit(w, r, http.StatusBadRequest, Page{Error: "Invalid form submission"}, 0, nil)
		return
	}
	key, err := selectionKeyFrom(r)
	if err != nil {
		h.renderEdit(w, r, http.StatusBadRequest, Page{Error: "Invalid patient selection"}, 0, nil)
		return
	}
	form := patientFormFrom(r)

	updated, err := h.Service.Update(r.Context(), models.UpdatePatientRequest{Key: key, Form: form})
	recordOutcome(MenuEdit, err)
	if err != nil {
		status, msg, hint := flowError(err)
		h.renderEdit(w, r, status, Page{Error: msg, Hint: hint}, key.Position, &form)
		return
	}

	h.renderEdit(w, r, http.StatusOK, Page{Success: fmt.Sprintf("Patient %s updated.", updated.Name)}, key.Position, nil)
}

// Discharge moves the selected row to Previous Patient.
func (h *PatientHandler) Discharge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderEdit(w, r, http.StatusBadRequest, Page{Error: "Invalid form submission"}, 0, nil)
		return
	}
	key, err := selectionKeyFrom(r)
	if err != nil {
		h.renderEdit(w, r, http.StatusBadRequest, Page{Error: "Invalid patient selection"}, 0, nil)
		return
	}

	discharged, err := h.Service.Discharge(r.Context(), key)
	recordOutcome("discharge", err)
	if err != nil {
		status, msg, hint := flowError(err)
		h.renderEdit(w, r, status, Page{Error: msg, Hint: hint}, key.Position, nil)
		return
	}

	h.renderEdit(w, r, http.StatusOK, Page{Success: fmt.Sprintf("Patient %s discharged and moved to Previous Patient.", discharged.Name)}, 0, nil)
}
