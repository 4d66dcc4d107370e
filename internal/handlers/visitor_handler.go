package handlers

import (
	"fmt"
	"net/http"

	"frontdesk-backend/internal/models"
	"frontdesk-backend/internal/services"
)

type VisitorHandler struct {
	Service *services.VisitorService
	views   *Views
}

func NewVisitorHandler(s *services.VisitorService, views *Views) *VisitorHandler {
	return &VisitorHandler{Service: s, views: views}
}

type visitorsView struct {
	Page
	AvailabilityHeader []string
	AvailabilityRows   [][]string
	VisitorColumns     []string
	Visitors           []models.Visitor
	Form               models.CreateVisitorRequest
	Directions         []string
}

func (h *VisitorHandler) render(w http.ResponseWriter, r *http.Request, status int, page Page, form models.CreateVisitorRequest) {
	page.Title = "Visitor Log"
	page.Menu = MenuVisitors
	if form.Direction == "" {
		form.Direction = models.DirectionIn
	}
	view := visitorsView{
		Page:           page,
		VisitorColumns: models.VisitorColumns,
		Form:           form,
		Directions:     models.DirectionOptions,
	}

	ctx := r.Context()
	fail := func(err error) {
		errStatus, msg, hint := flowError(err)
		if view.Error == "" {
			view.Error, view.Hint = msg, hint
		}
		if status < errStatus {
			status = errStatus
		}
	}

	if tbl, err := h.Service.AvailabilityTable(ctx); err != nil {
		fail(err)
	} else if tbl.Len() > 0 {
		view.AvailabilityHeader = tbl.Header
		for i := range tbl.Rows {
			view.AvailabilityRows = append(view.AvailabilityRows, tbl.Values(i))
		}
	}

	if visitors, err := h.Service.List(ctx); err != nil {
		fail(err)
	} else {
		view.Visitors = visitors
	}

	h.views.Render(w, status, "visitors.html", view)
}

// Page shows availability, the visitor log and the entry form.
func (h *VisitorHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, Page{}, models.CreateVisitorRequest{})
}

// Log appends one visitor movement.
func (h *VisitorHandler) Log(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, Page{Error: "Invalid form submission"}, models.CreateVisitorRequest{})
		return
	}
	req := models.CreateVisitorRequest{
		UID:       r.FormValue("uid"),
		Ward:      r.FormValue("ward"),
		Bed:       r.FormValue("bed"),
		Direction: r.FormValue("direction"),
	}

	v, err := h.Service.Log(r.Context(), req)
	recordOutcome(MenuVisitors, err)
	if err != nil {
		status, msg, hint := flowError(err)
		h.render(w, r, status, Page{Error: msg, Hint: hint}, req)
		return
	}

	h.render(w, r, http.StatusOK, Page{Success: fmt.Sprintf("Visitor %s logged %s at %s.", v.UID, v.Direction, v.Time)}, models.CreateVisitorRequest{})
}
