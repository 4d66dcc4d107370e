package handlers

import (
	"errors"
	"net/http"
	"strings"

	"frontdesk-backend/internal/metrics"
	"frontdesk-backend/internal/services"
	"frontdesk-backend/internal/sheets"
)

// flowError turns a service error into the status and inline message shown
// on the flow's own page.
func flowError(err error) (status int, message, hint string) {
	var (
		validation *services.ValidationError
		partial    *services.PartialMutationError
	)

	switch {
	case errors.As(err, &partial):
		return http.StatusBadGateway, "The patient was archived but could not be removed from the Patient sheet.", partial.Hint
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity, "Please fill in all fields. Missing: " + strings.Join(validation.Missing, ", "), ""
	case errors.Is(err, services.ErrPatientNotFound):
		return http.StatusConflict, "The selected patient is no longer in the Patient sheet.", "Reload the list and select again."
	case errors.Is(err, services.ErrAmbiguousSelection):
		return http.StatusConflict, "More than one patient matches the selection and the list has changed.", "Reload the list and select again."
	case errors.Is(err, sheets.ErrInvalidIndex):
		return http.StatusConflict, "The Patient sheet changed while saving.", "Reload the list and try again."
	case errors.Is(err, sheets.ErrStoreUnavailable):
		return http.StatusBadGateway, "The spreadsheet could not be reached. Nothing was saved.", "Try again in a moment."
	default:
		return http.StatusInternalServerError, "Something went wrong. Nothing was saved.", ""
	}
}

// recordOutcome counts a form submission for flow.
func recordOutcome(flow string, err error) {
	var (
		validation *services.ValidationError
		partial    *services.PartialMutationError
	)

	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case errors.As(err, &partial):
		outcome = metrics.OutcomePartial
	case errors.As(err, &validation):
		outcome = metrics.OutcomeInvalid
	default:
		outcome = metrics.OutcomeStoreError
	}
	metrics.FlowOutcomesTotal.WithLabelValues(flow, outcome).Inc()
}
