package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrPatientNotFound    = errors.New("selected patient is no longer in the Patient sheet")
	ErrAmbiguousSelection = errors.New("more than one patient matches the selection")
)

// ValidationError lists the form fields left empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "please fill in all fields: missing " + strings.Join(e.Missing, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// PartialMutationError reports a two-step operation that stopped after its
// first step. Hint tells the user how to finish it.
type PartialMutationError struct {
	Operation string
	Completed string
	Hint      string
	Err       error
}

func (e *PartialMutationError) Error() string {
	return fmt.Sprintf("%s stopped after step %q: %v", e.Operation, e.Completed, e.Err)
}

func (e *PartialMutationError) Unwrap() error {
	return e.Err
}
