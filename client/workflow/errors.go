package workflow

import (
	"errors"

	"procurement/validation"
)

// User-facing texts shown by the vendor screen.
const (
	MsgFetchFailed      = "Failed to fetch vendors. Please try again later."
	MsgUpdated          = "Vendor updated successfully!"
	MsgUpdateFailed     = "Failed to update vendor"
	MsgRegistered       = "Vendor registered successfully!"
	MsgRegisterFailed   = "Failed to register vendor"
	MsgDeleted          = "Vendor deleted successfully"
	MsgDeleteFailed     = "Failed to delete vendor. Please try again."
	MsgPasswordMismatch = "Passwords don't match"
	MsgPasswordTooShort = "Password must be at least 6 characters long"
)

var (
	ErrBusy           = errors.New("workflow: a submission is already in flight")
	ErrNotOpen        = errors.New("workflow: no vendor form is open")
	ErrNoPendingDraft = errors.New("workflow: no registration is waiting for a password")
	ErrDeleteDeclined = errors.New("workflow: delete not confirmed")
)

// ValidationError is a local rejection; no request was sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func firstValidationError(errs []validation.FieldError) *ValidationError {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Field: errs[0].Field, Message: errs[0].Message}
}
