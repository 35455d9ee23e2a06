package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart        = errors.New("cart is empty, nothing to checkout")
	ErrTermsNotAccepted = errors.New("terms and conditions not accepted")
	ErrInvalidForm      = errors.New("buyer form is invalid")
)

// ValidationError reports the per-field messages of a rejected form. It
// matches ErrInvalidForm under errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("buyer form is invalid (%d fields)", len(e.Fields))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidForm
}
