package domain

import "errors"

// Sentinel errors for every failure the service surfaces. Callers wrap them
// with fmt.Errorf("%w: ...") and match with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
	ErrStorage    = errors.New("storage failure")
)
