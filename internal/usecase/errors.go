package usecase

import "errors"

// Sentinel taxonomy shared by every usecase. Handlers map these onto HTTP
// statuses; collaborator failures are folded into them at this boundary so
// store or geocoder details never leak past it.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrUpstream   = errors.New("upstream dependency failure")
	ErrInternal   = errors.New("internal error")
)
