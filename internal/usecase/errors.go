package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrProvider              = errors.New("provider call failed")
	ErrResolution            = errors.New("record resolution failed")
	ErrScoring               = errors.New("scoring failed")
	ErrStore                 = errors.New("store operation failed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
