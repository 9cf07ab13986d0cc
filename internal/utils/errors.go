package utils

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("insufficient permissions")
	ErrUnauthenticated = errors.New("authentication required")
	ErrValidation      = errors.New("invalid input")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrDuplicateItem   = errors.New("duplicate playlist item")
)
