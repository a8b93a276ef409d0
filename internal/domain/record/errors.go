package record

import "errors"

var (
	ErrNotFound            = errors.New("record not found")
	ErrCommentsRequired    = errors.New("general comments are required")
	ErrInvalidServiceType  = errors.New("invalid service type")
	ErrTooManyImages       = errors.New("too many images")
	ErrMissingRequiredData = errors.New("missing required data")
)
