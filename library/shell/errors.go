package shell

import (
	"errors"

	"github.com/AntonStoeckl/ltu-library/library/core"
)

const (
	ErrorKindValidation = "validation"
	ErrorKindConflict   = "conflict"
	ErrorKindNotFound   = "not_found"
	ErrorKindInput      = "input"
)

// BusinessErrorKind classifies err by the core error taxonomy.
// It returns false for infrastructure errors, which belong to none of the kinds.
func BusinessErrorKind(err error) (string, bool) {
	switch {
	case errors.Is(err, core.ErrValidation):
		return ErrorKindValidation, true
	case errors.Is(err, core.ErrConflict):
		return ErrorKindConflict, true
	case errors.Is(err, core.ErrNotFound):
		return ErrorKindNotFound, true
	case errors.Is(err, core.ErrInput):
		return ErrorKindInput, true
	default:
		return "", false
	}
}
