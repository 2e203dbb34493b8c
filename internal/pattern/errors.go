package pattern

import (
	"errors"
	"fmt"

	"harmonic/internal/digit"
)

// Pattern registry errors.
var (
	// ErrDuplicateName is returned when registering a name that already
	// exists without WithOverwrite.
	ErrDuplicateName = errors.New("pattern already registered")

	// ErrInvalidPattern is returned for an empty name, an empty sequence,
	// an element outside [0,9] or an unknown category. It wraps
	// digit.ErrInvalidArgument.
	ErrInvalidPattern = fmt.Errorf("invalid pattern: %w", digit.ErrInvalidArgument)
)
