package digit

import "errors"

// ErrInvalidArgument is returned when a reduction parameter is out of range.
// Other packages wrap it for their own argument errors so callers can test
// the whole class with a single errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")
