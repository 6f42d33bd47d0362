package form

import "errors"

var (
	// ErrUnknownFormat is returned for files whose extension is not a known form format.
	ErrUnknownFormat = errors.New("unknown form format")
	// ErrNotObject is returned when the top level of a form is not a mapping.
	ErrNotObject = errors.New("form must be an object of fields")
	// ErrNested is returned for field values that are objects or lists.
	ErrNested = errors.New("nested field values are not supported")
)
