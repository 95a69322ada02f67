package core

import "errors"

// Common errors.
var (
	ErrFormat          = errors.New("invalid notebook format")
	ErrExists          = errors.New("notebook already exists")
	ErrUnsupportedFile = errors.New("unsupported notebook file")
)

// FormatReason identifies which structural check rejected a notebook.
type FormatReason int

const (
	ReasonInvalidJSON FormatReason = iota + 1
	ReasonRootNotObject
	ReasonMissingCells
	ReasonCellsNotArray
)

func (r FormatReason) String() string {
	switch r {
	case ReasonInvalidJSON:
		return "invalid JSON"
	case ReasonRootNotObject:
		return "root element must be an object"
	case ReasonMissingCells:
		return "missing required `cells` property"
	case ReasonCellsNotArray:
		return "`cells` is not an array"
	default:
		return "unknown"
	}
}

// FormatError is returned when the input is not a notebook at all.
// No partial document can be recovered from it.
type FormatError struct {
	Reason FormatReason
	Err    error
}

func (e *FormatError) Error() string {
	msg := ErrFormat.Error() + ": " + e.Reason.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is makes errors.Is(err, ErrFormat) match any FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// IsFormatError reports whether err carries a FormatError and returns its reason.
func IsFormatError(err error) (FormatReason, bool) {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe.Reason, true
	}
	return 0, false
}
