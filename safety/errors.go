package safety

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn    = errors.New("missing required column")
	ErrInsufficientData = errors.New("insufficient data")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// MissingColumnError reports a required column absent from the table schema.
// Missing values inside a present column are not errors; those rows are dropped.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%v: %q", ErrMissingColumn, e.Column)
}

func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// InsufficientDataError reports too few complete rows to identify the model.
type InsufficientDataError struct {
	Rows   int // complete rows left after filtering
	Params int // parameters to estimate, intercept included
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%v: %d complete rows for %d parameters, need at least %d",
		ErrInsufficientData, e.Rows, e.Params, e.Params+1)
}

func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}
