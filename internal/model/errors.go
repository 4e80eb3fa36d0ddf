package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNoConvergence    = errors.New("no convergence")
	ErrUndefinedMetric  = errors.New("undefined metric")
)

// ParamError describes which field violated which constraint.
type ParamError struct {
	Field      string
	Value      float64
	Constraint string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s = %v, must be %s", ErrInvalidParameter, e.Field, e.Value, e.Constraint)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}
