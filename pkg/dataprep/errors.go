package dataprep

import "errors"

var (
	// ErrSchemaMismatch means the input frame does not carry exactly the
	// expected raw census columns.
	ErrSchemaMismatch = errors.New("dataprep: input schema does not match the census layout")

	// ErrInsufficientData means a numeric column has no strictly positive
	// values, so the binning median is undefined.
	ErrInsufficientData = errors.New("dataprep: no strictly positive values to compute binning median")
)
