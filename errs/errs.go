// Package errs collects the sentinel error values shared across the
// engine's setup paths, so callers can use errors.Is instead of string
// matching against a particular constructor's message.
package errs

import "errors"

var (
	// ErrConfiguration marks a malformed or internally inconsistent
	// configuration record supplied at setup time.
	ErrConfiguration = errors.New("configuration error")

	// ErrResource marks a failure to load or parse an external resource
	// file (grain composition table, size distribution table, DustEM
	// data set, Stokes matrix file).
	ErrResource = errors.New("resource error")

	// ErrGeometryDomain marks a geometry parameter outside its valid
	// domain (e.g. a flattening ratio outside (0,1], a negative scale
	// length).
	ErrGeometryDomain = errors.New("geometry domain error")

	// ErrNormalization marks a normalization rule that could not be
	// satisfied, including the SphereCrop case where more mass would be
	// discarded than the setup tolerance allows.
	ErrNormalization = errors.New("normalization error")
)
