// Package errs defines the sentinel errors shared by the touki packages.
//
// Errors are wrapped with context at the point of detection:
//
//	return fmt.Errorf("%w: index %d at offset %d", errs.ErrFormat, idx, pos)
//
// and matched by callers with errors.Is.
package errs

import "errors"

var (
	// ErrInvalidCast is returned when a Value is read as a type it does not hold.
	ErrInvalidCast = errors.New("invalid cast")

	// ErrArgumentNull is returned when a segment has no backing store but a non-empty range.
	ErrArgumentNull = errors.New("argument is nil")

	// ErrArgumentOutOfRange is returned when a segment range does not fit its backing store.
	ErrArgumentOutOfRange = errors.New("argument out of range")

	// ErrFormat is returned for malformed templates and for arguments that fail to format.
	ErrFormat = errors.New("invalid format")

	// ErrInvalidFormatSpec is returned when a value does not understand its format spec.
	ErrInvalidFormatSpec = errors.New("invalid format spec")

	// ErrOutOfRange is returned when a span reader is moved outside its data.
	ErrOutOfRange = errors.New("position out of range")

	// ErrInvalidCompression is returned for unknown compression types.
	ErrInvalidCompression = errors.New("invalid compression type")

	// ErrInvalidBatch is returned when a rendered batch cannot be decoded.
	ErrInvalidBatch = errors.New("invalid batch")

	// ErrInvalidOption is returned when an option rejects its argument.
	ErrInvalidOption = errors.New("invalid option")
)
