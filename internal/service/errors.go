package service

import "errors"

// Validation errors. These are recoverable: the caller's form state and
// composed lines are left untouched so the user can fix and resubmit.
var (
	// ErrMissingDate means the order date was blank.
	ErrMissingDate = errors.New("order date is required")
	// ErrMissingClient means no client was selected for the order.
	ErrMissingClient = errors.New("order client is required")
	// ErrEmptyOrder means the order had no line items.
	ErrEmptyOrder = errors.New("order must contain at least one item")
	// ErrInvalidQuantity means the quantity text was not a positive integer.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	// ErrUnknownProduct means the product key did not resolve in the catalog.
	ErrUnknownProduct = errors.New("unknown product")
)

// IsValidationError reports whether err is one of the recoverable
// validation failures, as opposed to a store failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingDate) ||
		errors.Is(err, ErrMissingClient) ||
		errors.Is(err, ErrEmptyOrder) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrUnknownProduct)
}
