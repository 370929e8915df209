package meal

import "errors"

var (
	ErrNotFound        = errors.New("custom meal not found")
	ErrInvalidData     = errors.New("invalid custom meal data")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrForeignOwner    = errors.New("custom meal belongs to another user")
)
