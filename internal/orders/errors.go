package orders

import "errors"

var (
	ErrNotFound          = errors.New("order not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidState      = errors.New("operation not allowed in current state")
	ErrInvalidTransition = errors.New("order already completed or cancelled")
	ErrInvalidItem       = errors.New("invalid order item")
	ErrInvalidAssignee   = errors.New("user is not an assembler")
	ErrConflict          = errors.New("order was modified concurrently")
)
