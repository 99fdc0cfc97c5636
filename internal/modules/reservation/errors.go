package reservation

import "errors"

// The engine's error taxonomy. Handlers translate these to HTTP codes;
// ErrSlotTaken is the only one worth retrying without changing the request.
var (
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrValidation        = errors.New("validation error")
	ErrCapacityConflict  = errors.New("not enough contiguous slots")
	ErrSlotTaken         = errors.New("slot already taken")
	ErrActiveReservation = errors.New("an active reservation already exists")
	ErrAlreadyDecided    = errors.New("request already decided")
	ErrPastDeadline      = errors.New("reservation time already passed")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("reservation not found")
)
