package repository

import "errors"

// Sentinel errors returned by the transactional reservation store.
// Services map these onto their user-facing taxonomies.
var (
	ErrNotFound          = errors.New("record not found")
	ErrSlotTaken         = errors.New("slot already taken")
	ErrActiveReservation = errors.New("customer already has an active reservation")
	ErrRequestDecided    = errors.New("request already decided")
	ErrGroupMismatch     = errors.New("reservation records do not match this group")
)
