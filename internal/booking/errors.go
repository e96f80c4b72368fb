package booking

import "errors"

var (
	// ErrInvalidTimeWindow is returned when the start time is not strictly
	// before the end time, or the window does not fall on the booking date.
	ErrInvalidTimeWindow = errors.New("start time must be before end time on the booking date")

	// ErrRoomNotFound is returned when the target room does not exist.
	ErrRoomNotFound = errors.New("room not found")

	// ErrReserverNotFound is returned when the requesting employee does not exist.
	ErrReserverNotFound = errors.New("reserver not found")

	// ErrRoomTimeConflict is returned when a non-cancelled reservation for
	// the same room already covers part of the requested window.
	ErrRoomTimeConflict = errors.New("room is already booked for the requested window")

	// ErrNotFoundOrUnauthorized is returned when a cancellation target does
	// not exist, is already cancelled, or is not owned by the requester.
	// Callers must not distinguish the three cases.
	ErrNotFoundOrUnauthorized = errors.New("reservation not found or not owned by requester")
)
