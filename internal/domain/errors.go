package domain

import "errors"

// Sentinel errors form the operation outcome taxonomy. Callers match with
// errors.Is; anything else bubbling out of the store is an internal failure
// and the operation must be treated as not applied.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrRoomNotFound        = errors.New("room not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrForbidden           = errors.New("forbidden")
)
