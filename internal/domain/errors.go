package domain

import "errors"

var (
	// ErrRoomNotFound is returned when a room code does not resolve.
	ErrRoomNotFound = errors.New("room not found")

	// ErrMemberNotFound is returned when a member ID is not present in any
	// room. Callers must surface this; a zero-match sentiment update is a
	// failure, never a silent success.
	ErrMemberNotFound = errors.New("member not found")

	// ErrDuplicateCode is returned when a room code already exists at the
	// instant of insertion. Recovered by regenerating the code.
	ErrDuplicateCode = errors.New("room code already exists")
)
