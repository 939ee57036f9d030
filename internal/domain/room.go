package domain

import (
	"context"
	"time"
)

// RoomCode is the 6-digit human-enterable identifier for a room.
// Codes are generated, unique among stored rooms, and immutable.
type RoomCode int

// Room is a moderator-created session: a code, a display name, and the
// participants that joined it. Members is insertion-ordered and append-only.
type Room struct {
	Code      RoomCode  `json:"id"`
	Name      string    `json:"name"`
	Members   []Member  `json:"users"`
	CreatedAt time.Time `json:"-"`
}

// Member is a participant's pseudonymous identity within one room, plus the
// latest sentiment reported for it. The ID is generated by the client.
type Member struct {
	ID        string    `json:"id"`
	Sentiment Sentiment `json:"sentiment"`
}

// RoomStore is the persistence contract for rooms. Implementations must make
// each operation atomic with respect to the room it touches: CreateRoom treats
// the uniqueness check and the insert as one operation, AddMember appends
// without rewriting the member list, and SetSentiment updates a single member
// in place.
type RoomStore interface {
	// CreateRoom persists a new room with no members. Returns ErrDuplicateCode
	// if the code exists at the instant of insertion, even if the caller
	// checked absence beforehand.
	CreateRoom(ctx context.Context, code RoomCode, name string) (*Room, error)

	// FindRoom returns the room for a code, or ErrRoomNotFound.
	FindRoom(ctx context.Context, code RoomCode) (*Room, error)

	// ListRooms returns all stored rooms. Order is unspecified and the result
	// is not required to be a consistent snapshot across rooms.
	ListRooms(ctx context.Context) ([]Room, error)

	// AddMember appends a member to a room with the given initial sentiment.
	// Returns ErrRoomNotFound if the code does not resolve. Rejoining with the
	// same member ID appends again; dedup is intentionally not performed.
	AddMember(ctx context.Context, code RoomCode, memberID string, sentiment Sentiment) (*Room, error)

	// SetSentiment overwrites the sentiment of the member with the given ID in
	// whichever room holds it. Returns ErrMemberNotFound if no room does.
	SetSentiment(ctx context.Context, memberID string, sentiment Sentiment) (*Room, error)

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
