// Package domain defines the core domain types and interfaces.
//
// This package contains the Room/Member model, the RoomStore contract, and the
// sentinel errors shared by all layers. No implementation code - just contracts.
// Prevents circular imports by keeping interfaces on the consumer side.
package domain
