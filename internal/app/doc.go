// Package app provides the application service layer.
//
// Orchestrates the session use cases: room creation with collision retry,
// membership joins, sentiment writes, and read-back queries. Sits between the
// HTTP handlers and the room store. Depends on the domain interface, not
// concrete store implementations.
package app
