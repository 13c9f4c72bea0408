// Package service contains the business logic.
//
// It sits between the handler and repository layers. Every operation
// resolves the caller's identity, finds (or, for create, lazily
// provisions) the local user, runs one store operation scoped to that
// user, and maps failures onto the exact caller-facing messages of the
// API contract.
package service
