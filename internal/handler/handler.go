// Package handler contains the HTTP endpoint implementations. Each
// handler binds and validates its request payload, delegates to the
// service layer, and writes the JSON response through a shared
// pipeline that adds logging and tracing.
package handler
