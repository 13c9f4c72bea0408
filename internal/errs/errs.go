// Package errs defines the application's error types and helpers.
//
// Handlers and services return *HTTPError values; the global error
// funnel in the middleware package converts every error into the wire
// shape {"error": string} so nothing propagates past the API boundary
// as an unhandled fault.
package errs
