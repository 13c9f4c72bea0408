// Package middleware contains the Echo middleware stack: request
// correlation, request-scoped logging, Clerk session handling, New
// Relic tracing, and the global error funnel that converts every error
// into the wire shape {"error": string}.
package middleware
