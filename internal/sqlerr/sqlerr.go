// Package sqlerr handles database driver errors.
//
// It parses SQLSTATE codes from the Postgres driver and converts them
// into typed errors the service layer can pattern-match, for example
// turning a foreign-key violation into an actionable client message.
package sqlerr
