// Package repository handles all interactions with the database.
//
// It contains the raw SQL and row mapping for users and records,
// abstracting SQL away from the service layer. Every error leaving this
// package is normalized through sqlerr so services can pattern-match
// constraint violations.
package repository
