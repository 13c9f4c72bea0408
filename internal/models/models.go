// Package models defines the persisted domain types shared by the
// repository and service layers.
package models
