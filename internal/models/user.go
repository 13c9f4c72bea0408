package models

import "time"

// User is a local account row provisioned from a Clerk identity on
// first use. ClerkUserID is the external subject; ID is the local
// primary key referenced by records.
type User struct {
	ID          string    `json:"id"`
	ClerkUserID string    `json:"clerkUserId"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
