package model

import "time"

// User is a local mirror of an identity-provider account. ExternalID is
// the provider's opaque subject; IsAdmin gates the admin CRUD surface.
type User struct {
	ID         int       `json:"id"`
	ExternalID string    `json:"externalId"`
	Email      string    `json:"email"`
	Name       string    `json:"name,omitempty"`
	IsAdmin    bool      `json:"isAdmin"`
	CreatedAt  time.Time `json:"createdAt"`
}
