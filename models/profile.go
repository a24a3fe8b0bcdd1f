package models

import "time"

// UserProfile is the business profile attached to an identity-provider user.
// It is keyed by the provider's user id, created on first sign-up and read on
// every session restoration. This layer never deletes profiles.
type UserProfile struct {
	UserID         string    `json:"userId"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"displayName"`
	OrganizationID string    `json:"organizationId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
