package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is resolved once at login and carried in the session token.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// User is the credential record held by the identity store.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"displayName"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Profile is the mirrored user document written at sign-up, separate
// from the credential record. Nickname and email are unique across
// profiles.
type Profile struct {
	UID          uuid.UUID `json:"uid"`
	Email        string    `json:"email"`
	Nickname     string    `json:"nickname"`
	ReferralCode string    `json:"referralCode"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AuthorSnapshot is a denormalized copy of the author embedded in posts
// and comments at creation time. It does not follow later nickname
// changes.
type AuthorSnapshot struct {
	UID      uuid.UUID `json:"uid"`
	Nickname string    `json:"nickname"`
	Email    string    `json:"email"`
}
