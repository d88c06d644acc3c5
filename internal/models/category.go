package models

import "github.com/google/uuid"

// Category is a flat name document. Uniqueness is pre-checked by
// callers, not enforced here, so duplicate documents can exist;
// deletion removes every document carrying the name.
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
