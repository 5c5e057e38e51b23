package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ProfilePic   string    `json:"profilePic"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Reporter is the public display projection of a user attached to
// non-anonymous feed entries.
type Reporter struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"fullName"`
	ProfilePic string    `json:"profilePic"`
	Email      string    `json:"email"`
}
