package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment is append-only; never edited or deleted.
type Comment struct {
	ID         uuid.UUID `json:"id"`
	IncidentID uuid.UUID `json:"incidentId"`
	UserID     uuid.UUID `json:"userId"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CommentWithAuthor joins the minimal author display fields used by
// comment listings.
type CommentWithAuthor struct {
	Comment
	AuthorName   string `json:"authorName"`
	AuthorAvatar string `json:"authorAvatar"`
}
