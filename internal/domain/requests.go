package domain

import "github.com/google/uuid"

type ReportIncidentRequest struct {
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description" validate:"required"`
	Type        IncidentType `json:"type" validate:"required,oneof=harassment stalking unsafe_area emergency suspicious other"`
	Severity    Severity     `json:"severity" validate:"required,oneof=low medium high critical"`
	Area        string       `json:"area"`
	City        string       `json:"city" validate:"required"`
	State       string       `json:"state" validate:"required"`
	Postcode    int          `json:"postcode" validate:"required"`
	Country     string       `json:"country" validate:"required"`
	// required would reject the zero value, and 0 is a legitimate
	// coordinate; the range validators are the whole contract.
	Latitude    float64 `json:"latitude" validate:"lat"`
	Longitude   float64 `json:"longitude" validate:"lng"`
	IsAnonymous bool    `json:"isAnonymous"`
	ImageRef    string  `json:"imageRef"`

	// ReporterID comes from the auth middleware, not the body.
	ReporterID uuid.UUID `json:"-"`
}

type VoteRequest struct {
	IncidentID uuid.UUID `json:"-"`
	UserID     uuid.UUID `json:"-"`
	Type       VoteType  `json:"type" validate:"required,oneof=upvote downvote"`
}

type AddCommentRequest struct {
	IncidentID uuid.UUID `json:"-"`
	UserID     uuid.UUID `json:"-"`
	Text       string    `json:"text" validate:"required"`
}

// FeedRequest mirrors the fetch query params. RequesterID is nil for
// anonymous viewers.
type FeedRequest struct {
	City        string
	Type        string
	Severity    string
	Page        int
	RequesterID *uuid.UUID
}

type RegisterUserRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type StatsRequest struct {
	City    string `validate:"required"`
	Minutes int    `validate:"min=1,max=10080"`
}
