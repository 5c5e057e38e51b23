package domain

import (
	"time"

	"github.com/google/uuid"
)

type VoteType string

const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

// Vote is one user's judgment on one incident. The ledger holds at most
// one row per (IncidentID, UserID) pair at any instant.
type Vote struct {
	ID         uuid.UUID `json:"id"`
	IncidentID uuid.UUID `json:"incidentId"`
	UserID     uuid.UUID `json:"userId"`
	Type       VoteType  `json:"type"`
	CreatedAt  time.Time `json:"createdAt"`
}

type VoteState string

const (
	VoteStateNone      VoteState = "none"
	VoteStateUpvoted   VoteState = "upvoted"
	VoteStateDownvoted VoteState = "downvoted"
)

type VoteOutcome string

const (
	OutcomeCast      VoteOutcome = "cast"
	OutcomeRetracted VoteOutcome = "retracted"
	OutcomeSwitched  VoteOutcome = "switched"
)

type VoteResult struct {
	State   VoteState   `json:"state"`
	Outcome VoteOutcome `json:"outcome"`
}
