package domain

// FeedIncident is one feed entry: the incident plus vote/comment
// aggregates and per-requester annotations.
type FeedIncident struct {
	Incident
	Reporter       *Reporter `json:"reporter,omitempty"`
	UpvotesCount   int       `json:"upvotesCount"`
	DownvotesCount int       `json:"downvotesCount"`
	CommentsCount  int       `json:"commentsCount"`
	IsUpvoted      bool      `json:"isUpvoted"`
	IsDownvoted    bool      `json:"isDownvoted"`
}

type FeedPage struct {
	CurrentPage    int            `json:"currentPage"`
	TotalPages     int            `json:"totalPages"`
	TotalIncidents int64          `json:"totalIncidents"`
	Incidents      []FeedIncident `json:"incidents"`
}
