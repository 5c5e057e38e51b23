package domain

import (
	"time"

	"github.com/google/uuid"
)

type IncidentType string

const (
	IncidentHarassment IncidentType = "harassment"
	IncidentStalking   IncidentType = "stalking"
	IncidentUnsafeArea IncidentType = "unsafe_area"
	IncidentEmergency  IncidentType = "emergency"
	IncidentSuspicious IncidentType = "suspicious"
	IncidentOther      IncidentType = "other"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type Location struct {
	Latitude  float64 `json:"latitude" validate:"lat"`
	Longitude float64 `json:"longitude" validate:"lng"`
	City      string  `json:"city" validate:"required"`
	State     string  `json:"state" validate:"required"`
	Postcode  int     `json:"postcode" validate:"required"`
	Country   string  `json:"country" validate:"required"`
}

// Incident is a reported safety event. ReporterID is nil exactly when
// IsAnonymous is true. Records are immutable after creation.
type Incident struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        IncidentType `json:"type"`
	Severity    Severity     `json:"severity"`
	Image       string       `json:"image"`
	Area        string       `json:"area"`
	Location    Location     `json:"location"`
	IsAnonymous bool         `json:"isAnonymous"`
	ReporterID  *uuid.UUID   `json:"reporterId,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// IncidentFilter narrows feed and stats queries. City is always required;
// empty Type/Severity mean no restriction.
type IncidentFilter struct {
	City     string
	Type     IncidentType
	Severity Severity
}

type IncidentStats struct {
	City       string                 `json:"city"`
	Total      int64                  `json:"total"`
	BySeverity map[Severity]int64     `json:"bySeverity"`
	ByType     map[IncidentType]int64 `json:"byType"`
	Minutes    int                    `json:"minutes"`
}
