package domain

import (
	"time"

	"github.com/google/uuid"
)

// AlertPayload is handed to the fan-out relay when an emergency-grade
// incident is reported.
type AlertPayload struct {
	IncidentID uuid.UUID    `json:"incidentId"`
	Type       IncidentType `json:"type"`
	Severity   Severity     `json:"severity"`
	Title      string       `json:"title"`
	City       string       `json:"city"`
	Latitude   float64      `json:"latitude"`
	Longitude  float64      `json:"longitude"`
	ReportedAt time.Time    `json:"reportedAt"`
}
