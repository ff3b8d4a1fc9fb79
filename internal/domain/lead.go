package domain

import (
	"strings"
	"time"
)

// Lead lifecycle statuses. The discovery pipeline only ever writes
// StatusFound; downstream stages move leads forward from there.
const (
	StatusFound         = "found"
	StatusReadyForMock  = "ready_for_mock"
	StatusUnderAnalysis = "under_analysis"
)

const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
)

// Lead is a persisted business record discovered for a user.
// At most one lead exists per (UserID, PlaceID).
type Lead struct {
	ID           string   `json:"id"`
	UserID       string   `json:"userId"`
	BusinessName string   `json:"businessName"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone,omitempty"`
	Website      string   `json:"website,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	ReviewCount  int      `json:"reviewCount"`
	MapsURL      string   `json:"mapsUrl"`
	Category     string   `json:"category"`
	PlaceID      string   `json:"placeId"`
	Status       string   `json:"status"`
	Priority     string   `json:"priority"`
	Note         string   `json:"note,omitempty"`
	SearchQuery  string   `json:"searchQuery"`
	FoundAt      time.Time `json:"foundAt"`
}

// HasWebsite reports whether the lead points at a live website.
// Priority and the ready_for_mock transition both key off this.
func (l Lead) HasWebsite() bool {
	return strings.TrimSpace(l.Website) != ""
}

// Candidate is an enriched place-search result, alive only for the
// duration of a single discovery run.
type Candidate struct {
	PlaceID      string   `json:"placeId"`
	BusinessName string   `json:"businessName"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone,omitempty"`
	Website      string   `json:"website,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	ReviewCount  int      `json:"reviewCount"`
	MapsURL      string   `json:"googleMapsUrl"`
	Category     string   `json:"category"`
	Source       string   `json:"source"`
}

// SearchPreferences are the per-user inputs to a discovery run.
type SearchPreferences struct {
	TargetLocation string `json:"targetLocation"`
	TargetIndustry string `json:"targetIndustry"`
	LeadsPerSearch int    `json:"leadsPerSearch"`
}

// User is an engine account: identity plus its stored preferences.
type User struct {
	ID          string
	Name        string
	Token       string
	Preferences SearchPreferences
}
