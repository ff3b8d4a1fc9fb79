package store

import (
	"context"
	"errors"

	"leadscout-engine/internal/domain"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("store: not found")

// ListLeadsOpts filters and orders a lead listing.
type ListLeadsOpts struct {
	UserID     string
	Status     string
	HasWebsite *bool // nil = don't care
	Sort       string // found_at | name | rating | priority
	Limit      int
}

// Store persists users, their search preferences and discovered leads.
// Implementations must uphold at-most-one lead per (user_id, place_id):
// InsertLeadIfNew is an atomic conditional insert, not check-then-write.
type Store interface {
	EnsureUser(ctx context.Context, u domain.User) error
	UserIDForToken(ctx context.Context, token string) (string, error)
	Preferences(ctx context.Context, userID string) (domain.SearchPreferences, error)
	SavePreferences(ctx context.Context, userID string, p domain.SearchPreferences) error

	// InsertLeadIfNew writes the lead unless one already exists for
	// (lead.UserID, lead.PlaceID). Reports whether a row was added.
	InsertLeadIfNew(ctx context.Context, lead *domain.Lead) (bool, error)
	ListLeads(ctx context.Context, opts ListLeadsOpts) ([]domain.Lead, error)
	GetLead(ctx context.Context, id string) (domain.Lead, error)
	UpdateLeadStatus(ctx context.Context, id, status, note string) error
	DeleteLead(ctx context.Context, id string) error
	CleanupOldLeads(ctx context.Context) (int64, error)

	Close() error
}
