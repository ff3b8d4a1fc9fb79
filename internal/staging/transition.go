// Package staging advances freshly created leads to their next
// lifecycle stage. It owns exactly one rule: a lead found without a
// website skips analysis and goes straight to mock generation.
package staging

import (
	"context"
	"fmt"
	"log"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/store"
)

const noWebsiteNote = "No existing website - will generate from scratch"

type Handler struct {
	Store store.Store
}

// OnLeadCreated runs synchronously after a lead is first persisted.
// No website: flip to ready_for_mock with an explanatory note.
// Has website: leave it at found; the analyzer picks it up later.
func (h Handler) OnLeadCreated(ctx context.Context, l domain.Lead) error {
	if l.Status != domain.StatusFound {
		return nil
	}
	if l.HasWebsite() {
		log.Printf("[staging] lead has website, leaving for analyzer name=%q id=%s", l.BusinessName, l.ID)
		return nil
	}

	if err := h.Store.UpdateLeadStatus(ctx, l.ID, domain.StatusReadyForMock, noWebsiteNote); err != nil {
		return fmt.Errorf("staging transition: %w", err)
	}
	log.Printf("[staging] no website, marked ready_for_mock name=%q id=%s", l.BusinessName, l.ID)
	return nil
}
