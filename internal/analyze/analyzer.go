package analyze

import (
	"context"
	"log"
	"time"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/events"
	"leadscout-engine/internal/store"
)

type Analyzer struct {
	Store store.Store
	Probe *Probe
	Hub   *events.Hub
	Batch int // leads examined per sweep; default 10
}

// Sweep picks up found leads that have a website, probes each site and
// advances it to under_analysis with a findings note. A failed fetch
// leaves the lead at found for a later sweep. Returns how many leads
// were advanced.
func (a *Analyzer) Sweep(ctx context.Context) (int, error) {
	batch := a.Batch
	if batch <= 0 {
		batch = 10
	}
	yes := true
	leads, err := a.Store.ListLeads(ctx, store.ListLeadsOpts{
		Status:     domain.StatusFound,
		HasWebsite: &yes,
		Limit:      batch,
	})
	if err != nil {
		return 0, err
	}

	advanced := 0
	for _, l := range leads {
		sig, perr := a.Probe.Fetch(ctx, l.Website)
		if perr != nil {
			log.Printf("[analyze] probe failed id=%s site=%q err=%v", l.ID, l.Website, perr)
			continue
		}

		note := sig.Note(time.Now())
		if err := a.Store.UpdateLeadStatus(ctx, l.ID, domain.StatusUnderAnalysis, note); err != nil {
			log.Printf("[analyze] update failed id=%s err=%v", l.ID, err)
			continue
		}
		advanced++
		log.Printf("[analyze] advanced id=%s name=%q note=%q", l.ID, l.BusinessName, note)

		if a.Hub != nil {
			a.Hub.Publish(events.MakeEvent("", events.TypeLeadUpdated, 1,
				map[string]any{"id": l.ID, "status": domain.StatusUnderAnalysis}))
		}
	}
	return advanced, nil
}
