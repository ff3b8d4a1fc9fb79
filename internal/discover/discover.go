// Package discover runs the lead discovery pipeline: resolve a user's
// search preferences, geocode the target location, find nearby
// businesses of the target category, enrich each one, and persist the
// previously unseen ones.
package discover

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/events"
	"leadscout-engine/internal/places"
	"leadscout-engine/internal/store"
	"leadscout-engine/internal/taxonomy"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

var (
	ErrProfileNotFound    = errors.New("user profile not found")
	ErrInvalidPreferences = errors.New("target location and industry are required in user profile")
)

const defaultRadiusM = 8000

// Summary is the caller-facing result of one discovery run.
type Summary struct {
	Success      bool   `json:"success"`
	SavedCount   int    `json:"savedCount"`
	SkippedCount int    `json:"skippedCount"`
	TotalFound   int    `json:"totalFound"`
	Message      string `json:"message"`
}

type Runner struct {
	Places  *places.Client
	Store   store.Store
	Hub     *events.Hub
	RadiusM int

	// OnCreated runs synchronously after each successful insert
	// (the staging transition). Its error is logged, not fatal.
	OnCreated func(ctx context.Context, l domain.Lead) error

	group singleflight.Group
}

// Run executes the pipeline for one user. Concurrent calls for the
// same user are collapsed into a single run; everyone gets its summary.
func (r *Runner) Run(ctx context.Context, userID string) (Summary, error) {
	v, err, _ := r.group.Do(userID, func() (any, error) {
		return r.runOnce(ctx, userID)
	})
	if err != nil {
		return Summary{}, err
	}
	return v.(Summary), nil
}

func (r *Runner) runOnce(ctx context.Context, userID string) (Summary, error) {
	prefs, err := r.Store.Preferences(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return Summary{}, ErrProfileNotFound
	}
	if err != nil {
		return Summary{}, fmt.Errorf("load preferences: %w", err)
	}
	if strings.TrimSpace(prefs.TargetLocation) == "" || strings.TrimSpace(prefs.TargetIndustry) == "" {
		return Summary{}, ErrInvalidPreferences
	}
	limit := prefs.LeadsPerSearch
	if limit <= 0 {
		limit = 20
	}

	runID := uuid.NewString()
	log.Printf("[discover] run=%s user=%s query=%q", runID, userID, prefs.TargetIndustry+" in "+prefs.TargetLocation)

	cands, err := r.Discover(ctx, prefs.TargetLocation, prefs.TargetIndustry, limit)
	if err != nil {
		return Summary{}, err
	}

	searchQuery := prefs.TargetIndustry + " in " + prefs.TargetLocation
	saved, skipped := 0, 0
	for _, c := range cands {
		l := leadFromCandidate(userID, searchQuery, c)

		added, ierr := r.Store.InsertLeadIfNew(ctx, &l)
		if ierr != nil {
			// one bad write must not discard the batch
			log.Printf("[discover] run=%s insert error place=%s err=%v", runID, c.PlaceID, ierr)
			continue
		}
		if !added {
			skipped++
			log.Printf("[discover] run=%s skipped duplicate name=%q", runID, c.BusinessName)
			continue
		}
		saved++
		log.Printf("[discover] run=%s saved name=%q priority=%s", runID, c.BusinessName, l.Priority)

		if r.Hub != nil {
			r.Hub.Publish(events.MakeEvent(runID, events.TypeLeadCreated, 1,
				map[string]any{"id": l.ID, "userId": l.UserID}))
		}
		if r.OnCreated != nil {
			if herr := r.OnCreated(ctx, l); herr != nil {
				log.Printf("[discover] run=%s created hook err id=%s err=%v", runID, l.ID, herr)
			}
		}
	}

	sum := Summary{
		Success:      true,
		SavedCount:   saved,
		SkippedCount: skipped,
		TotalFound:   saved + skipped,
		Message:      fmt.Sprintf("Found %d new leads, skipped %d duplicates", saved, skipped),
	}
	if r.Hub != nil {
		r.Hub.Publish(events.MakeEvent(runID, events.TypeRunFinished, 1, sum))
	}
	return sum, nil
}

// Discover runs the stateless half of the pipeline: geocode, search,
// enrich, filter to operational businesses. The debug endpoint uses it
// directly, without persistence.
func (r *Runner) Discover(ctx context.Context, location, industry string, limit int) ([]domain.Candidate, error) {
	loc, err := r.Places.Geocode(ctx, location)
	if err != nil {
		return nil, err
	}
	log.Printf("[discover] geocoded %q to %.4f,%.4f", location, loc.Lat, loc.Lng)

	placeType := taxonomy.PlaceType(industry)
	radius := r.RadiusM
	if radius <= 0 {
		radius = defaultRadiusM
	}

	hits, err := r.Places.NearbySearch(ctx, loc, placeType, radius, limit)
	if err != nil {
		return nil, err
	}
	log.Printf("[discover] nearby search type=%s hits=%d", placeType, len(hits))

	var out []domain.Candidate
	for _, hit := range hits {
		d, derr := r.Places.Details(ctx, hit.PlaceID)
		if derr != nil {
			// skip-and-continue: one dead place must not abort the run
			log.Printf("[discover] details failed place=%s err=%v", hit.PlaceID, derr)
			continue
		}
		if !d.Operational() {
			log.Printf("[discover] not operational place=%s status=%s", hit.PlaceID, d.BusinessStatus)
			continue
		}
		out = append(out, domain.Candidate{
			PlaceID:      d.PlaceID,
			BusinessName: d.Name,
			Address:      d.Address,
			Phone:        d.Phone,
			Website:      d.Website,
			Rating:       d.Rating,
			ReviewCount:  d.ReviewCount,
			MapsURL:      d.MapsURL,
			Category:     placeType,
			Source:       "google_places",
		})
	}
	return out, nil
}

func leadFromCandidate(userID, searchQuery string, c domain.Candidate) domain.Lead {
	priority := domain.PriorityMedium
	if strings.TrimSpace(c.Website) == "" {
		priority = domain.PriorityHigh
	}
	return domain.Lead{
		ID:           uuid.NewString(),
		UserID:       userID,
		BusinessName: c.BusinessName,
		Address:      c.Address,
		Phone:        c.Phone,
		Website:      c.Website,
		Rating:       c.Rating,
		ReviewCount:  c.ReviewCount,
		MapsURL:      c.MapsURL,
		Category:     c.Category,
		PlaceID:      c.PlaceID,
		Status:       domain.StatusFound,
		Priority:     priority,
		SearchQuery:  searchQuery,
		FoundAt:      time.Now().UTC(),
	}
}
