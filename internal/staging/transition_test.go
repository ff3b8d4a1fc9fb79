package staging

import (
	"context"
	"testing"
	"time"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/store/sqlite"
)

func TestOnLeadCreatedNoWebsite(t *testing.T) {
	b, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	ctx := context.Background()

	l := domain.Lead{
		ID:           "stage-1",
		UserID:       "u-stage",
		BusinessName: "No Site Diner",
		PlaceID:      "place-stage-1",
		Status:       domain.StatusFound,
		Priority:     domain.PriorityHigh,
		FoundAt:      time.Now().UTC(),
	}
	if _, err := b.InsertLeadIfNew(ctx, &l); err != nil {
		t.Fatal(err)
	}

	h := Handler{Store: b}
	if err := h.OnLeadCreated(ctx, l); err != nil {
		t.Fatalf("OnLeadCreated: %v", err)
	}

	got, err := b.GetLead(ctx, "stage-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.StatusReadyForMock {
		t.Errorf("status = %q, want ready_for_mock", got.Status)
	}
	if got.Note == "" {
		t.Error("expected an explanatory note")
	}
}

func TestOnLeadCreatedWithWebsite(t *testing.T) {
	b, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	ctx := context.Background()

	l := domain.Lead{
		ID:           "stage-2",
		UserID:       "u-stage2",
		BusinessName: "Has Site Cafe",
		Website:      "https://hassite.example",
		PlaceID:      "place-stage-2",
		Status:       domain.StatusFound,
		Priority:     domain.PriorityMedium,
		FoundAt:      time.Now().UTC(),
	}
	if _, err := b.InsertLeadIfNew(ctx, &l); err != nil {
		t.Fatal(err)
	}

	h := Handler{Store: b}
	if err := h.OnLeadCreated(ctx, l); err != nil {
		t.Fatalf("OnLeadCreated: %v", err)
	}

	got, _ := b.GetLead(ctx, "stage-2")
	if got.Status != domain.StatusFound {
		t.Errorf("status = %q, want found (untouched)", got.Status)
	}
}
