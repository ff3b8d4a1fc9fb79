package httpapi

import (
	"context"
	"sync/atomic"

	"leadscout-engine/internal/config"
	"leadscout-engine/internal/discover"
	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/events"
	"leadscout-engine/internal/places"
	"leadscout-engine/internal/store"
)

// FindRunner is the discovery entry point; *discover.Runner implements
// it. Injected so handler tests can fake the pipeline.
type FindRunner interface {
	Run(ctx context.Context, userID string) (discover.Summary, error)
	Discover(ctx context.Context, location, industry string, limit int) ([]domain.Candidate, error)
}

type Deps struct {
	Store store.Store
	Hub   *events.Hub

	Runner FindRunner
	Places *places.Client

	// Atomic stores
	CfgVal     *atomic.Value // stores config.Config
	FindStatus *atomic.Value // stores httpapi.FindStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}
