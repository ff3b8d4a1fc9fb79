package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"leadscout-engine/internal/analyze"
	"leadscout-engine/internal/config"
	"leadscout-engine/internal/discover"
	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/events"
	"leadscout-engine/internal/httpapi"
	"leadscout-engine/internal/places"
	"leadscout-engine/internal/scheduler"
	"leadscout-engine/internal/secrets"
	"leadscout-engine/internal/staging"
	"leadscout-engine/internal/store"
	"leadscout-engine/internal/store/postgres"
	"leadscout-engine/internal/store/sqlite"
)

func main() {
	config.LoadEnv()

	// Engine data dir: use env if provided (the desktop shell passes one),
	// else local folder.
	dataDir := os.Getenv("LEADSCOUT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir. A second instance would race the sqlite
	// file and double-run the background sweeps.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("data dir lock: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already running in %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		cfg, v := config.NormalizeAndValidate(cfg)
		for _, w := range v.Warnings {
			log.Printf("[config] warning: %s", w)
		}
		if !v.OK() {
			return cfg, v.Err()
		}
		return cfg, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	apiKey, err := secrets.GetPlacesAPIKey()
	if err != nil {
		log.Printf("[secrets] no Places API key yet: %v (set one via POST /api/secrets/places)", err)
	}

	var st store.Store
	switch cfg.Store.Driver {
	case "postgres":
		pg, err := postgres.Open(context.Background(), cfg.Store.PostgresDSN)
		if err != nil {
			log.Fatalf("postgres open: %v", err)
		}
		st = pg
	default:
		dbPath := filepath.Join(dataDir, "leadscout.db")
		sq, err := sqlite.Open(dbPath)
		if err != nil {
			log.Fatalf("sqlite open (%s): %v", dbPath, err)
		}
		st = sq
	}
	defer st.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, u := range cfg.Users {
		err := st.EnsureUser(ctx, domain.User{
			ID:    u.ID,
			Name:  u.Name,
			Token: u.Token,
			Preferences: domain.SearchPreferences{
				TargetLocation: u.TargetLocation,
				TargetIndustry: u.TargetIndustry,
				LeadsPerSearch: u.LeadsPerSearch,
			},
		})
		if err != nil {
			log.Fatalf("seed user %s: %v", u.ID, err)
		}
	}

	hub := events.NewHub()

	placesClient := places.New(places.Config{
		APIKey:         apiKey,
		BaseURL:        cfg.Places.BaseURL,
		Timeout:        time.Duration(cfg.Places.TimeoutSeconds) * time.Second,
		DetailInterval: time.Duration(cfg.Places.DetailIntervalMs) * time.Millisecond,
	})

	stager := staging.Handler{Store: st}
	runner := &discover.Runner{
		Places:    placesClient,
		Store:     st,
		Hub:       hub,
		RadiusM:   cfg.Places.RadiusM,
		OnCreated: stager.OnLeadCreated,
	}

	var findStatus atomic.Value
	findStatus.Store(httpapi.FindStatus{})

	if cfg.Analyzer.Enabled {
		an := &analyze.Analyzer{
			Store: st,
			Probe: analyze.NewProbe(10 * time.Second),
			Hub:   hub,
			Batch: cfg.Analyzer.Batch,
		}
		interval := time.Duration(cfg.Analyzer.IntervalSeconds) * time.Second
		go scheduler.Every(ctx, interval, "analyzer", func(ctx context.Context) error {
			n, err := an.Sweep(ctx)
			if n > 0 {
				log.Printf("[analyzer] advanced %d leads", n)
			}
			return err
		})
	}

	if cfg.Cleanup.Enabled {
		interval := time.Duration(cfg.Cleanup.IntervalHours) * time.Hour
		go scheduler.Every(ctx, interval, "cleanup", func(ctx context.Context) error {
			n, err := st.CleanupOldLeads(ctx)
			if n > 0 {
				log.Printf("[cleanup] pruned %d stale leads", n)
			}
			return err
		})
	}

	mux := httpapi.NewMux(httpapi.Deps{
		Store:       st,
		Hub:         hub,
		Runner:      runner,
		Places:      placesClient,
		CfgVal:      &cfgVal,
		FindStatus:  &findStatus,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
	})
	handler := httpapi.Chain(mux,
		httpapi.Cors,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
	)

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (store=%s data=%s)", addr, cfg.Store.Driver, dataDir)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}
