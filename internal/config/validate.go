package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// Err flattens the error list into one error, nil when valid.
func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return fmt.Errorf("invalid config: %s", strings.Join(v.Errors, "; "))
}

// NormalizeAndValidate trims user-editable fields, applies defaults and
// reports anything that would make the engine misbehave.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	switch out.Store.Driver {
	case "", "sqlite":
		out.Store.Driver = "sqlite"
	case "postgres":
		if strings.TrimSpace(out.Store.PostgresDSN) == "" {
			res.addErr("store.postgres_dsn is required when store.driver=postgres")
		}
	default:
		res.addErr("store.driver must be sqlite or postgres, got %q", out.Store.Driver)
	}

	if out.Places.RadiusM <= 0 {
		out.Places.RadiusM = 8000
	}
	if out.Places.TimeoutSeconds <= 0 {
		out.Places.TimeoutSeconds = 10
	}
	if out.Places.DetailIntervalMs <= 0 {
		out.Places.DetailIntervalMs = 200
	} else if out.Places.DetailIntervalMs < 200 {
		res.addWarn("places.detail_interval_ms below 200 may trip upstream rate limits")
	}

	if out.Analyzer.Enabled && out.Analyzer.IntervalSeconds <= 0 {
		res.addErr("analyzer.interval_seconds must be > 0 when analyzer is enabled")
	}
	if out.Cleanup.Enabled && out.Cleanup.IntervalHours <= 0 {
		res.addErr("cleanup.interval_hours must be > 0 when cleanup is enabled")
	}

	seenID := map[string]bool{}
	seenToken := map[string]bool{}
	for i := range out.Users {
		u := &out.Users[i]
		u.ID = strings.TrimSpace(u.ID)
		u.Token = strings.TrimSpace(u.Token)
		u.TargetLocation = strings.TrimSpace(u.TargetLocation)
		u.TargetIndustry = strings.TrimSpace(u.TargetIndustry)

		if u.ID == "" {
			res.addErr("users[%d].id is required", i)
			continue
		}
		if seenID[u.ID] {
			res.addErr("duplicate user id %q", u.ID)
		}
		seenID[u.ID] = true

		if u.Token == "" {
			res.addWarn("users[%d] (%s) has no token; it cannot call the API", i, u.ID)
		} else if seenToken[u.Token] {
			res.addErr("users[%d] (%s) reuses another user's token", i, u.ID)
		}
		seenToken[u.Token] = true

		if u.LeadsPerSearch <= 0 {
			u.LeadsPerSearch = 20
		}
		if u.LeadsPerSearch > 20 {
			res.addWarn("users[%d] (%s) leads_per_search %d is capped at 20 per run", i, u.ID, u.LeadsPerSearch)
		}
		if u.TargetLocation == "" || u.TargetIndustry == "" {
			res.addWarn("users[%d] (%s) has incomplete search preferences; /find will fail until set", i, u.ID)
		}
	}

	if len(out.Users) == 0 {
		res.addWarn("no users configured; only the debug endpoint will work")
	}

	return out, res
}
