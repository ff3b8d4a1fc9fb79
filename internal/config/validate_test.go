package config

import "testing"

func validConfig() Config {
	var cfg Config
	cfg.App.Port = 38472
	cfg.App.DataDir = "."
	cfg.Users = []UserSeed{{
		ID:             "demo",
		Token:          "tok-demo",
		TargetLocation: "Austin, TX",
		TargetIndustry: "cafe",
		LeadsPerSearch: 5,
	}}
	return cfg
}

func TestNormalizeAndValidateDefaults(t *testing.T) {
	out, res := NormalizeAndValidate(validConfig())
	if !res.OK() {
		t.Fatalf("valid config rejected: %v", res.Errors)
	}
	if out.Store.Driver != "sqlite" {
		t.Errorf("driver default = %q, want sqlite", out.Store.Driver)
	}
	if out.Places.RadiusM != 8000 || out.Places.TimeoutSeconds != 10 || out.Places.DetailIntervalMs != 200 {
		t.Errorf("places defaults wrong: %+v", out.Places)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.App.Port = 0 }},
		{"bad driver", func(c *Config) { c.Store.Driver = "mongo" }},
		{"postgres without dsn", func(c *Config) { c.Store.Driver = "postgres" }},
		{"user without id", func(c *Config) { c.Users[0].ID = "" }},
		{"duplicate token", func(c *Config) {
			c.Users = append(c.Users, UserSeed{ID: "other", Token: c.Users[0].Token})
		}},
		{"analyzer zero interval", func(c *Config) {
			c.Analyzer.Enabled = true
			c.Analyzer.IntervalSeconds = 0
		}},
	}
	for _, tc := range cases {
		cfg := validConfig()
		tc.mutate(&cfg)
		if _, res := NormalizeAndValidate(cfg); res.OK() {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestValidateWarnsOnBigLimit(t *testing.T) {
	cfg := validConfig()
	cfg.Users[0].LeadsPerSearch = 50
	_, res := NormalizeAndValidate(cfg)
	if !res.OK() {
		t.Fatalf("big limit should warn, not error: %v", res.Errors)
	}
	if len(res.Warnings) == 0 {
		t.Error("expected a warning about the 20-candidate cap")
	}
}
