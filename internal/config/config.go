package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// UserSeed declares an engine account in config; seeded into the store
// at startup. The token is the bearer credential for the HTTP API.
type UserSeed struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Token          string `yaml:"token"`
	TargetLocation string `yaml:"target_location"`
	TargetIndustry string `yaml:"target_industry"`
	LeadsPerSearch int    `yaml:"leads_per_search"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Store struct {
		Driver      string `yaml:"driver"` // sqlite | postgres
		PostgresDSN string `yaml:"postgres_dsn"`
	} `yaml:"store"`

	Places struct {
		BaseURL          string `yaml:"base_url"` // override for local fakes
		RadiusM          int    `yaml:"radius_m"`
		DetailIntervalMs int    `yaml:"detail_interval_ms"`
		TimeoutSeconds   int    `yaml:"timeout_seconds"`
	} `yaml:"places"`

	Analyzer struct {
		Enabled         bool `yaml:"enabled"`
		IntervalSeconds int  `yaml:"interval_seconds"`
		Batch           int  `yaml:"batch"`
	} `yaml:"analyzer"`

	Cleanup struct {
		Enabled       bool `yaml:"enabled"`
		IntervalHours int  `yaml:"interval_hours"`
	} `yaml:"cleanup"`

	Users []UserSeed `yaml:"users"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// LoadEnv pulls a local .env into the process environment; absence is
// fine, system env vars still apply (PLACES_API_KEY, LEADSCOUT_DATA_DIR).
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env file found, using system env vars")
	}
}
