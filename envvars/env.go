package envvars

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	Environment    = "ENVIRONMENT"
	TrackerBaseURL = "TRACKER_BASE_URL"
	CacheBackend   = "CACHE_BACKEND"
	RosterSource   = "ROSTER_SOURCE"
	MatchStrategy  = "MATCH_STRATEGY"
	Mode           = "MODE"
)

const (
	ProductionEnv = "production"
	DevEnv        = "dev"
)

const (
	BatchMode = "batch"
	ServeMode = "serve"
)

type Env struct {
	Environment string `envconfig:"ENVIRONMENT" default:"dev"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	Mode        string `envconfig:"MODE" default:"batch"`

	TrackerBaseURL string        `envconfig:"TRACKER_BASE_URL" default:"http://destinytracker.com/d2/api"`
	TrackerTimeout time.Duration `envconfig:"TRACKER_TIMEOUT" default:"30s"`

	RosterSource     string `envconfig:"ROSTER_SOURCE" default:"file"`
	RosterFile       string `envconfig:"ROSTER_FILE" default:"./data/destiny-clan-members.json"`
	FirestoreProject string `envconfig:"FIRESTORE_PROJECT"`
	RosterCollection string `envconfig:"ROSTER_COLLECTION" default:"members"`
	RosterBucket     string `envconfig:"ROSTER_BUCKET"`
	RosterObject     string `envconfig:"ROSTER_OBJECT" default:"destiny-clan-members.json"`

	CacheBackend    string `envconfig:"CACHE_BACKEND" default:"file"`
	CacheDir        string `envconfig:"CACHE_DIR" default:"./data/cache"`
	CacheSQLitePath string `envconfig:"CACHE_SQLITE_PATH" default:"./data/cache.db"`
	CacheBucket     string `envconfig:"CACHE_BUCKET"`
	CachePrefix     string `envconfig:"CACHE_PREFIX" default:"pgcr/"`

	OutputDir     string `envconfig:"OUTPUT_DIR" default:"./data/out"`
	MatchStrategy string `envconfig:"MATCH_STRATEGY" default:"id"`

	ServerAddr  string `envconfig:"SERVER_ADDR" default:"0.0.0.0:8080"`
	RunSchedule string `envconfig:"RUN_SCHEDULE"`
}

// GetEnv loads a .env file when one exists and then reads the process environment.
func GetEnv() (Env, error) {
	_ = godotenv.Load()

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := env.validate(); err != nil {
		return Env{}, err
	}
	return env, nil
}

func (e Env) validate() error {
	switch e.CacheBackend {
	case "file", "sqlite":
	case "gcs":
		if e.CacheBucket == "" {
			return fmt.Errorf("CACHE_BUCKET required for gcs cache backend")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", e.CacheBackend)
	}
	switch e.RosterSource {
	case "file":
	case "firestore":
		if e.FirestoreProject == "" {
			return fmt.Errorf("FIRESTORE_PROJECT required for firestore roster source")
		}
	case "gcs":
		if e.RosterBucket == "" {
			return fmt.Errorf("ROSTER_BUCKET required for gcs roster source")
		}
	default:
		return fmt.Errorf("unknown roster source %q", e.RosterSource)
	}
	if e.MatchStrategy != "id" && e.MatchStrategy != "displayName" {
		return fmt.Errorf("unknown match strategy %q", e.MatchStrategy)
	}
	if e.Mode != BatchMode && e.Mode != ServeMode {
		return fmt.Errorf("unknown mode %q", e.Mode)
	}
	return nil
}

func IsProd(env Env) bool {
	return env.Environment == ProductionEnv
}

func IsDev(env Env) bool {
	return env.Environment == DevEnv
}
