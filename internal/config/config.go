// Package config builds the environment configuration once at startup.
// The resulting Config is passed explicitly to whatever needs it; there is
// no package-level singleton.
package config

import (
	"os"
	"strings"
	"time"
)

// Environment names the deployment tier the process runs in.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
	EnvSandbox     Environment = "sandbox"
)

// DataSource selects the storage backend the service runs against.
type DataSource string

const (
	SourcePostgres DataSource = "postgres"
	SourceMongo    DataSource = "mongo"
	SourceMemory   DataSource = "memory"
)

// Features are the per-environment feature flags.
type Features struct {
	AdminControls        bool
	DebugMode            bool
	ExperimentalFeatures bool
}

// Config is the complete runtime configuration, resolved once in main.
type Config struct {
	Environment Environment
	DataSource  DataSource

	Port           string
	PostgresDSN    string
	MongoURI       string
	MongoDatabase  string
	APIBaseURL     string
	RequestTimeout time.Duration

	Features Features
}

// defaults per environment, mirroring the tier table the frontend shipped
// with: local tiers talk to the document store directly, hosted tiers go
// through Postgres.
var tiers = map[Environment]Config{
	EnvDevelopment: {
		Environment: EnvDevelopment,
		DataSource:  SourceMemory,
		Features:    Features{AdminControls: true, DebugMode: true, ExperimentalFeatures: true},
	},
	EnvStaging: {
		Environment: EnvStaging,
		DataSource:  SourcePostgres,
		Features:    Features{AdminControls: true, DebugMode: true},
	},
	EnvProduction: {
		Environment: EnvProduction,
		DataSource:  SourcePostgres,
		Features:    Features{AdminControls: true},
	},
	EnvSandbox: {
		Environment: EnvSandbox,
		DataSource:  SourceMongo,
		Features:    Features{AdminControls: true, DebugMode: true, ExperimentalFeatures: true},
	},
}

// DetectEnvironment resolves the current environment. An explicit
// ENVIRONMENT value wins; otherwise the host name is matched heuristically,
// defaulting to production so an unrecognized host never gets debug features.
func DetectEnvironment(explicit, hostname string) Environment {
	if env := Environment(explicit); env != "" {
		if _, ok := tiers[env]; ok {
			return env
		}
	}

	switch {
	case hostname == "localhost" || hostname == "127.0.0.1":
		return EnvDevelopment
	case strings.Contains(hostname, "staging") || strings.Contains(hostname, "dev"):
		return EnvStaging
	case strings.Contains(hostname, "sandbox") || strings.Contains(hostname, "experimental"):
		return EnvSandbox
	default:
		return EnvProduction
	}
}

// Load builds the Config for the detected environment, applying env var
// overrides on top of the tier defaults.
func Load() Config {
	hostname, _ := os.Hostname()
	env := DetectEnvironment(os.Getenv("ENVIRONMENT"), hostname)

	cfg := tiers[env]
	if src := DataSource(os.Getenv("DATA_SOURCE")); src != "" {
		cfg.DataSource = src
	}

	cfg.Port = getEnv("PORT", "8080")
	cfg.PostgresDSN = getEnv("POSTGRES_DSN",
		"host=localhost port=5432 user=postgres password=postgres dbname=presents sslmode=disable")
	cfg.MongoURI = getEnv("MONGO_URI", "mongodb://localhost:27017")
	cfg.MongoDatabase = getEnv("MONGO_DB", "presents")
	cfg.APIBaseURL = getEnv("API_BASE_URL", "http://localhost:3001/api")

	cfg.RequestTimeout = 15 * time.Second
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
