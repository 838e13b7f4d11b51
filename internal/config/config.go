package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// Config holds settings for both binaries, loaded from environment
// variables with flag overrides. The server cares about RunAddress and
// DatabaseURI; a terminal cares about RemoteAddress, AMQPAddress, and the
// snapshot path. An empty RemoteAddress puts a terminal into offline,
// single-terminal mode.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	RemoteAddress     string
	AMQPAddress       string
	SnapshotPath      string
	ReconcileInterval time.Duration
	ShutdownTimeout   time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultSnapshotPath      = "warungpos-snapshot.json"
	defaultReconcileInterval = 30 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		RemoteAddress:     getString(lookup, "REMOTE_ADDRESS", ""),
		AMQPAddress:       getString(lookup, "AMQP_ADDRESS", ""),
		SnapshotPath:      getString(lookup, "SNAPSHOT_PATH", defaultSnapshotPath),
		ReconcileInterval: getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("warungpos", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		reconcileStr = cfg.ReconcileInterval.String()
		shutdownStr  = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RemoteAddress, "r", cfg.RemoteAddress, "Remote data service base URL (empty for offline mode)")
	fs.StringVar(&cfg.AMQPAddress, "mq", cfg.AMQPAddress, "RabbitMQ URL for the push channel")
	fs.StringVar(&cfg.SnapshotPath, "snapshot", cfg.SnapshotPath, "Offline snapshot file path")
	fs.StringVar(&reconcileStr, "reconcile-interval", reconcileStr, "Interval between reconciliation fetches")
	fs.StringVar(&shutdownStr, "shutdown-timeout", shutdownStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
