package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	DatabaseURI         string
	TaxRate             float64
	LockTimeout         time.Duration
	OrderExpiryAge      time.Duration
	OrderExpiryInterval time.Duration
	ExpiryBatchSize     int
	WorkerPoolSize      int
	ShutdownTimeout     time.Duration
}

const (
	defaultRunAddress          = ":8080"
	defaultTaxRate             = 21.0
	defaultLockTimeout         = 3 * time.Second
	defaultOrderExpiryInterval = time.Minute
	defaultExpiryBatchSize     = 32
	defaultWorkerPoolSize      = 4
	defaultShutdownTimeout     = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		TaxRate:             getFloat(lookup, "TAX_RATE", defaultTaxRate),
		LockTimeout:         getDuration(lookup, "LOCK_TIMEOUT", defaultLockTimeout),
		OrderExpiryAge:      getDuration(lookup, "ORDER_EXPIRY_AGE", 0),
		OrderExpiryInterval: getDuration(lookup, "ORDER_EXPIRY_INTERVAL", defaultOrderExpiryInterval),
		ExpiryBatchSize:     getInt(lookup, "EXPIRY_BATCH_SIZE", defaultExpiryBatchSize),
		WorkerPoolSize:      getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("ordersvc", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		lockTimeoutStr     = cfg.LockTimeout.String()
		expiryAgeStr       = cfg.OrderExpiryAge.String()
		expiryIntervalStr  = cfg.OrderExpiryInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.Float64Var(&cfg.TaxRate, "tax-rate", cfg.TaxRate, "Flat tax rate percentage applied to orders")
	fs.StringVar(&lockTimeoutStr, "lock-timeout", lockTimeoutStr, "Row lock acquisition timeout")
	fs.StringVar(&expiryAgeStr, "expiry-age", expiryAgeStr, "Age after which unconfirmed orders are cancelled (0 disables)")
	fs.StringVar(&expiryIntervalStr, "expiry-interval", expiryIntervalStr, "Interval between stale order sweeps")
	fs.IntVar(&cfg.ExpiryBatchSize, "expiry-batch", cfg.ExpiryBatchSize, "Maximum orders cancelled per sweep")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent expiry workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.LockTimeout, err = time.ParseDuration(lockTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid lock timeout: %w", err)
	}

	if cfg.OrderExpiryAge, err = time.ParseDuration(expiryAgeStr); err != nil {
		return nil, fmt.Errorf("invalid expiry age: %w", err)
	}

	if cfg.OrderExpiryInterval, err = time.ParseDuration(expiryIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid expiry interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.TaxRate < 0 {
		return nil, fmt.Errorf("tax rate must not be negative")
	}

	if cfg.OrderExpiryAge < 0 {
		cfg.OrderExpiryAge = 0
	}

	if cfg.LockTimeout <= 0 {
		cfg.LockTimeout = defaultLockTimeout
	}

	if cfg.OrderExpiryInterval <= 0 {
		cfg.OrderExpiryInterval = defaultOrderExpiryInterval
	}

	if cfg.ExpiryBatchSize <= 0 {
		cfg.ExpiryBatchSize = defaultExpiryBatchSize
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
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
