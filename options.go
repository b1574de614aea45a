package avisha

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tfkr-ae/avisha/db"
	"github.com/tfkr-ae/avisha/domain"
	"github.com/tfkr-ae/avisha/persist"
	"go.uber.org/zap"
)

// WithOptions applies a series of configuration functions to the controller.
// Each option function can modify the controller and return an error if it fails.
//
// Parameters:
//   - options: Variadic list of configuration functions
//
// Returns:
//   - error: First error encountered from any option function
func (c *Controller) WithOptions(options ...func(*Controller) error) error {
	for _, option := range options {
		err := option(c)
		if err != nil {
			return fmt.Errorf("applying option on avisha : %w", err)
		}
	}
	return nil
}

// WithLogger sets the controller logger. A nil logger is replaced by a no-op logger.
func WithLogger(logger *zap.Logger) func(*Controller) error {
	return func(c *Controller) error {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.Logger = logger
		return nil
	}
}

// WithRepo stores the ledger in repo instead of an in-memory repository.
func WithRepo(repo domain.BlobRepository) func(*Controller) error {
	return func(c *Controller) error {
		if repo == nil {
			return errors.New("repository must not be nil")
		}
		c.repo = repo
		return nil
	}
}

// WithStorageKey stores the ledger under key.
func WithStorageKey(key string) func(*Controller) error {
	return func(c *Controller) error {
		c.gatewayOptions = append(c.gatewayOptions, persist.WithKey(key))
		return nil
	}
}

// WithCodec sets the codec used to write the ledger blob.
func WithCodec(codec persist.Codec) func(*Controller) error {
	return func(c *Controller) error {
		c.gatewayOptions = append(c.gatewayOptions, persist.WithCodec(codec))
		return nil
	}
}

// WithConfigDir loads config.yaml from appConfigDir and opens the SQLite database it names.
// Storage key and codec come from the configuration; WithStorageKey and WithCodec given later
// take precedence. Unless WithLogger is also given, the logger is built from log_mode.
//
// Parameters:
//   - appConfigDir: Path to the configuration directory, created if missing
//
// Returns:
//   - func(*Controller) error: Configuration function that loads the config and opens the database
func WithConfigDir(appConfigDir string) func(*Controller) error {
	return func(c *Controller) error {
		cfg, err := LoadConfig(appConfigDir)
		if err != nil {
			return err
		}

		codec, err := cfg.BlobCodec()
		if err != nil {
			return fmt.Errorf("reading codec from config : %w", err)
		}

		repo, err := db.Open(cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("opening database %s : %w", cfg.DatabasePath(), err)
		}

		c.Config = cfg
		c.repo = repo
		c.closers = append(c.closers, repo)
		c.gatewayOptions = append(c.gatewayOptions, persist.WithKey(cfg.StorageKey), persist.WithCodec(codec))
		return nil
	}
}

// WithRenderHandler registers fn to receive a snapshot after every dispatched command.
func WithRenderHandler(fn func(domain.Snapshot)) func(*Controller) error {
	return func(c *Controller) error {
		c.OnRender = fn
		return nil
	}
}

// WithMetrics registers the controller metrics with reg.
//
// Parameters:
//   - reg: Registry receiving avisha_commands_total and avisha_store_failures_total
//
// Returns:
//   - func(*Controller) error: Configuration function that fails if reg already holds the metrics
func WithMetrics(reg prometheus.Registerer) func(*Controller) error {
	return func(c *Controller) error {
		m, err := NewMetrics(reg)
		if err != nil {
			return err
		}
		c.Metrics = m
		return nil
	}
}
