// Package avisha is a small property management ledger. A Controller owns the ledger of tenants,
// sites and leases, applies one command at a time and persists the whole ledger after each one.
package avisha

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/tfkr-ae/avisha/core"
	"github.com/tfkr-ae/avisha/domain"
	"github.com/tfkr-ae/avisha/persist"
	"github.com/tfkr-ae/avisha/validate"
	"go.uber.org/zap"
)

// ErrUnknownIntent is returned by Dispatch for an intent it cannot apply.
var ErrUnknownIntent = errors.New("unknown intent")

// Controller dispatches commands against the ledger.
type Controller struct {
	mu             sync.Mutex
	ledger         *domain.Ledger
	repo           domain.BlobRepository
	gatewayOptions []func(*persist.Gateway) error
	closers        []io.Closer

	Config   *Config                // Loaded configuration, nil unless WithConfigDir is used
	Gateway  *persist.Gateway       // Persistence of the ledger blob
	Logger   *zap.Logger            // Structured logger
	Metrics  *Metrics               // Command counters
	OnRender func(domain.Snapshot) // Called with the new state after every command
}

// New creates a Controller, applies options and restores the stored ledger.
// Without WithRepo or WithConfigDir the ledger lives in memory only.
//
// Parameters:
//   - options: Variadic list of option functions to configure the controller
//
// Returns:
//   - *Controller: Controller holding the restored ledger
//   - error: Configuration error if any option fails or the gateway cannot be built
func New(options ...func(*Controller) error) (*Controller, error) {
	c := &Controller{}
	err := c.WithOptions(options...)
	if err != nil {
		c.Close()
		return nil, err
	}

	if c.Logger == nil {
		c.Logger = zap.NewNop()
		if c.Config != nil {
			logger, err := core.NewLogger(c.Config.LogMode)
			if err != nil {
				c.Close()
				return nil, err
			}
			c.Logger = logger
		}
	}

	if c.Metrics == nil {
		c.Metrics, _ = NewMetrics(nil)
	}

	if c.repo == nil {
		c.repo = persist.NewMemoryRepository()
	}

	gatewayOptions := append(c.gatewayOptions, persist.WithLogger(c.Logger))
	c.Gateway, err = persist.NewGateway(c.repo, gatewayOptions...)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("creating gateway : %w", err)
	}

	c.ledger = c.Gateway.Restore()
	tenants, sites, leases := c.ledger.Counts()
	c.Logger.Info("ledger restored",
		zap.String("key", c.Gateway.Key()),
		zap.Int("tenants", tenants),
		zap.Int("sites", sites),
		zap.Int("leases", leases),
	)
	return c, nil
}

// Close releases the database opened by WithConfigDir.
func (c *Controller) Close() error {
	var errs []error
	for _, closer := range c.closers {
		errs = append(errs, closer.Close())
	}
	c.closers = nil
	return errors.Join(errs...)
}

// Snapshot returns a copy of the current ledger.
func (c *Controller) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.Snapshot()
}

// Dispatch applies intent, stores the ledger and renders the new state.
//
// Validation failures are queued on the ledger and are not returned. The returned error is
// non-nil when the intent is unknown or the ledger could not be stored; in the latter case the
// in-memory transition has still happened.
func (c *Controller) Dispatch(intent Intent) (domain.Snapshot, error) {
	snapshot, err := c.dispatch(intent)
	if c.OnRender != nil {
		c.OnRender(snapshot)
	}
	return snapshot, err
}

func (c *Controller) dispatch(intent Intent) (domain.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if intent == nil {
		return c.ledger.Snapshot(), ErrUnknownIntent
	}

	command := intent.command()
	logger := c.Logger.With(core.CommandFields(command)...)

	outcome, err := c.apply(intent, logger)
	if err != nil {
		return c.ledger.Snapshot(), err
	}
	c.Metrics.recordCommand(command, outcome)

	if err := c.Gateway.Store(c.ledger); err != nil {
		c.Metrics.recordStoreFailure()
		logger.Error("storing ledger failed", zap.Error(err))
		return c.ledger.Snapshot(), fmt.Errorf("persisting after %s : %w", command, err)
	}

	return c.ledger.Snapshot(), nil
}

func (c *Controller) apply(intent Intent, logger *zap.Logger) (string, error) {
	switch in := intent.(type) {
	case RegisterTenant:
		return c.registerTenant(in, logger), nil
	case ListSite:
		return c.listSite(in, logger), nil
	case LeaseSite:
		return c.leaseSite(in, logger), nil
	case DismissError:
		return c.dismissError(in, logger), nil
	case ToggleDebug:
		c.ledger.SetDebug(!c.ledger.Debug())
		logger.Debug("debug toggled", zap.Bool("debug", c.ledger.Debug()))
		return outcomeApplied, nil
	case Reset:
		c.ledger.Reset()
		logger.Info("ledger reset")
		return outcomeApplied, nil
	default:
		return "", fmt.Errorf("%w %T", ErrUnknownIntent, intent)
	}
}

func (c *Controller) registerTenant(in RegisterTenant, logger *zap.Logger) string {
	input := validate.TenantInput{Name: in.Name, Contact: in.Contact}
	if err := validate.Check(validate.Tenant{}, c.ledger, input); err != nil {
		return c.reject(err, logger)
	}

	if err := c.ledger.InsertTenant(domain.NewTenant(in.Name, in.Contact)); err != nil {
		return c.reject(err, logger)
	}

	logger.Debug("tenant registered", zap.String("tenant", in.Name))
	return outcomeApplied
}

func (c *Controller) listSite(in ListSite, logger *zap.Logger) string {
	input := validate.SiteInput{Number: in.Number, Kind: domain.NormalizeKind(in.Kind)}
	if err := validate.Check(validate.Site{}, c.ledger, input); err != nil {
		return c.reject(err, logger)
	}

	if err := c.ledger.InsertSite(domain.Site{Number: input.Number, Kind: input.Kind}); err != nil {
		return c.reject(err, logger)
	}

	logger.Debug("site listed", zap.String("site", in.Number), zap.Stringer("kind", input.Kind))
	return outcomeApplied
}

func (c *Controller) leaseSite(in LeaseSite, logger *zap.Logger) string {
	input := validate.LeaseInput{
		Site:     in.Site,
		Tenant:   in.Tenant,
		Start:    in.Start,
		Duration: in.Duration,
		Rent:     in.Rent,
	}
	lease, err := validate.CheckLease(c.ledger, input)
	if err != nil {
		return c.reject(err, logger)
	}

	inserted, err := c.ledger.InsertLease(lease)
	if err != nil {
		return c.reject(err, logger)
	}

	if !inserted {
		logger.Debug("lease already recorded", zap.String("site", lease.SiteNumber), zap.String("tenant", lease.TenantName))
		return outcomeNoop
	}

	logger.Debug("site leased",
		zap.String("site", lease.SiteNumber),
		zap.String("tenant", lease.TenantName),
		zap.Stringer("start", lease.Term.Start),
	)
	return outcomeApplied
}

func (c *Controller) dismissError(in DismissError, logger *zap.Logger) string {
	if err := c.ledger.DismissError(in.Index); err != nil {
		logger.Debug("dismiss ignored", zap.Int("index", in.Index), zap.Error(err))
		return outcomeNoop
	}
	return outcomeApplied
}

// reject queues the messages carried by err on the ledger.
func (c *Controller) reject(err error, logger *zap.Logger) string {
	var messages []string
	var verr *validate.Error
	if errors.As(err, &verr) {
		messages = verr.Messages()
	} else {
		messages = []string{err.Error()}
	}

	for _, message := range messages {
		c.ledger.PushError(message)
	}

	logger.Info("command rejected", zap.Strings("errors", messages))
	return outcomeRejected
}

// RegisterTenant dispatches a RegisterTenant intent.
func (c *Controller) RegisterTenant(name, contact string) (domain.Snapshot, error) {
	return c.Dispatch(RegisterTenant{Name: name, Contact: contact})
}

// ListSite dispatches a ListSite intent.
func (c *Controller) ListSite(number, kind string) (domain.Snapshot, error) {
	return c.Dispatch(ListSite{Number: number, Kind: kind})
}

// LeaseSite dispatches a LeaseSite intent.
func (c *Controller) LeaseSite(site, tenant, start, duration, rent string) (domain.Snapshot, error) {
	return c.Dispatch(LeaseSite{Site: site, Tenant: tenant, Start: start, Duration: duration, Rent: rent})
}

// DismissError dispatches a DismissError intent.
func (c *Controller) DismissError(index int) (domain.Snapshot, error) {
	return c.Dispatch(DismissError{Index: index})
}

// ToggleDebug dispatches a ToggleDebug intent.
func (c *Controller) ToggleDebug() (domain.Snapshot, error) {
	return c.Dispatch(ToggleDebug{})
}

// Reset dispatches a Reset intent.
func (c *Controller) Reset() (domain.Snapshot, error) {
	return c.Dispatch(Reset{})
}

// EditTenant validates a tenant form that is still being filled in.
// Empty fields named in editing do not report "must be non-zero".
func (c *Controller) EditTenant(in validate.TenantInput, editing ...string) validate.FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return validate.Edit(validate.Tenant{}, c.ledger, in, editing...)
}

// EditSite validates a site form that is still being filled in.
func (c *Controller) EditSite(in validate.SiteInput, editing ...string) validate.FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return validate.Edit(validate.Site{}, c.ledger, in, editing...)
}

// EditLease validates a lease form that is still being filled in.
func (c *Controller) EditLease(in validate.LeaseInput, editing ...string) validate.FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return validate.Edit(validate.Lease{}, c.ledger, in, editing...)
}
