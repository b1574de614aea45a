package persist

import (
	"errors"
	"fmt"

	"github.com/tfkr-ae/avisha/domain"
	"go.uber.org/zap"
)

// DefaultKey is the slot the ledger is stored under unless configured otherwise.
const DefaultKey = "yew.avisha.self"

// Gateway persists the ledger to a single slot of a BlobRepository.
type Gateway struct {
	repo   domain.BlobRepository
	key    string
	codec  Codec
	logger *zap.Logger
}

// WithKey stores the ledger under key instead of DefaultKey.
func WithKey(key string) func(*Gateway) error {
	return func(g *Gateway) error {
		if key == "" {
			return errors.New("storage key must not be empty")
		}
		g.key = key
		return nil
	}
}

// WithCodec sets the codec used when storing. Restoring reads every codec.
func WithCodec(codec Codec) func(*Gateway) error {
	return func(g *Gateway) error {
		if _, err := ParseFormat(string(codec.Format)); err != nil {
			return err
		}
		g.codec = codec
		return nil
	}
}

// WithLogger sets the logger used to report swallowed restore failures.
func WithLogger(logger *zap.Logger) func(*Gateway) error {
	return func(g *Gateway) error {
		if logger == nil {
			logger = zap.NewNop()
		}
		g.logger = logger
		return nil
	}
}

// NewGateway returns a Gateway over repo.
func NewGateway(repo domain.BlobRepository, options ...func(*Gateway) error) (*Gateway, error) {
	if repo == nil {
		return nil, errors.New("gateway needs a repository")
	}

	g := &Gateway{
		repo:   repo,
		key:    DefaultKey,
		codec:  Codec{Format: FormatJSON},
		logger: zap.NewNop(),
	}

	for _, option := range options {
		if err := option(g); err != nil {
			return nil, fmt.Errorf("applying option on gateway : %w", err)
		}
	}
	return g, nil
}

// Key returns the slot the gateway writes to.
func (g *Gateway) Key() string {
	return g.key
}

// Restore returns the stored ledger. A missing slot or a blob that cannot be decoded yields an
// empty ledger; the failure is logged and not returned.
func (g *Gateway) Restore() *domain.Ledger {
	blob, err := g.repo.GetBlob(g.key)
	if err != nil {
		if errors.Is(err, domain.ErrBlobNotFound) {
			g.logger.Debug("no stored ledger, starting empty", zap.String("key", g.key))
		} else {
			g.logger.Warn("reading stored ledger failed, starting empty", zap.String("key", g.key), zap.Error(err))
		}
		return domain.NewLedger()
	}

	ledger, err := g.decode(blob)
	if err != nil {
		g.logger.Warn("decoding stored ledger failed, starting empty",
			zap.String("key", g.key),
			zap.Int("size", len(blob)),
			zap.Error(err),
		)
		return domain.NewLedger()
	}

	return ledger
}

// Store serializes the whole ledger and overwrites the slot.
func (g *Gateway) Store(l *domain.Ledger) error {
	blob, err := g.encode(l)
	if err != nil {
		return err
	}

	if err := g.repo.PutBlob(g.key, blob); err != nil {
		return fmt.Errorf("storing ledger under %s : %w", g.key, err)
	}
	return nil
}

func (g *Gateway) encode(l *domain.Ledger) ([]byte, error) {
	blob, err := g.codec.Encode(fromDomainLedger(l.Snapshot()))
	if err != nil {
		return nil, fmt.Errorf("encoding ledger : %w", err)
	}
	return blob, nil
}

func (g *Gateway) decode(blob []byte) (*domain.Ledger, error) {
	var rec ledgerRecord
	if err := g.codec.Decode(blob, &rec); err != nil {
		return nil, fmt.Errorf("decoding ledger : %w", err)
	}
	return toDomainLedger(&rec)
}
