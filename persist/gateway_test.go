package persist

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/tfkr-ae/avisha/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type failingRepo struct {
	err error
}

func (f failingRepo) GetBlob(string) ([]byte, error) { return nil, f.err }
func (f failingRepo) PutBlob(string, []byte) error   { return f.err }

func setupGateway(t *testing.T, options ...func(*Gateway) error) (*Gateway, *MemoryRepository) {
	t.Helper()

	repo := NewMemoryRepository()
	g, err := NewGateway(repo, options...)
	if err != nil {
		t.Fatalf("NewGateway() failed: %v", err)
	}
	return g, repo
}

func testLedger(t *testing.T) *domain.Ledger {
	t.Helper()

	l := domain.NewLedger()
	for _, tenant := range []domain.Tenant{
		domain.NewTenant("Alice", "alice@x.com"),
		domain.NewTenant("Bob", ""),
	} {
		if err := l.InsertTenant(tenant); err != nil {
			t.Fatalf("inserting tenant: %v", err)
		}
	}
	for _, site := range []domain.Site{
		{Number: "12", Kind: domain.Cabin},
		{Number: "13", Kind: domain.Flat},
		{Number: "14", Kind: domain.OtherKind("Boat Shed")},
		{Number: "15", Kind: domain.House},
	} {
		if err := l.InsertSite(site); err != nil {
			t.Fatalf("inserting site: %v", err)
		}
	}
	lease := domain.Lease{
		TenantName: "Alice",
		SiteNumber: "12",
		Term:       domain.Term{Start: domain.NewDate(2024, time.January, 1), DurationDays: 14, RentPerPeriod: 500},
	}
	if _, err := l.InsertLease(lease); err != nil {
		t.Fatalf("inserting lease: %v", err)
	}
	l.PushError("tenant name must be unique")
	l.PushError("lease site must exist")
	l.SetDebug(true)
	return l
}

func TestGateway_RoundTrip(t *testing.T) {
	codecs := map[string]Codec{
		"json":        {Format: FormatJSON},
		"cbor":        {Format: FormatCBOR},
		"json brotli": {Format: FormatJSON, Compress: true},
		"cbor brotli": {Format: FormatCBOR, Compress: true},
	}

	for name, codec := range codecs {
		t.Run("should restore what was stored with "+name, func(t *testing.T) {
			g, _ := setupGateway(t, WithCodec(codec))
			ledger := testLedger(t)

			if err := g.Store(ledger); err != nil {
				t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
			}

			want := ledger.Snapshot()
			got := g.Restore().Snapshot()
			if !reflect.DeepEqual(want, got) {
				t.Fatalf("\nwanted:\n%v\ngot:\n%v", want, got)
			}
		})
	}

	edges := map[string]func(t *testing.T) *domain.Ledger{
		"labels with case and spaces": func(t *testing.T) *domain.Ledger {
			l := domain.NewLedger()
			for i, text := range []string{"  Boat Shed ", "tiny  Home", "Ünïcode hut", "HOUSE"} {
				site := domain.Site{Number: string(rune('a' + i)), Kind: domain.NormalizeKind(text)}
				if err := l.InsertSite(site); err != nil {
					t.Fatalf("inserting site: %v", err)
				}
			}
			return l
		},
		"debug without errors": func(t *testing.T) *domain.Ledger {
			l := domain.NewLedger()
			l.PushError("tenant name must be non-zero")
			if err := l.DismissError(0); err != nil {
				t.Fatalf("dismissing error: %v", err)
			}
			l.SetDebug(true)
			return l
		},
		"non ascii keys": func(t *testing.T) *domain.Ledger {
			l := domain.NewLedger()
			if err := l.InsertTenant(domain.NewTenant("Björn", "")); err != nil {
				t.Fatalf("inserting tenant: %v", err)
			}
			if err := l.InsertSite(domain.Site{Number: "Ø1", Kind: domain.Flat}); err != nil {
				t.Fatalf("inserting site: %v", err)
			}
			return l
		},
	}

	for name, build := range edges {
		for codecName, codec := range codecs {
			t.Run("should restore "+name+" with "+codecName, func(t *testing.T) {
				g, _ := setupGateway(t, WithCodec(codec))
				ledger := build(t)

				if err := g.Store(ledger); err != nil {
					t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
				}

				if got := g.Restore().Snapshot(); !reflect.DeepEqual(ledger.Snapshot(), got) {
					t.Fatalf("\nwanted:\n%+v\ngot:\n%+v", ledger.Snapshot(), got)
				}
			})
		}
	}

	t.Run("should round trip an empty ledger", func(t *testing.T) {
		g, _ := setupGateway(t)

		if err := g.Store(domain.NewLedger()); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		want := domain.NewLedger().Snapshot()
		if got := g.Restore().Snapshot(); !reflect.DeepEqual(want, got) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", want, got)
		}
	})

	t.Run("should read blobs written by a different codec", func(t *testing.T) {
		writer, repo := setupGateway(t, WithCodec(Codec{Format: FormatCBOR, Compress: true}))
		ledger := testLedger(t)
		if err := writer.Store(ledger); err != nil {
			t.Fatalf("storing ledger: %v", err)
		}

		reader, err := NewGateway(repo)
		if err != nil {
			t.Fatalf("NewGateway() failed: %v", err)
		}

		if got := reader.Restore().Snapshot(); !reflect.DeepEqual(ledger.Snapshot(), got) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", ledger.Snapshot(), got)
		}
	})

	t.Run("should store under the configured key", func(t *testing.T) {
		g, repo := setupGateway(t, WithKey("custom"))
		if err := g.Store(testLedger(t)); err != nil {
			t.Fatalf("storing ledger: %v", err)
		}

		if _, err := repo.GetBlob("custom"); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if _, err := repo.GetBlob(DefaultKey); !errors.Is(err, domain.ErrBlobNotFound) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", domain.ErrBlobNotFound, err)
		}
	})
}

func TestGateway_Restore(t *testing.T) {
	t.Run("should start empty when nothing is stored", func(t *testing.T) {
		g, _ := setupGateway(t)

		want := domain.NewLedger().Snapshot()
		if got := g.Restore().Snapshot(); !reflect.DeepEqual(want, got) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", want, got)
		}
	})

	t.Run("should start empty and log when the blob is corrupt", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		g, repo := setupGateway(t, WithLogger(zap.New(core)))

		if err := repo.PutBlob(DefaultKey, []byte("{not json")); err != nil {
			t.Fatalf("putting blob: %v", err)
		}

		want := domain.NewLedger().Snapshot()
		if got := g.Restore().Snapshot(); !reflect.DeepEqual(want, got) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", want, got)
		}

		if logs.Len() != 1 {
			t.Fatalf("\nwanted:\n1 warning\ngot:\n%d", logs.Len())
		}
	})

	t.Run("should start empty when a lease date is unreadable", func(t *testing.T) {
		g, repo := setupGateway(t)
		blob := []byte(`{"tenants":{},"sites":{},"leases":[{"tenant":"a","site":"1","term":{"start":"soon"}}],"errors":[]}`)
		if err := repo.PutBlob(DefaultKey, blob); err != nil {
			t.Fatalf("putting blob: %v", err)
		}

		if _, _, leases := g.Restore().Counts(); leases != 0 {
			t.Fatalf("\nwanted:\n0\ngot:\n%d", leases)
		}
	})

	t.Run("should start empty when the repository fails", func(t *testing.T) {
		g, err := NewGateway(failingRepo{err: errors.New("disk on fire")})
		if err != nil {
			t.Fatalf("NewGateway() failed: %v", err)
		}

		want := domain.NewLedger().Snapshot()
		if got := g.Restore().Snapshot(); !reflect.DeepEqual(want, got) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", want, got)
		}
	})

	t.Run("should read a hand written json blob", func(t *testing.T) {
		g, repo := setupGateway(t)
		blob := []byte(`{
			"tenants": {"Alice": {"id": "Alice", "name": "Alice", "contact": "alice@x.com"}},
			"sites": {"12": {"number": "12", "kind": {"tag": "other", "label": "Yurt"}}},
			"leases": [{"tenant": "Alice", "site": "12", "term": {"start": "2024-01-01", "duration_days": 14, "rent_per_period": 500}}],
			"errors": ["site number must be unique"]
		}`)
		if err := repo.PutBlob(DefaultKey, blob); err != nil {
			t.Fatalf("putting blob: %v", err)
		}

		l := g.Restore()

		site, ok := l.Site("12")
		if !ok || site.Kind != domain.OtherKind("Yurt") {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", domain.OtherKind("Yurt"), site.Kind)
		}

		want := []string{"site number must be unique"}
		if got := l.Errors(); !reflect.DeepEqual(want, got) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", want, got)
		}

		if len(l.SiteLeases("12")) != 1 {
			t.Fatalf("\nwanted:\n1 lease\ngot:\n%d", len(l.SiteLeases("12")))
		}
	})
}

func TestGateway_Store(t *testing.T) {
	t.Run("should overwrite the previous blob", func(t *testing.T) {
		g, repo := setupGateway(t)

		if err := g.Store(testLedger(t)); err != nil {
			t.Fatalf("storing ledger: %v", err)
		}
		if err := g.Store(domain.NewLedger()); err != nil {
			t.Fatalf("storing ledger: %v", err)
		}

		blob, err := repo.GetBlob(DefaultKey)
		if err != nil {
			t.Fatalf("getting blob: %v", err)
		}
		if bytes.Contains(blob, []byte("Alice")) {
			t.Fatalf("wanted the blob to be replaced\ngot:\n%s", blob)
		}
	})

	t.Run("should return repository errors", func(t *testing.T) {
		wantErr := errors.New("read only")
		g, err := NewGateway(failingRepo{err: wantErr})
		if err != nil {
			t.Fatalf("NewGateway() failed: %v", err)
		}

		if err := g.Store(domain.NewLedger()); !errors.Is(err, wantErr) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", wantErr, err)
		}
	})
}

func TestNewGateway(t *testing.T) {
	t.Run("should reject a nil repository", func(t *testing.T) {
		if _, err := NewGateway(nil); err == nil {
			t.Fatalf("\nwanted:\nerror\ngot:\nnil")
		}
	})

	t.Run("should reject an empty key", func(t *testing.T) {
		if _, err := NewGateway(NewMemoryRepository(), WithKey("")); err == nil {
			t.Fatalf("\nwanted:\nerror\ngot:\nnil")
		}
	})

	t.Run("should reject an unknown format", func(t *testing.T) {
		if _, err := NewGateway(NewMemoryRepository(), WithCodec(Codec{Format: "xml"})); err == nil {
			t.Fatalf("\nwanted:\nerror\ngot:\nnil")
		}
	})
}
