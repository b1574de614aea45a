package db

import (
	"embed"
	"fmt"

	_ "github.com/tfkr-ae/avisha/db/migrations"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql migrations/*.go
var embedMigrations embed.FS

// Repository stores named blobs in the slot table. It implements domain.BlobRepository.
type Repository struct {
	dbConn *sqlx.DB // Pool returned by New.
}

// NewSlotRepo wraps a migrated connection pool.
func NewSlotRepo(db *sqlx.DB) *Repository {
	return &Repository{
		dbConn: db,
	}
}

// Close closes the underlying pool. The repository is unusable afterwards.
func (repo *Repository) Close() error {
	err := repo.dbConn.Close()
	if err != nil {
		return fmt.Errorf("closing repo : %w", err)
	}
	return nil
}

// dsn builds the connection string for the file at name: WAL journal, five second busy timeout.
func dsn(name string) string {
	return fmt.Sprintf("%s?_journal=WAL&_timeout=5000", name)
}

// New opens the SQLite database file at name and migrates it to the latest slot schema.
//
// Parameters:
//   - name: Path of the database file, created if it does not exist
//
// Returns:
//   - *sqlx.DB: Connection pool limited to one open connection
//   - error: Connection or migration error; the pool is closed before returning it
func New(name string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", dsn(name))
	if err != nil {
		return nil, fmt.Errorf("connecting to db : %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// migrate applies the embedded migrations that have not run yet.
func migrate(db *sqlx.DB) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		return fmt.Errorf("setting dialect for migrations : %w", err)
	}

	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("applying migration : %w", err)
	}
	return nil
}

// SchemaVersion returns the latest migration applied to db.
func SchemaVersion(db *sqlx.DB) (int64, error) {
	version, err := goose.GetDBVersion(db.DB)
	if err != nil {
		return 0, fmt.Errorf("getting schema version : %w", err)
	}
	return version, nil
}

// Open is New followed by NewSlotRepo, for callers that only need the slot repository.
func Open(name string) (*Repository, error) {
	db, err := New(name)
	if err != nil {
		return nil, err
	}
	return NewSlotRepo(db), nil
}
