package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Table names of the on-disk schema. The notifier keys invalidation by these.
const (
	tableEvents    = "event_table"
	tableMedia     = "media_info"
	tableTags      = "taginfo"
	tableReminders = "reminder_table"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db       *sqlx.DB
	notifier *notifier
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, enables WAL
// mode, and brings the schema up to TargetSchemaVersion. A schema version
// with no applicable migration step is a fatal error.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// An in-memory database exists per connection; pin the pool to one so
	// every query sees the same database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db, notifier: newNotifier()}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SchemaVersion reports the current on-disk schema version.
func (s *SQLiteStore) SchemaVersion() (int, error) {
	return currentSchemaVersion(s.db)
}

// currentSchemaVersion reads the recorded schema version, or 0 when the
// schema_version table does not exist yet.
func currentSchemaVersion(db *sqlx.DB) (int, error) {
	var tableCount int
	err := db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return 0, fmt.Errorf("checking schema_version table: %w", err)
	}
	if tableCount == 0 {
		return 0, nil
	}

	var version int
	if err := db.Get(&version, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}

// runMigrations applies every outstanding migration step in strict sequence.
func (s *SQLiteStore) runMigrations() error {
	return s.applySteps(migrations, TargetSchemaVersion)
}

// applySteps brings the schema up to target by applying steps in strict
// sequence. A current version with no matching step is a fatal error; the
// engine never guesses or skips. Each step runs in its own transaction,
// version bump included, so either the whole step lands or none of it does.
func (s *SQLiteStore) applySteps(steps []migration, target int) error {
	if _, err := s.db.Exec(
		"CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)",
	); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	current, err := currentSchemaVersion(s.db)
	if err != nil {
		return err
	}

	if current > target {
		return fmt.Errorf(
			"database schema version %d is newer than supported version %d; upgrade the application",
			current, target,
		)
	}

	for current < target {
		step, ok := migrationFrom(steps, current)
		if !ok {
			return fmt.Errorf(
				"no migration step from schema version %d (target %d)",
				current, target,
			)
		}
		if err := s.applyMigration(step); err != nil {
			return fmt.Errorf("applying migration v%d to v%d: %w", step.from, step.to, err)
		}
		current = step.to
	}

	return nil
}

// migrationFrom finds the step whose from version matches v.
func migrationFrom(steps []migration, v int) (migration, bool) {
	for _, m := range steps {
		if m.from == v {
			return m, true
		}
	}
	return migration{}, false
}

// applyMigration runs one step atomically.
func (s *SQLiteStore) applyMigration(m migration) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range m.statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing migration statement: %w", err)
		}
	}

	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.to); err != nil {
		return fmt.Errorf("recording schema version %d: %w", m.to, err)
	}

	return tx.Commit()
}

// changed broadcasts a table-level invalidation to live queries.
func (s *SQLiteStore) changed(tables ...string) {
	s.notifier.notify(tables...)
}
