package store

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
)

// openRaw opens a database without running migrations so tests can stage
// arbitrary schema versions.
func openRaw(t *testing.T, path string) *SQLiteStore {
	t.Helper()

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening raw db: %v", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	s := &SQLiteStore{db: db, notifier: newNotifier()}
	t.Cleanup(func() { s.Close() })
	return s
}

// tableColumns returns "name type pk" for each column of a table.
func tableColumns(t *testing.T, s *SQLiteStore, table string) []string {
	t.Helper()

	rows, err := s.db.Queryx(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		t.Fatalf("table_info(%s): %v", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid, notnull, pk int
			name, ctype      string
			dflt             *string
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			t.Fatalf("scanning table_info row: %v", err)
		}
		cols = append(cols, fmt.Sprintf("%s %s pk=%d", name, ctype, pk))
	}
	return cols
}

func TestFreshDatabaseIsAtTargetVersion(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	v, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != TargetSchemaVersion {
		t.Errorf("schema version = %d, want %d", v, TargetSchemaVersion)
	}

	for _, table := range []string{tableEvents, tableMedia, tableTags, tableReminders} {
		var count int
		err := s.db.Get(&count,
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table)
		if err != nil {
			t.Fatalf("checking table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("table %s does not exist", table)
		}
	}

	// taginfo and media_info must be auto-incrementing as of v4.
	for _, table := range []string{tableTags, tableMedia} {
		var ddl string
		err := s.db.Get(&ddl,
			"SELECT sql FROM sqlite_master WHERE type='table' AND name=?", table)
		if err != nil {
			t.Fatalf("reading DDL for %s: %v", table, err)
		}
		if !strings.Contains(ddl, "AUTOINCREMENT") {
			t.Errorf("table %s is not AUTOINCREMENT: %s", table, ddl)
		}
	}
}

func TestMigrateV1ToV4PreservesData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary.db")

	// Stage a version 1 database with pre-existing rows. Keys are
	// caller-supplied at v1.
	v1 := openRaw(t, path)
	if err := v1.applySteps(migrations, 1); err != nil {
		t.Fatalf("staging v1 schema: %v", err)
	}
	mustExec := func(query string, args ...interface{}) {
		t.Helper()
		if _, err := v1.db.Exec(query, args...); err != nil {
			t.Fatalf("staging data: %v", err)
		}
	}
	mustExec(`INSERT INTO event_table (eventId, title, description, emotion, dateInfo)
		VALUES (1, 'Beach Day', 'Sand and waves', 'Happy', '2026-01-10 09:00:00.000000Z')`)
	mustExec(`INSERT INTO media_info (mediaId, mediaPath, eventKey) VALUES (10, 'beach.png', 1)`)
	mustExec(`INSERT INTO media_info (mediaId, mediaPath, eventKey) VALUES (11, 'waves.mp3', 1)`)
	mustExec(`INSERT INTO taginfo (tagId, tagName, eventKey) VALUES (20, 'Travel', 1)`)
	mustExec(`INSERT INTO taginfo (tagId, tagName, eventKey) VALUES (21, 'Family', 1)`)
	if err := v1.Close(); err != nil {
		t.Fatalf("closing staged db: %v", err)
	}

	// Reopening applies 1→2, 2→3, 3→4 in order.
	migrated, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("migrating staged db: %v", err)
	}
	defer migrated.Close()

	v, err := migrated.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != TargetSchemaVersion {
		t.Fatalf("schema version after migration = %d, want %d", v, TargetSchemaVersion)
	}

	// The migrated schema must be column-for-column identical to a fresh one.
	fresh, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore fresh: %v", err)
	}
	defer fresh.Close()

	for _, table := range []string{tableEvents, tableMedia, tableTags, tableReminders} {
		got := tableColumns(t, migrated, table)
		want := tableColumns(t, fresh, table)
		if strings.Join(got, ";") != strings.Join(want, ";") {
			t.Errorf("table %s columns after migration = %v, want %v", table, got, want)
		}
	}

	// All pre-existing rows survive with their original data.
	type mediaRow struct {
		MediaID   int64  `db:"mediaId"`
		MediaPath string `db:"mediaPath"`
		EventKey  int64  `db:"eventKey"`
	}
	var medias []mediaRow
	if err := migrated.db.Select(&medias,
		"SELECT mediaId, mediaPath, eventKey FROM media_info ORDER BY mediaId"); err != nil {
		t.Fatalf("reading migrated media: %v", err)
	}
	if len(medias) != 2 ||
		medias[0] != (mediaRow{10, "beach.png", 1}) ||
		medias[1] != (mediaRow{11, "waves.mp3", 1}) {
		t.Errorf("migrated media rows = %+v", medias)
	}

	type tagRow struct {
		TagID    int64  `db:"tagId"`
		TagName  string `db:"tagName"`
		EventKey int64  `db:"eventKey"`
	}
	var tags []tagRow
	if err := migrated.db.Select(&tags,
		"SELECT tagId, tagName, eventKey FROM taginfo ORDER BY tagId"); err != nil {
		t.Fatalf("reading migrated tags: %v", err)
	}
	if len(tags) != 2 ||
		tags[0] != (tagRow{20, "Travel", 1}) ||
		tags[1] != (tagRow{21, "Family", 1}) {
		t.Errorf("migrated tag rows = %+v", tags)
	}

	// New child rows pick up generated keys above the preserved ones.
	res, err := migrated.db.Exec(
		"INSERT INTO taginfo (tagName, eventKey) VALUES ('Sunset', 1)")
	if err != nil {
		t.Fatalf("inserting post-migration tag: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("LastInsertId: %v", err)
	}
	if id <= 21 {
		t.Errorf("generated tagId = %d, want > 21", id)
	}
}

func TestMigrationGapFails(t *testing.T) {
	s := openRaw(t, ":memory:")

	gapped := []migration{
		migrations[0], // 0→1
		migrations[2], // 2→3; nothing covers 1→2
	}
	err := s.applySteps(gapped, 3)
	if err == nil {
		t.Fatal("applySteps with a gap succeeded, want error")
	}
	if !strings.Contains(err.Error(), "no migration step from schema version 1") {
		t.Errorf("gap error = %v", err)
	}

	// The engine must stop at the last reachable version, not skip ahead.
	v, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != 1 {
		t.Errorf("schema version after gap = %d, want 1", v)
	}
}

func TestNewerSchemaVersionFails(t *testing.T) {
	s := openRaw(t, ":memory:")

	if err := s.applySteps(migrations, TargetSchemaVersion); err != nil {
		t.Fatalf("applySteps: %v", err)
	}
	if _, err := s.db.Exec(
		"INSERT INTO schema_version (version) VALUES (?)", TargetSchemaVersion+1); err != nil {
		t.Fatalf("staging future version: %v", err)
	}

	err := s.applySteps(migrations, TargetSchemaVersion)
	if err == nil || !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("future-version error = %v", err)
	}
}

func TestFailedMigrationStepRollsBack(t *testing.T) {
	s := openRaw(t, ":memory:")

	if err := s.applySteps(migrations, 1); err != nil {
		t.Fatalf("staging v1: %v", err)
	}

	broken := migration{
		from: 1,
		to:   2,
		statements: []string{
			`CREATE TABLE half_done (id INTEGER PRIMARY KEY)`,
			`THIS IS NOT SQL`,
		},
	}
	if err := s.applyMigration(broken); err == nil {
		t.Fatal("broken migration succeeded, want error")
	}

	// Neither the new table nor the version bump may survive.
	var count int
	if err := s.db.Get(&count,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='half_done'"); err != nil {
		t.Fatalf("checking half_done: %v", err)
	}
	if count != 0 {
		t.Error("partial migration left table half_done behind")
	}

	v, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != 1 {
		t.Errorf("schema version after failed step = %d, want 1", v)
	}
}
