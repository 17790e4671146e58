package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/piappstudio/digitaldiary/internal/model"
)

// GetEntries retrieves diary entries matching the filter, with their tags
// and media eagerly loaded.
func (s *SQLiteStore) GetEntries(
	ctx context.Context,
	filter EventFilter,
) ([]model.UserEvent, error) {
	query, args := buildEntryQuery(filter)
	return s.queryEntries(ctx, query, args...)
}

// GetAllEntries retrieves every diary entry without filtering or ordering.
func (s *SQLiteStore) GetAllEntries(ctx context.Context) ([]model.UserEvent, error) {
	return s.queryEntries(ctx,
		"SELECT eventId, title, description, emotion, dateInfo FROM event_table")
}

// GetEntriesInDateRange retrieves entries whose dateInfo falls between
// startDate and endDate, newest first. The comparison is lexicographic,
// which matches chronological order for the stored timestamp format.
func (s *SQLiteStore) GetEntriesInDateRange(
	ctx context.Context,
	startDate, endDate string,
) ([]model.UserEvent, error) {
	return s.queryEntries(ctx, `
		SELECT eventId, title, description, emotion, dateInfo
		FROM event_table
		WHERE dateInfo BETWEEN ? AND ?
		ORDER BY dateInfo DESC`,
		startDate, endDate)
}

// GetEntryByID retrieves a single entry with its children.
// Returns nil when the entry does not exist.
func (s *SQLiteStore) GetEntryByID(
	ctx context.Context,
	id int64,
) (*model.UserEvent, error) {
	var header model.EventInfo
	err := s.db.QueryRowxContext(ctx, `
		SELECT eventId, title, description, emotion, dateInfo
		FROM event_table WHERE eventId = ?`, id).
		Scan(&header.EventID, &header.Title, &header.Description,
			&header.Emotion, &header.DateInfo)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting entry %d: %w", id, err)
	}

	entry := model.UserEvent{EventInfo: header}
	if err := s.loadChildren(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// InsertEntry inserts the header row and, with the generated id assigned to
// each child, the tag and media rows. The whole insert is one transaction so
// a failed child insert never leaves an orphaned header behind.
func (s *SQLiteStore) InsertEntry(
	ctx context.Context,
	entry *model.UserEvent,
) (int64, error) {
	if strings.TrimSpace(entry.EventInfo.Title) == "" {
		return 0, fmt.Errorf("entry title must not be empty")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO event_table (eventId, title, description, emotion, dateInfo)
		VALUES (?, ?, ?, ?, ?)`,
		entry.EventInfo.EventID, entry.EventInfo.Title,
		entry.EventInfo.Description, entry.EventInfo.Emotion,
		entry.EventInfo.DateInfo,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting entry header: %w", err)
	}

	eventID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading generated entry id: %w", err)
	}

	if err := insertChildren(ctx, tx, eventID, entry.Tags, entry.Medias); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing entry insert: %w", err)
	}

	entry.EventInfo.EventID = &eventID
	for i := range entry.Tags {
		entry.Tags[i].EventKey = eventID
	}
	for i := range entry.Medias {
		entry.Medias[i].EventKey = eventID
	}

	s.changed(tableEvents, tableTags, tableMedia)
	return eventID, nil
}

// UpdateHeader updates the header fields of an entry without touching its
// children. Used by the quick-edit flow.
func (s *SQLiteStore) UpdateHeader(ctx context.Context, header model.EventInfo) error {
	if header.EventID == nil {
		return fmt.Errorf("entry has no id")
	}
	if strings.TrimSpace(header.Title) == "" {
		return fmt.Errorf("entry title must not be empty")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE event_table SET title = ?, description = ?, emotion = ?, dateInfo = ?
		WHERE eventId = ?`,
		header.Title, header.Description, header.Emotion, header.DateInfo,
		*header.EventID,
	)
	if err != nil {
		return fmt.Errorf("updating entry %d: %w", *header.EventID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("entry %d not found", *header.EventID)
	}

	s.changed(tableEvents)
	return nil
}

// UpdateFullEntry updates the header and replaces the entry's entire tag and
// media sets with the supplied ones. Existing child rows are always deleted
// and re-inserted rather than diffed, so child surrogate keys churn on every
// edit.
func (s *SQLiteStore) UpdateFullEntry(ctx context.Context, entry *model.UserEvent) error {
	if entry.EventInfo.EventID == nil {
		return fmt.Errorf("entry has no id")
	}
	if strings.TrimSpace(entry.EventInfo.Title) == "" {
		return fmt.Errorf("entry title must not be empty")
	}
	eventID := *entry.EventInfo.EventID

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE event_table SET title = ?, description = ?, emotion = ?, dateInfo = ?
		WHERE eventId = ?`,
		entry.EventInfo.Title, entry.EventInfo.Description,
		entry.EventInfo.Emotion, entry.EventInfo.DateInfo,
		eventID,
	)
	if err != nil {
		return fmt.Errorf("updating entry %d: %w", eventID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("entry %d not found", eventID)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM taginfo WHERE eventKey = ?", eventID); err != nil {
		return fmt.Errorf("clearing tags for entry %d: %w", eventID, err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM media_info WHERE eventKey = ?", eventID); err != nil {
		return fmt.Errorf("clearing media for entry %d: %w", eventID, err)
	}

	// Re-insert with nil ids so the database assigns fresh keys.
	tags := make([]model.TagInfo, len(entry.Tags))
	for i, t := range entry.Tags {
		tags[i] = model.TagInfo{TagName: t.TagName}
	}
	medias := make([]model.MediaInfo, len(entry.Medias))
	for i, m := range entry.Medias {
		medias[i] = model.MediaInfo{MediaPath: m.MediaPath}
	}
	if err := insertChildren(ctx, tx, eventID, tags, medias); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing entry update: %w", err)
	}

	s.changed(tableEvents, tableTags, tableMedia)
	return nil
}

// DeleteEntry removes the header and all child rows for the entry in one
// transaction. Deleting an entry that does not exist succeeds silently.
func (s *SQLiteStore) DeleteEntry(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM event_table WHERE eventId = ?", id); err != nil {
		return fmt.Errorf("deleting entry %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM media_info WHERE eventKey = ?", id); err != nil {
		return fmt.Errorf("deleting media for entry %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM taginfo WHERE eventKey = ?", id); err != nil {
		return fmt.Errorf("deleting tags for entry %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing entry delete: %w", err)
	}

	s.changed(tableEvents, tableTags, tableMedia)
	return nil
}

// DeleteAllEntries wipes all three diary tables.
func (s *SQLiteStore) DeleteAllEntries(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{tableEvents, tableMedia, tableTags} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete-all: %w", err)
	}

	s.changed(tableEvents, tableTags, tableMedia)
	return nil
}

// insertChildren inserts tag and media rows carrying the given event key.
// Rows with a non-nil id keep it (used by data seeding); nil ids are assigned
// by the database.
func insertChildren(
	ctx context.Context,
	tx *sqlx.Tx,
	eventID int64,
	tags []model.TagInfo,
	medias []model.MediaInfo,
) error {
	for _, t := range tags {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO taginfo (tagId, tagName, eventKey) VALUES (?, ?, ?)",
			t.TagID, t.TagName, eventID); err != nil {
			return fmt.Errorf("inserting tag %q for entry %d: %w", t.TagName, eventID, err)
		}
	}
	for _, m := range medias {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO media_info (mediaId, mediaPath, eventKey) VALUES (?, ?, ?)",
			m.MediaID, m.MediaPath, eventID); err != nil {
			return fmt.Errorf("inserting media %q for entry %d: %w", m.MediaPath, eventID, err)
		}
	}
	return nil
}

// buildEntryQuery constructs the SQL query and args for an EventFilter.
func buildEntryQuery(filter EventFilter) (string, []interface{}) {
	query := "SELECT eventId, title, description, emotion, dateInfo FROM event_table"
	var args []interface{}

	if filter.Query != "" {
		query += " WHERE title LIKE ? OR description LIKE ?"
		q := "%" + filter.Query + "%"
		args = append(args, q, q)
	}

	switch filter.Sort {
	case EventSortOldest:
		query += " ORDER BY dateInfo ASC"
	case EventSortTitleAZ:
		query += " ORDER BY title ASC"
	case EventSortTitleZA:
		query += " ORDER BY title DESC"
	default:
		query += " ORDER BY dateInfo DESC"
	}

	return query, args
}

// queryEntries runs an event_table query and eagerly loads children.
func (s *SQLiteStore) queryEntries(
	ctx context.Context,
	query string,
	args ...interface{},
) ([]model.UserEvent, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []model.UserEvent
	for rows.Next() {
		var header model.EventInfo
		if err := rows.Scan(&header.EventID, &header.Title, &header.Description,
			&header.Emotion, &header.DateInfo); err != nil {
			return nil, fmt.Errorf("scanning entry row: %w", err)
		}
		entries = append(entries, model.UserEvent{EventInfo: header})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		if err := s.loadChildren(ctx, &entries[i]); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

// loadChildren populates an entry's tag and media sets.
func (s *SQLiteStore) loadChildren(ctx context.Context, entry *model.UserEvent) error {
	id := entry.ID()

	tagRows, err := s.db.QueryxContext(ctx,
		"SELECT tagId, tagName, eventKey FROM taginfo WHERE eventKey = ? ORDER BY tagId",
		id)
	if err != nil {
		return fmt.Errorf("querying tags for entry %d: %w", id, err)
	}
	defer tagRows.Close()

	entry.Tags = nil
	for tagRows.Next() {
		var t model.TagInfo
		if err := tagRows.Scan(&t.TagID, &t.TagName, &t.EventKey); err != nil {
			return fmt.Errorf("scanning tag row: %w", err)
		}
		entry.Tags = append(entry.Tags, t)
	}
	if err := tagRows.Err(); err != nil {
		return err
	}

	mediaRows, err := s.db.QueryxContext(ctx,
		"SELECT mediaId, mediaPath, eventKey FROM media_info WHERE eventKey = ? ORDER BY mediaId",
		id)
	if err != nil {
		return fmt.Errorf("querying media for entry %d: %w", id, err)
	}
	defer mediaRows.Close()

	entry.Medias = nil
	for mediaRows.Next() {
		var m model.MediaInfo
		if err := mediaRows.Scan(&m.MediaID, &m.MediaPath, &m.EventKey); err != nil {
			return fmt.Errorf("scanning media row: %w", err)
		}
		entry.Medias = append(entry.Medias, m)
	}
	return mediaRows.Err()
}
