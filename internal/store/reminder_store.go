package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/piappstudio/digitaldiary/internal/model"
)

// GetReminders retrieves reminders matching the filter.
func (s *SQLiteStore) GetReminders(
	ctx context.Context,
	filter ReminderFilter,
) ([]model.ReminderInfo, error) {
	query, args := buildReminderQuery(filter)

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reminders: %w", err)
	}
	defer rows.Close()

	var reminders []model.ReminderInfo
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

// GetReminderByID retrieves a single reminder, or nil when absent.
func (s *SQLiteStore) GetReminderByID(
	ctx context.Context,
	id int64,
) (*model.ReminderInfo, error) {
	row := s.db.QueryRowxContext(ctx, `
		SELECT reminderId, title, description, startDate, endDate,
		       isReminderRequired, remindBefore
		FROM reminder_table WHERE reminderId = ?`, id)

	r, err := scanReminder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting reminder %d: %w", id, err)
	}
	return &r, nil
}

// InsertReminder inserts a reminder and returns the generated id.
// A non-nil ReminderID is kept as-is (used by data seeding).
func (s *SQLiteStore) InsertReminder(
	ctx context.Context,
	reminder *model.ReminderInfo,
) (int64, error) {
	if strings.TrimSpace(reminder.Title) == "" {
		return 0, fmt.Errorf("reminder title must not be empty")
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO reminder_table
			(reminderId, title, description, startDate, endDate, isReminderRequired, remindBefore)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		reminder.ReminderID, reminder.Title, reminder.Description,
		reminder.StartDate, reminder.EndDate,
		boolToInt(reminder.IsReminderRequired), reminder.RemindBefore,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting reminder: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading generated reminder id: %w", err)
	}

	reminder.ReminderID = &id
	s.changed(tableReminders)
	return id, nil
}

// UpdateReminder updates an existing reminder by id.
func (s *SQLiteStore) UpdateReminder(ctx context.Context, reminder model.ReminderInfo) error {
	if reminder.ReminderID == nil {
		return fmt.Errorf("reminder has no id")
	}
	if strings.TrimSpace(reminder.Title) == "" {
		return fmt.Errorf("reminder title must not be empty")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE reminder_table SET
			title = ?, description = ?, startDate = ?, endDate = ?,
			isReminderRequired = ?, remindBefore = ?
		WHERE reminderId = ?`,
		reminder.Title, reminder.Description, reminder.StartDate, reminder.EndDate,
		boolToInt(reminder.IsReminderRequired), reminder.RemindBefore,
		*reminder.ReminderID,
	)
	if err != nil {
		return fmt.Errorf("updating reminder %d: %w", *reminder.ReminderID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("reminder %d not found", *reminder.ReminderID)
	}

	s.changed(tableReminders)
	return nil
}

// DeleteReminder removes a reminder by id. Deleting a reminder that does not
// exist succeeds silently.
func (s *SQLiteStore) DeleteReminder(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM reminder_table WHERE reminderId = ?", id); err != nil {
		return fmt.Errorf("deleting reminder %d: %w", id, err)
	}

	s.changed(tableReminders)
	return nil
}

// DeleteAllReminders wipes the reminder table.
func (s *SQLiteStore) DeleteAllReminders(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM reminder_table"); err != nil {
		return fmt.Errorf("clearing reminders: %w", err)
	}

	s.changed(tableReminders)
	return nil
}

// buildReminderQuery constructs the SQL query and args for a ReminderFilter.
func buildReminderQuery(filter ReminderFilter) (string, []interface{}) {
	query := `SELECT reminderId, title, description, startDate, endDate,
		isReminderRequired, remindBefore FROM reminder_table`
	var args []interface{}

	if filter.Query != "" {
		query += " WHERE title LIKE ? OR description LIKE ?"
		q := "%" + filter.Query + "%"
		args = append(args, q, q)
	}

	switch filter.Sort {
	case ReminderSortTitleZA:
		query += " ORDER BY title DESC"
	case ReminderSortEndDateAsc:
		query += " ORDER BY endDate ASC"
	case ReminderSortEndDateDesc:
		query += " ORDER BY endDate DESC"
	default:
		query += " ORDER BY title ASC"
	}

	return query, args
}

// scanReminder scans a reminder row.
func scanReminder(row interface{ Scan(dest ...interface{}) error }) (model.ReminderInfo, error) {
	var (
		r        model.ReminderInfo
		required int
	)

	err := row.Scan(
		&r.ReminderID, &r.Title, &r.Description, &r.StartDate, &r.EndDate,
		&required, &r.RemindBefore,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.ReminderInfo{}, err
		}
		return model.ReminderInfo{}, fmt.Errorf("scanning reminder row: %w", err)
	}

	r.IsReminderRequired = required != 0
	return r, nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
