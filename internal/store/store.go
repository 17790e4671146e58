package store

import (
	"context"

	"github.com/piappstudio/digitaldiary/internal/model"
)

// EventSort selects the ordering of diary entry listings.
type EventSort int

const (
	// EventSortNewest orders by dateInfo descending (default).
	EventSortNewest EventSort = iota
	// EventSortOldest orders by dateInfo ascending.
	EventSortOldest
	// EventSortTitleAZ orders by title ascending.
	EventSortTitleAZ
	// EventSortTitleZA orders by title descending.
	EventSortTitleZA
)

// EventFilter controls filtering and sorting for diary entry queries.
// Query is a substring match against title and description.
type EventFilter struct {
	Query string
	Sort  EventSort
}

// ReminderSort selects the ordering of reminder listings.
type ReminderSort int

const (
	// ReminderSortTitleAZ orders by title ascending (default).
	ReminderSortTitleAZ ReminderSort = iota
	// ReminderSortTitleZA orders by title descending.
	ReminderSortTitleZA
	// ReminderSortEndDateAsc orders by endDate ascending.
	ReminderSortEndDateAsc
	// ReminderSortEndDateDesc orders by endDate descending.
	ReminderSortEndDateDesc
)

// ReminderFilter controls filtering and sorting for reminder queries.
type ReminderFilter struct {
	Query string
	Sort  ReminderSort
}

// Store is the persistence interface for diary entries and reminders.
// It is the only writer of the on-disk schema; callers never touch the
// tables directly.
//
// Watch methods return live queries: the first value arrives once the
// initial query completes, later values whenever a write touches any table
// the query reads (table-level invalidation, deliberately coarser than
// row-level). The channel closes when ctx is cancelled. Get/Watch lookups
// of an absent row yield nil rather than an error.
type Store interface {
	// === Diary entries ===

	GetEntries(ctx context.Context, filter EventFilter) ([]model.UserEvent, error)
	GetAllEntries(ctx context.Context) ([]model.UserEvent, error)
	GetEntriesInDateRange(ctx context.Context, startDate, endDate string) ([]model.UserEvent, error)
	GetEntryByID(ctx context.Context, id int64) (*model.UserEvent, error)

	InsertEntry(ctx context.Context, entry *model.UserEvent) (int64, error)
	UpdateHeader(ctx context.Context, header model.EventInfo) error
	UpdateFullEntry(ctx context.Context, entry *model.UserEvent) error
	DeleteEntry(ctx context.Context, id int64) error
	DeleteAllEntries(ctx context.Context) error

	WatchEntries(ctx context.Context, filter EventFilter) (<-chan []model.UserEvent, error)
	WatchEntriesInDateRange(ctx context.Context, startDate, endDate string) (<-chan []model.UserEvent, error)
	WatchEntry(ctx context.Context, id int64) (<-chan *model.UserEvent, error)

	// === Reminders ===

	GetReminders(ctx context.Context, filter ReminderFilter) ([]model.ReminderInfo, error)
	GetReminderByID(ctx context.Context, id int64) (*model.ReminderInfo, error)

	InsertReminder(ctx context.Context, reminder *model.ReminderInfo) (int64, error)
	UpdateReminder(ctx context.Context, reminder model.ReminderInfo) error
	DeleteReminder(ctx context.Context, id int64) error
	DeleteAllReminders(ctx context.Context) error

	WatchReminders(ctx context.Context, filter ReminderFilter) (<-chan []model.ReminderInfo, error)
	WatchReminder(ctx context.Context, id int64) (<-chan *model.ReminderInfo, error)
}
