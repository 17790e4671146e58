package store

import (
	"context"

	"github.com/piappstudio/digitaldiary/internal/model"
)

// watchQuery runs the query once, emits the result, then re-runs and
// re-emits whenever a write touches any of the given tables. Invalidation is
// table-level: a write to a watched table re-runs the query even if the
// changed row would not alter its output. The returned channel has capacity
// one and keeps only the latest result; it closes when ctx is cancelled.
func watchQuery[T any](
	ctx context.Context,
	s *SQLiteStore,
	tables []string,
	query func(context.Context) (T, error),
) (<-chan T, error) {
	sub := s.notifier.subscribe(tables...)

	initial, err := query(ctx)
	if err != nil {
		s.notifier.unsubscribe(sub)
		return nil, err
	}

	out := make(chan T, 1)
	out <- initial

	go func() {
		defer close(out)
		defer s.notifier.unsubscribe(sub)

		for {
			select {
			case <-ctx.Done():
				return
			case <-sub.ch:
				result, err := query(ctx)
				if err != nil {
					// The caller cancelled mid-query, or the
					// query failed; either way there is nothing
					// newer to emit.
					if ctx.Err() != nil {
						return
					}
					continue
				}
				// Drop a stale pending value so the consumer
				// always sees the latest result.
				select {
				case <-out:
				default:
				}
				out <- result
			}
		}
	}()

	return out, nil
}

// WatchEntries is the live form of GetEntries.
func (s *SQLiteStore) WatchEntries(
	ctx context.Context,
	filter EventFilter,
) (<-chan []model.UserEvent, error) {
	return watchQuery(ctx, s,
		[]string{tableEvents, tableTags, tableMedia},
		func(ctx context.Context) ([]model.UserEvent, error) {
			return s.GetEntries(ctx, filter)
		})
}

// WatchEntriesInDateRange is the live form of GetEntriesInDateRange.
func (s *SQLiteStore) WatchEntriesInDateRange(
	ctx context.Context,
	startDate, endDate string,
) (<-chan []model.UserEvent, error) {
	return watchQuery(ctx, s,
		[]string{tableEvents, tableTags, tableMedia},
		func(ctx context.Context) ([]model.UserEvent, error) {
			return s.GetEntriesInDateRange(ctx, startDate, endDate)
		})
}

// WatchEntry is the live form of GetEntryByID. After the entry is deleted
// the subscription emits nil; that is a valid terminal state, not an error.
func (s *SQLiteStore) WatchEntry(
	ctx context.Context,
	id int64,
) (<-chan *model.UserEvent, error) {
	return watchQuery(ctx, s,
		[]string{tableEvents, tableTags, tableMedia},
		func(ctx context.Context) (*model.UserEvent, error) {
			return s.GetEntryByID(ctx, id)
		})
}

// WatchReminders is the live form of GetReminders.
func (s *SQLiteStore) WatchReminders(
	ctx context.Context,
	filter ReminderFilter,
) (<-chan []model.ReminderInfo, error) {
	return watchQuery(ctx, s,
		[]string{tableReminders},
		func(ctx context.Context) ([]model.ReminderInfo, error) {
			return s.GetReminders(ctx, filter)
		})
}

// WatchReminder is the live form of GetReminderByID. Emits nil once the
// reminder has been deleted.
func (s *SQLiteStore) WatchReminder(
	ctx context.Context,
	id int64,
) (<-chan *model.ReminderInfo, error) {
	return watchQuery(ctx, s,
		[]string{tableReminders},
		func(ctx context.Context) (*model.ReminderInfo, error) {
			return s.GetReminderByID(ctx, id)
		})
}
