package store_test

import (
	"context"
	"testing"

	"github.com/piappstudio/digitaldiary/internal/model"
	"github.com/piappstudio/digitaldiary/internal/store"
	"github.com/piappstudio/digitaldiary/tests/testutil"
)

func newEntry(title, description, emotion, date string, tags []string, medias []string) *model.UserEvent {
	entry := &model.UserEvent{
		EventInfo: model.EventInfo{
			Title:       title,
			Description: description,
			Emotion:     emotion,
			DateInfo:    date,
		},
	}
	for _, tag := range tags {
		entry.Tags = append(entry.Tags, model.TagInfo{TagName: tag})
	}
	for _, path := range medias {
		entry.Medias = append(entry.Medias, model.MediaInfo{MediaPath: path})
	}
	return entry
}

func tagNames(entry *model.UserEvent) []string {
	var names []string
	for _, t := range entry.Tags {
		names = append(names, t.TagName)
	}
	return names
}

func TestInsertAndGetEntry(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	entry := newEntry("A", "B", "Happy", "2026-01-01 00:00:00.000000Z",
		[]string{"x", "y"}, nil)
	id, err := s.InsertEntry(ctx, entry)
	if err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}
	if id == 0 {
		t.Fatal("InsertEntry returned id 0")
	}
	if entry.EventInfo.EventID == nil || *entry.EventInfo.EventID != id {
		t.Errorf("entry id not assigned back: %+v", entry.EventInfo.EventID)
	}

	got, err := s.GetEntryByID(ctx, id)
	if err != nil {
		t.Fatalf("GetEntryByID: %v", err)
	}
	if got == nil {
		t.Fatal("GetEntryByID returned nil for existing entry")
	}
	if got.EventInfo.Title != "A" || got.EventInfo.Emotion != "Happy" {
		t.Errorf("header = %+v", got.EventInfo)
	}
	names := tagNames(got)
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Errorf("tags = %v, want [x y]", names)
	}
	if len(got.Medias) != 0 {
		t.Errorf("medias = %v, want none", got.Medias)
	}
	for _, tag := range got.Tags {
		if tag.EventKey != id {
			t.Errorf("tag %q eventKey = %d, want %d", tag.TagName, tag.EventKey, id)
		}
		if tag.TagID == nil {
			t.Errorf("tag %q has no generated id", tag.TagName)
		}
	}
}

func TestGetEntryByIDAbsent(t *testing.T) {
	s := testutil.NewTestStore(t)

	got, err := s.GetEntryByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetEntryByID: %v", err)
	}
	if got != nil {
		t.Errorf("GetEntryByID(42) = %+v, want nil", got)
	}
}

func TestEntrySortOrders(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	dates := []string{
		"2026-02-01 10:00:00.000000Z",
		"2026-02-05 10:00:00.000000Z",
		"2026-01-20 10:00:00.000000Z",
	}
	titles := []string{"banana", "apple", "cherry"}
	for i := range dates {
		if _, err := s.InsertEntry(ctx, newEntry(titles[i], "", "Calm", dates[i], nil, nil)); err != nil {
			t.Fatalf("InsertEntry: %v", err)
		}
	}

	cases := []struct {
		name string
		sort store.EventSort
		want []string
	}{
		{"newest first", store.EventSortNewest, []string{"apple", "banana", "cherry"}},
		{"oldest first", store.EventSortOldest, []string{"cherry", "banana", "apple"}},
		{"title a-z", store.EventSortTitleAZ, []string{"apple", "banana", "cherry"}},
		{"title z-a", store.EventSortTitleZA, []string{"cherry", "banana", "apple"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entries, err := s.GetEntries(ctx, store.EventFilter{Sort: tc.sort})
			if err != nil {
				t.Fatalf("GetEntries: %v", err)
			}
			if len(entries) != len(tc.want) {
				t.Fatalf("got %d entries, want %d", len(entries), len(tc.want))
			}
			for i, e := range entries {
				if e.EventInfo.Title != tc.want[i] {
					t.Errorf("position %d = %q, want %q", i, e.EventInfo.Title, tc.want[i])
				}
			}
		})
	}
}

func TestEntryQueryFilter(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if _, err := s.InsertEntry(ctx, newEntry("Day at the Park", "", "Happy",
		"2026-03-01 12:00:00.000000Z", nil, nil)); err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}
	if _, err := s.InsertEntry(ctx, newEntry("Office Meeting", "", "Tired",
		"2026-03-02 12:00:00.000000Z", nil, nil)); err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}

	entries, err := s.GetEntries(ctx, store.EventFilter{Query: "park"})
	if err != nil {
		t.Fatalf("GetEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].EventInfo.Title != "Day at the Park" {
		t.Errorf("filtered entries = %+v", entries)
	}

	// The filter also matches descriptions.
	entries, err = s.GetEntries(ctx, store.EventFilter{Query: "meeting"})
	if err != nil {
		t.Fatalf("GetEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].EventInfo.Title != "Office Meeting" {
		t.Errorf("filtered entries = %+v", entries)
	}
}

func TestGetEntriesInDateRange(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, d := range []string{
		"2026-01-05 08:00:00.000000Z",
		"2026-01-15 08:00:00.000000Z",
		"2026-02-10 08:00:00.000000Z",
	} {
		if _, err := s.InsertEntry(ctx, newEntry("e "+d, "", "Calm", d, nil, nil)); err != nil {
			t.Fatalf("InsertEntry: %v", err)
		}
	}

	entries, err := s.GetEntriesInDateRange(ctx,
		"2026-01-01 00:00:00.000000Z", "2026-01-31 23:59:59.999999Z")
	if err != nil {
		t.Fatalf("GetEntriesInDateRange: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries in range, want 2", len(entries))
	}
	// Newest first within the range.
	if entries[0].EventInfo.DateInfo != "2026-01-15 08:00:00.000000Z" {
		t.Errorf("first entry = %q", entries[0].EventInfo.DateInfo)
	}
}

func TestUpdateHeaderLeavesChildrenAlone(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	entry := newEntry("Old", "d", "Sad", "2026-01-01 00:00:00.000000Z",
		[]string{"keep"}, []string{"photo.png"})
	id, err := s.InsertEntry(ctx, entry)
	if err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}

	header := entry.EventInfo
	header.Title = "New"
	header.Emotion = "Happy"
	if err := s.UpdateHeader(ctx, header); err != nil {
		t.Fatalf("UpdateHeader: %v", err)
	}

	got, err := s.GetEntryByID(ctx, id)
	if err != nil {
		t.Fatalf("GetEntryByID: %v", err)
	}
	if got.EventInfo.Title != "New" || got.EventInfo.Emotion != "Happy" {
		t.Errorf("header after update = %+v", got.EventInfo)
	}
	if len(got.Tags) != 1 || got.Tags[0].TagName != "keep" {
		t.Errorf("tags after header update = %+v", got.Tags)
	}
	if len(got.Medias) != 1 || got.Medias[0].MediaPath != "photo.png" {
		t.Errorf("medias after header update = %+v", got.Medias)
	}
}

func TestUpdateFullEntryReplacesChildren(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	entry := newEntry("A", "B", "Happy", "2026-01-01 00:00:00.000000Z",
		[]string{"x", "y"}, nil)
	id, err := s.InsertEntry(ctx, entry)
	if err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}

	updated := newEntry("A", "B", "Happy", "2026-01-01 00:00:00.000000Z",
		[]string{"z"}, []string{"new.png"})
	updated.EventInfo.EventID = &id
	if err := s.UpdateFullEntry(ctx, updated); err != nil {
		t.Fatalf("UpdateFullEntry: %v", err)
	}

	got, err := s.GetEntryByID(ctx, id)
	if err != nil {
		t.Fatalf("GetEntryByID: %v", err)
	}
	names := tagNames(got)
	if len(names) != 1 || names[0] != "z" {
		t.Errorf("tags after full update = %v, want [z]", names)
	}
	if len(got.Medias) != 1 || got.Medias[0].MediaPath != "new.png" {
		t.Errorf("medias after full update = %+v", got.Medias)
	}
}

func TestUpdateFullEntryMissingFails(t *testing.T) {
	s := testutil.NewTestStore(t)

	missing := int64(999)
	entry := newEntry("X", "", "Calm", "2026-01-01 00:00:00.000000Z", nil, nil)
	entry.EventInfo.EventID = &missing
	if err := s.UpdateFullEntry(context.Background(), entry); err == nil {
		t.Error("UpdateFullEntry of missing entry succeeded, want error")
	}
}

func TestDeleteEntryRemovesChildren(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	entry := newEntry("A", "B", "Happy", "2026-01-01 00:00:00.000000Z",
		[]string{"x", "y"}, []string{"a.png", "b.mp3"})
	id, err := s.InsertEntry(ctx, entry)
	if err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}

	if err := s.DeleteEntry(ctx, id); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}

	got, err := s.GetEntryByID(ctx, id)
	if err != nil {
		t.Fatalf("GetEntryByID: %v", err)
	}
	if got != nil {
		t.Errorf("entry still present after delete: %+v", got)
	}

	// No orphans may remain in the child tables; a fresh entry with the
	// same key would otherwise inherit them.
	reinserted := newEntry("C", "", "Calm", "2026-01-02 00:00:00.000000Z", nil, nil)
	reinserted.EventInfo.EventID = &id
	if _, err := s.InsertEntry(ctx, reinserted); err != nil {
		t.Fatalf("re-inserting entry: %v", err)
	}
	got, err = s.GetEntryByID(ctx, id)
	if err != nil {
		t.Fatalf("GetEntryByID: %v", err)
	}
	if len(got.Tags) != 0 || len(got.Medias) != 0 {
		t.Errorf("orphaned children survived delete: tags=%v medias=%v", got.Tags, got.Medias)
	}
}

func TestDeleteMissingEntryIsSilent(t *testing.T) {
	s := testutil.NewTestStore(t)

	if err := s.DeleteEntry(context.Background(), 12345); err != nil {
		t.Errorf("DeleteEntry of missing entry: %v", err)
	}
}

func TestDeleteAllEntries(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.InsertEntry(ctx, newEntry("e", "", "Calm",
			"2026-01-01 00:00:00.000000Z", []string{"t"}, []string{"m.png"})); err != nil {
			t.Fatalf("InsertEntry: %v", err)
		}
	}

	if err := s.DeleteAllEntries(ctx); err != nil {
		t.Fatalf("DeleteAllEntries: %v", err)
	}

	entries, err := s.GetAllEntries(ctx)
	if err != nil {
		t.Fatalf("GetAllEntries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries after delete-all = %d, want 0", len(entries))
	}
}

func TestInsertEntryEmptyTitleFails(t *testing.T) {
	s := testutil.NewTestStore(t)

	if _, err := s.InsertEntry(context.Background(),
		newEntry("  ", "", "Calm", "2026-01-01 00:00:00.000000Z", nil, nil)); err == nil {
		t.Error("InsertEntry with blank title succeeded, want error")
	}
}

func TestEntryLifecycleEndToEnd(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	entry := newEntry("A", "B", "Happy", "2026-01-01 00:00:00.000000Z",
		[]string{"x", "y"}, nil)
	id, err := s.InsertEntry(ctx, entry)
	if err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}

	got, err := s.GetEntryByID(ctx, id)
	if err != nil {
		t.Fatalf("GetEntryByID: %v", err)
	}
	if names := tagNames(got); len(names) != 2 {
		t.Fatalf("tags after insert = %v", names)
	}

	replacement := newEntry("A", "B", "Happy", "2026-01-01 00:00:00.000000Z",
		[]string{"z"}, nil)
	replacement.EventInfo.EventID = &id
	if err := s.UpdateFullEntry(ctx, replacement); err != nil {
		t.Fatalf("UpdateFullEntry: %v", err)
	}

	got, err = s.GetEntryByID(ctx, id)
	if err != nil {
		t.Fatalf("GetEntryByID: %v", err)
	}
	if names := tagNames(got); len(names) != 1 || names[0] != "z" {
		t.Errorf("tags after full update = %v, want [z]", names)
	}
}
