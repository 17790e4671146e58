package model

import "time"

// DateLayout is the timestamp format stored in the dateInfo, startDate and
// endDate columns. The layout sorts lexicographically in chronological order,
// which every date-sort and date-range query relies on. Changing it requires
// a schema migration that rewrites existing rows.
const DateLayout = "2006-01-02 15:04:05.000000Z"

// FormatDate renders t in the stored timestamp format (UTC).
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses a stored timestamp string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// EventInfo is the header row of a single diary entry.
// EventID is nil until the row has been inserted.
type EventInfo struct {
	EventID     *int64 `json:"event_id" db:"eventId"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Emotion     string `json:"emotion" db:"emotion"`
	DateInfo    string `json:"date_info" db:"dateInfo"`
}

// MediaInfo references a photo or audio file attached to a diary entry.
// MediaID is assigned by the database unless supplied during seeding.
type MediaInfo struct {
	MediaID   *int64 `json:"media_id" db:"mediaId"`
	MediaPath string `json:"media_path" db:"mediaPath"`
	EventKey  int64  `json:"event_key" db:"eventKey"`
}

// TagInfo is a free-text label attached to a diary entry.
type TagInfo struct {
	TagID    *int64 `json:"tag_id" db:"tagId"`
	TagName  string `json:"tag_name" db:"tagName"`
	EventKey int64  `json:"event_key" db:"eventKey"`
}

// UserEvent is a diary entry header together with its child rows.
// Tags and Medias are populated by queries that join the child tables.
type UserEvent struct {
	EventInfo EventInfo   `json:"event_info"`
	Tags      []TagInfo   `json:"tags,omitempty"`
	Medias    []MediaInfo `json:"medias,omitempty"`
}

// ID returns the entry's surrogate key, or 0 if it has not been inserted.
func (u *UserEvent) ID() int64 {
	if u.EventInfo.EventID == nil {
		return 0
	}
	return *u.EventInfo.EventID
}
