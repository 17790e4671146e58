package store

// migration is a single schema transformation step. Steps are keyed by the
// (from, to) version pair and must chain without gaps: the engine refuses to
// apply a step whose from version does not match the database's current
// version. All statements of a step run in one transaction together with the
// version bump, so a failed step leaves no partial schema behind.
type migration struct {
	from       int
	to         int
	statements []string
}

// TargetSchemaVersion is the schema version this build of the code expects.
const TargetSchemaVersion = 4

// migrations is the ordered list of schema migration steps.
//
// The create-new/copy/drop/rename pattern in steps 2 and 4 exists because
// SQLite's ALTER TABLE cannot change primary key declarations in place.
var migrations = []migration{
	{
		// Base schema. media_info has no primary key here and the
		// taginfo/media_info keys are caller-supplied; both defects are
		// repaired by the later steps.
		from: 0,
		to:   1,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS event_table (
				eventId     INTEGER,
				title       TEXT NOT NULL,
				description TEXT NOT NULL,
				emotion     TEXT NOT NULL,
				dateInfo    TEXT NOT NULL,
				PRIMARY KEY(eventId)
			)`,
			`CREATE TABLE IF NOT EXISTS media_info (
				mediaId   INTEGER NOT NULL,
				mediaPath TEXT NOT NULL,
				eventKey  INTEGER NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS taginfo (
				tagId    INTEGER,
				tagName  TEXT NOT NULL,
				eventKey INTEGER NOT NULL,
				PRIMARY KEY(tagId)
			)`,
		},
	},
	{
		// Rebuild media_info to give it an explicit primary key.
		from: 1,
		to:   2,
		statements: []string{
			`CREATE TABLE media_info_new (
				mediaId   INTEGER,
				mediaPath TEXT NOT NULL,
				eventKey  INTEGER NOT NULL,
				PRIMARY KEY(mediaId)
			)`,
			`INSERT INTO media_info_new SELECT * FROM media_info`,
			`DROP TABLE media_info`,
			`ALTER TABLE media_info_new RENAME TO media_info`,
		},
	},
	{
		// Reminders were added in version 3.
		from: 2,
		to:   3,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS reminder_table (
				reminderId         INTEGER,
				title              TEXT NOT NULL,
				description        TEXT NOT NULL,
				startDate          TEXT,
				endDate            TEXT,
				isReminderRequired INTEGER NOT NULL,
				remindBefore       INTEGER,
				PRIMARY KEY(reminderId)
			)`,
		},
	},
	{
		// Rebuild taginfo and media_info so their surrogate keys are
		// auto-incrementing instead of caller-supplied. The explicit
		// column lists keep existing rows intact across the copy.
		from: 3,
		to:   4,
		statements: []string{
			`CREATE TABLE taginfo_new (
				tagId    INTEGER PRIMARY KEY AUTOINCREMENT,
				tagName  TEXT NOT NULL,
				eventKey INTEGER NOT NULL
			)`,
			`INSERT INTO taginfo_new (tagId, tagName, eventKey)
				SELECT tagId, tagName, eventKey FROM taginfo`,
			`DROP TABLE taginfo`,
			`ALTER TABLE taginfo_new RENAME TO taginfo`,
			`CREATE TABLE media_info_new (
				mediaId   INTEGER PRIMARY KEY AUTOINCREMENT,
				mediaPath TEXT NOT NULL,
				eventKey  INTEGER NOT NULL
			)`,
			`INSERT INTO media_info_new (mediaId, mediaPath, eventKey)
				SELECT mediaId, mediaPath, eventKey FROM media_info`,
			`DROP TABLE media_info`,
			`ALTER TABLE media_info_new RENAME TO media_info`,
		},
	},
}
