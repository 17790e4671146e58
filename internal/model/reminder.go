package model

// ReminderInfo is a time-bound task with an optional notification lead time.
// It has no relation to diary entries. ReminderID is nil until inserted.
type ReminderInfo struct {
	ReminderID         *int64  `json:"reminder_id" db:"reminderId"`
	Title              string  `json:"title" db:"title"`
	Description        string  `json:"description" db:"description"`
	StartDate          *string `json:"start_date,omitempty" db:"startDate"`
	EndDate            *string `json:"end_date,omitempty" db:"endDate"`
	IsReminderRequired bool    `json:"is_reminder_required" db:"isReminderRequired"`
	RemindBefore       *int    `json:"remind_before,omitempty" db:"remindBefore"`
}

// ID returns the reminder's surrogate key, or 0 if it has not been inserted.
func (r *ReminderInfo) ID() int64 {
	if r.ReminderID == nil {
		return 0
	}
	return *r.ReminderID
}
