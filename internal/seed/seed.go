// Package seed fills the store with sample diary entries and reminders for
// development and demos.
package seed

import (
	"context"
	"fmt"

	"github.com/piappstudio/digitaldiary/internal/model"
	"github.com/piappstudio/digitaldiary/internal/store"
)

// Run wipes both the diary and reminder tables, then inserts the sample data.
func Run(ctx context.Context, s store.Store) error {
	if err := s.DeleteAllEntries(ctx); err != nil {
		return fmt.Errorf("clearing diary entries: %w", err)
	}
	if err := s.DeleteAllReminders(ctx); err != nil {
		return fmt.Errorf("clearing reminders: %w", err)
	}

	for _, entry := range sampleEntries() {
		if _, err := s.InsertEntry(ctx, &entry); err != nil {
			return fmt.Errorf("seeding entry %q: %w", entry.EventInfo.Title, err)
		}
	}
	for _, reminder := range sampleReminders() {
		if _, err := s.InsertReminder(ctx, &reminder); err != nil {
			return fmt.Errorf("seeding reminder %q: %w", reminder.Title, err)
		}
	}

	return nil
}

func entry(date, title, description, emotion string, tags []string, media []string) model.UserEvent {
	e := model.UserEvent{
		EventInfo: model.EventInfo{
			DateInfo:    date,
			Title:       title,
			Description: description,
			Emotion:     emotion,
		},
	}
	for _, t := range tags {
		e.Tags = append(e.Tags, model.TagInfo{TagName: t})
	}
	for _, m := range media {
		e.Medias = append(e.Medias, model.MediaInfo{MediaPath: m})
	}
	return e
}

func sampleEntries() []model.UserEvent {
	return []model.UserEvent{
		entry("2026-02-07 12:30:00.123456Z",
			"Work Family Day Celebration",
			"Our company organized a family day event. Brought my family to the office, showed them my workplace, and we had fun team activities together. Best of both worlds!",
			"Happy",
			[]string{"Work", "Family", "Company", "Fun", "Celebration"},
			[]string{"event_11.png", "event_11.mp3"}),
		entry("2026-02-06 18:15:30.654321Z",
			"Booked Dream Vacation",
			"Finally booked the tickets for our dream vacation to Europe! We'll be visiting Paris, Rome, and Barcelona. Can't wait for this adventure!",
			"Excited",
			[]string{"Travel", "Vacation", "Europe", "Adventure"},
			[]string{"event_12.png"}),
		entry("2026-02-05 14:45:00.789012Z",
			"Started New Online Course",
			"Enrolled in an advanced course on machine learning. First module was fascinating and has opened up new possibilities for my career.",
			"Inspired",
			[]string{"Learning", "Education", "Career", "Technology"},
			[]string{"event_13.mp3"}),
		entry("2026-02-04 09:20:15.345678Z",
			"Promoted at Work!",
			"Got promoted to Senior Developer today! It's the result of hard work, dedication, and amazing support from my team and family. Feeling incredibly grateful and proud!",
			"Grateful",
			[]string{"Work", "Promotion", "Achievement", "Success", "Grateful"},
			[]string{"event_14.png", "event_14.mp3"}),
		entry("2026-02-03 20:00:00.987654Z",
			"Spa Day at Home",
			"Spent the day pampering myself. Took a long bath with essential oils, did a face mask, and relaxed with soft music. Self-care at its finest!",
			"Calm",
			[]string{"Self-Care", "Wellness", "Relaxation", "Spa"},
			[]string{"event_15.png"}),
		entry("2026-02-02 15:30:45.456789Z",
			"Tried Skydiving",
			"Completed my first skydiving experience today! The adrenaline rush was unreal. Jumping out of a plane at 15,000 feet was the most thrilling moment of my life!",
			"Adventurous",
			[]string{"Adventure", "Sports", "Extreme", "Thrilling", "Bucket List"},
			[]string{"event_16.png", "event_16.mp3"}),
		entry("2026-02-01 10:15:00.111222Z",
			"Difficult Client Meeting",
			"Had a challenging meeting with a difficult client. Managed to handle their concerns professionally and turned a negative situation around. Proved my abilities!",
			"Anxious",
			[]string{"Work", "Challenge", "Client", "Professional"},
			[]string{"event_17.mp3"}),
		entry("2026-01-31 19:45:30.333444Z",
			"5 Year Anniversary",
			"Celebrated our 5 year anniversary today! We renewed our vows in a private ceremony surrounded by close friends and family. A day filled with love and joy!",
			"Romantic",
			[]string{"Love", "Anniversary", "Marriage", "Vows", "Celebration"},
			[]string{"event_18.png", "event_18.mp3"}),
		entry("2026-01-30 16:20:00.555666Z",
			"Loss of a Dear Friend",
			"Said goodbye to my dear friend today. We had incredible memories together. While I'm sad, I'm grateful for the time we spent. They will be missed dearly.",
			"Sad",
			[]string{"Loss", "Memory", "Friendship", "Emotional"},
			[]string{"event_19.mp3"}),
		entry("2026-01-29 06:00:00.777888Z",
			"Sunrise Watching at Beach",
			"Woke up early to watch the sunrise at the beach. The golden colors reflecting on the water were magical. A perfect way to start a peaceful day.",
			"Peaceful",
			[]string{"Nature", "Beach", "Sunrise", "Peace", "Morning"},
			[]string{"event_20.png"}),
		entry("2026-01-28 14:30:00.999000Z",
			"Completed Art Project",
			"Finally finished my painting! It took months of work but seeing it completed is so rewarding. The colors and composition turned out even better than I imagined!",
			"Happy",
			[]string{"Art", "Creative", "Project", "Accomplishment"},
			[]string{"event_21.png"}),
		entry("2026-01-27 10:00:00.111222Z",
			"Started New Job",
			"First day at my new job! The team is welcoming, the office is modern, and I'm excited about the projects we'll be working on. Fresh start, new opportunities!",
			"Excited",
			[]string{"Work", "New Job", "Career", "Fresh Start", "Opportunity"},
			[]string{"event_22.png"}),
		entry("2026-01-26 17:45:00.333444Z",
			"Volunteered at Local Shelter",
			"Spent the afternoon volunteering at the local animal shelter. Helped rescue dogs find new homes and felt inspired to make a difference in the community.",
			"Inspired",
			[]string{"Volunteer", "Community", "Animals", "Helping", "Inspiration"},
			[]string{"event_23.png"}),
		entry("2026-01-25 08:30:00.555666Z",
			"Completed 30-Day Fitness Challenge",
			"Completed my 30-day fitness challenge! Lost weight, gained strength, and feel healthier than ever. Grateful for my body and the discipline to stick with it.",
			"Grateful",
			[]string{"Fitness", "Health", "Wellness", "Challenge", "Achievement"},
			[]string{"event_24.png", "event_24.mp3"}),
		entry("2026-01-24 21:00:00.777888Z",
			"Journaling and Reflection",
			"Spent the evening journaling about my goals for the year. Reflected on my growth, mistakes, and lessons learned. Writing is therapeutic and clarifying.",
			"Calm",
			[]string{"Journaling", "Reflection", "Growth", "Goals"},
			[]string{"event_25.mp3"}),
	}
}

func reminder(title, description, start, end string, remindBefore int) model.ReminderInfo {
	r := model.ReminderInfo{
		Title:       title,
		Description: description,
		StartDate:   &start,
		EndDate:     &end,
	}
	if remindBefore > 0 {
		r.IsReminderRequired = true
		r.RemindBefore = &remindBefore
	}
	return r
}

func sampleReminders() []model.ReminderInfo {
	return []model.ReminderInfo{
		reminder("Team Standup Meeting",
			"Daily team sync-up to discuss progress and blockers. Conference room B at 10:00 AM.",
			"2026-02-16 10:00:00.000000Z", "2026-02-16 10:00:00.000000Z", 30),
		reminder("Project Deadline",
			"Final submission for the mobile app development project. All features must be completed and tested.",
			"2026-02-18 09:00:00.000000Z", "2026-02-20 17:00:00.000000Z", 60),
		reminder("Doctor's Appointment",
			"Annual health checkup with Dr. Sarah Smith at 2:00 PM. Bring insurance card and list of medications.",
			"2026-02-22 14:00:00.000000Z", "2026-02-22 14:00:00.000000Z", 120),
		reminder("Vacation Planning",
			"Start planning summer vacation. Research destinations, compare flights, and book accommodations.",
			"2026-02-25 09:00:00.000000Z", "2026-03-05 18:00:00.000000Z", 0),
		reminder("Car Service",
			"Schedule regular maintenance for the car. Oil change, tire rotation, and general inspection due.",
			"2026-03-01 08:00:00.000000Z", "2026-03-10 18:00:00.000000Z", 1440),
		reminder("Renew Gym Membership",
			"Gym membership expires at the end of March. Decide if you want to renew or switch to a new gym.",
			"2026-03-15 09:00:00.000000Z", "2026-03-31 21:00:00.000000Z", 0),
		reminder("Buy Birthday Gift",
			"Sister's birthday is coming up. Find and purchase a nice gift before the deadline.",
			"2026-03-05 10:00:00.000000Z", "2026-03-20 20:00:00.000000Z", 2880),
		reminder("Spring Cleaning",
			"Time for deep cleaning. Organize rooms, clean windows, and declutter unnecessary items.",
			"2026-03-10 09:00:00.000000Z", "2026-03-25 18:00:00.000000Z", 0),
		reminder("Credit Card Payment Due",
			"Pay monthly credit card bill to avoid late charges and maintain good credit score.",
			"2026-02-25 09:00:00.000000Z", "2026-02-28 23:59:59.000000Z", 120),
		reminder("Online Course Assignment",
			"Complete and submit the final assignment for the online certification course before the deadline.",
			"2026-03-01 09:00:00.000000Z", "2026-03-15 23:59:59.000000Z", 180),
	}
}
