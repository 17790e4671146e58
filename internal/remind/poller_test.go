package remind

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/piappstudio/digitaldiary/internal/model"
	"github.com/piappstudio/digitaldiary/tests/testutil"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestDue(t *testing.T) {
	now, err := model.ParseDate("2026-03-01 12:00:00.000000Z")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}

	tests := []struct {
		name string
		r    model.ReminderInfo
		want bool
	}{
		{
			name: "inside lead window",
			r: model.ReminderInfo{
				IsReminderRequired: true,
				EndDate:            strPtr("2026-03-01 12:20:00.000000Z"),
				RemindBefore:       intPtr(30),
			},
			want: true,
		},
		{
			name: "before lead window",
			r: model.ReminderInfo{
				IsReminderRequired: true,
				EndDate:            strPtr("2026-03-01 14:00:00.000000Z"),
				RemindBefore:       intPtr(30),
			},
			want: false,
		},
		{
			name: "past deadline with no lead time",
			r: model.ReminderInfo{
				IsReminderRequired: true,
				EndDate:            strPtr("2026-03-01 11:00:00.000000Z"),
			},
			want: true,
		},
		{
			name: "notifications off",
			r: model.ReminderInfo{
				IsReminderRequired: false,
				EndDate:            strPtr("2026-03-01 11:00:00.000000Z"),
			},
			want: false,
		},
		{
			name: "no end date",
			r:    model.ReminderInfo{IsReminderRequired: true},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Due(tt.r, now); got != tt.want {
				t.Errorf("Due = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckReportsDueOnce(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	past := model.FormatDate(time.Now().UTC().Add(-time.Hour))
	future := model.FormatDate(time.Now().UTC().Add(24 * time.Hour))

	dueReminder := model.ReminderInfo{
		Title:              "Renew passport",
		IsReminderRequired: true,
		EndDate:            &past,
	}
	if _, err := s.InsertReminder(ctx, &dueReminder); err != nil {
		t.Fatalf("InsertReminder: %v", err)
	}
	laterReminder := model.ReminderInfo{
		Title:              "Water plants",
		IsReminderRequired: true,
		EndDate:            &future,
	}
	if _, err := s.InsertReminder(ctx, &laterReminder); err != nil {
		t.Fatalf("InsertReminder: %v", err)
	}

	p := New(s, time.Minute)
	p.check(time.Now(), p.alertCh)

	select {
	case msg := <-p.alertCh:
		if msg.Error != nil {
			t.Fatalf("alert error: %v", msg.Error)
		}
		if len(msg.Reminders) != 1 || msg.Reminders[0].Title != "Renew passport" {
			t.Errorf("alert = %+v, want only the overdue reminder", msg.Reminders)
		}
	default:
		t.Fatal("no alert after check")
	}

	// A second scan must not re-report the same reminder.
	p.check(time.Now(), p.alertCh)
	select {
	case msg := <-p.alertCh:
		t.Errorf("duplicate alert: %+v", msg.Reminders)
	default:
	}
}

func TestCheckReArmsWhenDeadlineChanges(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	past := model.FormatDate(time.Now().UTC().Add(-time.Hour))
	r := model.ReminderInfo{
		Title:              "Pay rent",
		IsReminderRequired: true,
		EndDate:            &past,
	}
	if _, err := s.InsertReminder(ctx, &r); err != nil {
		t.Fatalf("InsertReminder: %v", err)
	}

	p := New(s, time.Minute)
	p.check(time.Now(), p.alertCh)
	<-p.alertCh

	// Moving the deadline, still in the past, makes the reminder due again.
	moved := model.FormatDate(time.Now().UTC().Add(-30 * time.Minute))
	r.EndDate = &moved
	if err := s.UpdateReminder(ctx, r); err != nil {
		t.Fatalf("UpdateReminder: %v", err)
	}

	p.check(time.Now(), p.alertCh)
	select {
	case msg := <-p.alertCh:
		if len(msg.Reminders) != 1 {
			t.Errorf("alert = %+v, want one reminder", msg.Reminders)
		}
	default:
		t.Fatal("no alert after deadline change")
	}
}

func TestStartAfterStopDeliversAlerts(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	p := New(s, time.Minute)
	p.Start()
	p.Stop()
	// Let the first loop exit and close its own alert channel.
	time.Sleep(100 * time.Millisecond)

	past := model.FormatDate(time.Now().UTC().Add(-time.Hour))
	r := model.ReminderInfo{
		Title:              "Submit tax return",
		IsReminderRequired: true,
		EndDate:            &past,
	}
	if _, err := s.InsertReminder(ctx, &r); err != nil {
		t.Fatalf("InsertReminder: %v", err)
	}

	cmd := p.Start()
	defer p.Stop()

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case raw := <-done:
		msg, ok := raw.(AlertMsg)
		if !ok {
			t.Fatalf("restarted poller returned %T, want AlertMsg", raw)
		}
		if len(msg.Reminders) != 1 || msg.Reminders[0].Title != "Submit tax return" {
			t.Errorf("alert = %+v, want the overdue reminder", msg.Reminders)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no alert from restarted poller")
	}
}
