// Package remind watches the reminder table in the background and raises
// alerts when a reminder's notification window opens.
package remind

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/piappstudio/digitaldiary/internal/model"
	"github.com/piappstudio/digitaldiary/internal/store"
)

// AlertMsg is a tea.Msg sent when one or more reminders become due.
type AlertMsg struct {
	Reminders []model.ReminderInfo
	Error     error
}

// checkTimeout is the maximum time allowed for a single store scan.
const checkTimeout = 10 * time.Second

// defaultInterval is used when the configured poll interval is not positive.
const defaultInterval = 60 * time.Second

// Poller scans reminders on a fixed interval and reports the ones whose
// lead-time window has opened. Each reminder is reported once per process;
// editing a reminder re-arms it. A stopped poller may be started again.
type Poller struct {
	store    store.Store
	interval time.Duration
	trigger  chan struct{}

	mu       gosync.Mutex
	alertCh  chan AlertMsg
	stopCh   chan struct{}
	running  bool
	notified map[int64]string
}

// New creates a Poller scanning every interval.
func New(s store.Store, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		store:    s,
		interval: interval,
		alertCh:  make(chan AlertMsg, 16),
		trigger:  make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		notified: make(map[int64]string),
	}
}

// Start launches the polling goroutine and returns a tea.Cmd that waits for
// the first alert. Calling Start on a running poller is a no-op. The loop's
// channels are recreated on every start so a restart never touches the
// channels a previous run closed.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.alertCh = make(chan AlertMsg, 16)
	stopCh, alertCh := p.stopCh, p.alertCh
	p.mu.Unlock()

	go p.run(stopCh, alertCh)

	return p.WaitForAlert()
}

// Stop halts the polling goroutine.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// Refresh triggers an immediate scan outside the regular interval.
func (p *Poller) Refresh() tea.Cmd {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
	return nil
}

// WaitForAlert returns a tea.Cmd that blocks until the next alert. The app
// model re-issues it after handling each AlertMsg.
func (p *Poller) WaitForAlert() tea.Cmd {
	p.mu.Lock()
	alertCh := p.alertCh
	p.mu.Unlock()

	return func() tea.Msg {
		msg, ok := <-alertCh
		if !ok {
			return nil
		}
		return msg
	}
}

// run is the polling loop. It scans once immediately, then on every tick or
// manual trigger until Stop is called. The channels are parameters rather
// than field reads so a restarted poller cannot close its successor's
// channels.
func (p *Poller) run(stopCh <-chan struct{}, alertCh chan AlertMsg) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	defer close(alertCh)

	p.check(time.Now(), alertCh)

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			p.check(time.Now(), alertCh)
		case <-p.trigger:
			p.check(time.Now(), alertCh)
		}
	}
}

// check scans all reminders and sends an AlertMsg for any newly due ones.
func (p *Poller) check(now time.Time, alertCh chan<- AlertMsg) {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	reminders, err := p.store.GetReminders(ctx, store.ReminderFilter{})
	if err != nil {
		send(alertCh, AlertMsg{Error: err})
		return
	}

	due := p.collectDue(reminders, now)
	if len(due) > 0 {
		send(alertCh, AlertMsg{Reminders: due})
	}
}

// collectDue filters reminders down to the ones whose window has opened and
// that have not been reported since their deadline last changed.
func (p *Poller) collectDue(reminders []model.ReminderInfo, now time.Time) []model.ReminderInfo {
	p.mu.Lock()
	defer p.mu.Unlock()

	var due []model.ReminderInfo
	for _, r := range reminders {
		if !Due(r, now) {
			continue
		}
		if p.notified[r.ID()] == *r.EndDate {
			continue
		}
		p.notified[r.ID()] = *r.EndDate
		due = append(due, r)
	}
	return due
}

// send delivers an alert without blocking the polling loop.
func send(alertCh chan<- AlertMsg, msg AlertMsg) {
	select {
	case alertCh <- msg:
	default:
	}
}

// Due reports whether the reminder's notification window is open at now.
// The window opens remindBefore minutes before the end date and a reminder
// with no end date or with notifications switched off is never due.
func Due(r model.ReminderInfo, now time.Time) bool {
	if !r.IsReminderRequired || r.EndDate == nil {
		return false
	}
	end, err := model.ParseDate(*r.EndDate)
	if err != nil {
		return false
	}

	lead := time.Duration(0)
	if r.RemindBefore != nil {
		lead = time.Duration(*r.RemindBefore) * time.Minute
	}
	return !now.Before(end.Add(-lead))
}
