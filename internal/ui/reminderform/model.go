package reminderform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/piappstudio/digitaldiary/internal/model"
	"github.com/piappstudio/digitaldiary/internal/theme"
)

// ReminderCreatedMsg is dispatched when a new reminder is submitted.
type ReminderCreatedMsg struct {
	Reminder model.ReminderInfo
}

// ReminderUpdatedMsg is dispatched when an existing reminder is updated.
type ReminderUpdatedMsg struct {
	Reminder model.ReminderInfo
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title        string
	description  string
	startDate    string
	endDate      string
	alert        bool
	remindBefore string
}

// Model is the Bubble Tea model for the reminder create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   int64
	width    int
	height   int
}

// New creates a new reminder form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new reminder.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = 0
	m.fb.title = ""
	m.fb.description = ""
	m.fb.startDate = time.Now().UTC().Format("2006-01-02")
	m.fb.endDate = ""
	m.fb.alert = false
	m.fb.remindBefore = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing reminder.
func (m *Model) StartEdit(r model.ReminderInfo) tea.Cmd {
	m.editMode = true
	m.editID = r.ID()
	m.fb.title = r.Title
	m.fb.description = r.Description
	m.fb.startDate = displayDate(r.StartDate)
	m.fb.endDate = displayDate(r.EndDate)
	m.fb.alert = r.IsReminderRequired
	if r.RemindBefore != nil {
		m.fb.remindBefore = strconv.Itoa(*r.RemindBefore)
	} else {
		m.fb.remindBefore = ""
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the reminder form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the reminder form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Reminder"
	if m.editMode {
		titleText = "Edit Reminder"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What should I remember?").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&m.fb.description),
			huh.NewInput().
				Title("Start Date").
				Placeholder("YYYY-MM-DD (optional)").
				Value(&m.fb.startDate).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("End Date").
				Placeholder("YYYY-MM-DD (optional)").
				Value(&m.fb.endDate).
				Validate(validateOptionalDate),
			huh.NewConfirm().
				Title("Alert when due?").
				Value(&m.fb.alert),
			huh.NewInput().
				Title("Remind Before").
				Placeholder("minutes before deadline (optional)").
				Value(&m.fb.remindBefore).
				Validate(validateOptionalMinutes),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	r := model.ReminderInfo{
		Title:              m.fb.title,
		Description:        m.fb.description,
		StartDate:          storedDate(m.fb.startDate),
		EndDate:            storedDate(m.fb.endDate),
		IsReminderRequired: m.fb.alert,
	}

	if v := strings.TrimSpace(m.fb.remindBefore); v != "" {
		if mins, err := strconv.Atoi(v); err == nil {
			r.RemindBefore = &mins
		}
	}

	if m.editMode {
		id := m.editID
		r.ReminderID = &id
		return func() tea.Msg { return ReminderUpdatedMsg{Reminder: r} }
	}
	return func() tea.Msg { return ReminderCreatedMsg{Reminder: r} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

// displayDate shortens a stored timestamp for editing.
func displayDate(dateInfo *string) string {
	if dateInfo == nil {
		return ""
	}
	t, err := model.ParseDate(*dateInfo)
	if err != nil {
		return *dateInfo
	}
	return t.Format("2006-01-02")
}

// storedDate expands the form's day field back to the stored format.
// A blank field maps to no date at all.
func storedDate(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return &s
	}
	stored := model.FormatDate(t)
	return &stored
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validateOptionalMinutes(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("must be a non-negative number of minutes")
	}
	return nil
}
