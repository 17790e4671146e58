package entryform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/piappstudio/digitaldiary/internal/model"
	"github.com/piappstudio/digitaldiary/internal/theme"
)

// EntryCreatedMsg is dispatched when a new entry is submitted via the form.
type EntryCreatedMsg struct {
	Entry model.UserEvent
}

// EntryUpdatedMsg is dispatched when an existing entry is updated via the form.
type EntryUpdatedMsg struct {
	Entry model.UserEvent
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// moods lists the selectable mood labels.
var moods = []string{
	"Happy", "Excited", "Grateful", "Inspired", "Calm",
	"Peaceful", "Romantic", "Adventurous", "Anxious", "Sad", "Angry",
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	emotion     string
	date        string
	tags        string
	mediaPaths  string
}

// Model is the Bubble Tea model for the diary entry create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   int64
	width    int
	height   int
}

// New creates a new entry form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{emotion: "Happy"},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for writing a new entry.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = 0
	m.fb.title = ""
	m.fb.description = ""
	m.fb.emotion = "Happy"
	m.fb.date = time.Now().UTC().Format("2006-01-02 15:04")
	m.fb.tags = ""
	m.fb.mediaPaths = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing entry.
func (m *Model) StartEdit(entry model.UserEvent) tea.Cmd {
	m.editMode = true
	m.editID = entry.ID()
	m.fb.title = entry.EventInfo.Title
	m.fb.description = entry.EventInfo.Description
	m.fb.emotion = entry.EventInfo.Emotion
	m.fb.date = displayDate(entry.EventInfo.DateInfo)

	var tags []string
	for _, t := range entry.Tags {
		tags = append(tags, t.TagName)
	}
	m.fb.tags = strings.Join(tags, ", ")

	var media []string
	for _, med := range entry.Medias {
		media = append(media, med.MediaPath)
	}
	m.fb.mediaPaths = strings.Join(media, ", ")

	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the entry form.
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

// View renders the entry form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Entry"
	if m.editMode {
		titleText = "Edit Entry"
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
	moodOpts := make([]huh.Option[string], len(moods))
	for i, mood := range moods {
		moodOpts[i] = huh.NewOption(mood, mood)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What happened today?").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewText().
				Title("Description").
				Placeholder("Tell the story...").
				Value(&m.fb.description),
			huh.NewSelect[string]().
				Title("Mood").
				Options(moodOpts...).
				Value(&m.fb.emotion),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD HH:MM").
				Value(&m.fb.date).
				Validate(validateDateTime),
			huh.NewInput().
				Title("Tags").
				Placeholder("comma, separated, tags").
				Value(&m.fb.tags),
			huh.NewInput().
				Title("Media").
				Placeholder("comma-separated file paths (optional)").
				Value(&m.fb.mediaPaths),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	entry := model.UserEvent{
		EventInfo: model.EventInfo{
			Title:       m.fb.title,
			Description: m.fb.description,
			Emotion:     m.fb.emotion,
			DateInfo:    storedDate(m.fb.date),
		},
	}

	for _, name := range splitList(m.fb.tags) {
		entry.Tags = append(entry.Tags, model.TagInfo{TagName: name})
	}
	for _, path := range splitList(m.fb.mediaPaths) {
		entry.Medias = append(entry.Medias, model.MediaInfo{MediaPath: path})
	}

	if m.editMode {
		id := m.editID
		entry.EventInfo.EventID = &id
		return func() tea.Msg { return EntryUpdatedMsg{Entry: entry} }
	}
	return func() tea.Msg { return EntryCreatedMsg{Entry: entry} }
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

// splitList splits a comma-separated input field into trimmed values.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// displayDate shortens a stored timestamp for editing.
func displayDate(dateInfo string) string {
	t, err := model.ParseDate(dateInfo)
	if err != nil {
		return dateInfo
	}
	return t.Format("2006-01-02 15:04")
}

// storedDate expands the form's short date back to the stored format.
func storedDate(s string) string {
	t, err := time.Parse("2006-01-02 15:04", strings.TrimSpace(s))
	if err != nil {
		return s
	}
	return model.FormatDate(t)
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDateTime(s string) error {
	if _, err := time.Parse("2006-01-02 15:04", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("invalid date, use YYYY-MM-DD HH:MM")
	}
	return nil
}
