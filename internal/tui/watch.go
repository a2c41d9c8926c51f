// Package tui provides the terminal user interface for watching a run.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DocHatty/Vulpes-Celare-sub003/internal/orchestrator"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	phaseStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	summaryStyle = lipgloss.NewStyle().MarginTop(1)
)

// EventMsg wraps an engine event for the TUI.
type EventMsg struct {
	Event orchestrator.Event
}

// RunDoneMsg signals that the orchestration run has completed.
type RunDoneMsg struct {
	Summary string
	Err     error
}

// taskLine is one rendered task row.
type taskLine struct {
	id     string
	role   string
	phase  int
	status string
	failed bool
}

// WatchModel is the bubbletea model for watching a run's progress.
type WatchModel struct {
	events <-chan orchestrator.Event

	spinner  spinner.Model
	title    string
	phase    int
	tasks    []taskLine
	order    map[string]int
	summary  string
	err      error
	done     bool
	quitting bool
	started  time.Time
}

// NewWatchModel creates a watch model over the engine's event stream.
func NewWatchModel(title string, events <-chan orchestrator.Event) *WatchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

	return &WatchModel{
		events:  events,
		spinner: s,
		title:   title,
		order:   make(map[string]int),
		started: time.Now(),
	}
}

// Init implements tea.Model.
func (m *WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForEvent())
}

// waitForEvent blocks on the next engine event.
func (m *WatchModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		e, ok := <-m.events
		if !ok {
			return nil
		}
		return EventMsg{Event: e}
	}
}

// Update implements tea.Model.
func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EventMsg:
		m.apply(msg.Event)
		return m, m.waitForEvent()

	case RunDoneMsg:
		m.summary = msg.Summary
		m.err = msg.Err
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *WatchModel) apply(e orchestrator.Event) {
	switch e.Type {
	case orchestrator.EventPhaseStarted:
		m.phase = e.Phase
	case orchestrator.EventTaskQueued:
		m.upsert(e, "queued", false)
	case orchestrator.EventTaskStarted:
		m.upsert(e, "running", false)
	case orchestrator.EventTaskCompleted:
		m.upsert(e, "done", false)
	case orchestrator.EventTaskFailed:
		m.upsert(e, e.Err, true)
	}
}

func (m *WatchModel) upsert(e orchestrator.Event, status string, failed bool) {
	if idx, ok := m.order[e.TaskID]; ok {
		m.tasks[idx].status = status
		m.tasks[idx].failed = failed
		return
	}
	m.order[e.TaskID] = len(m.tasks)
	m.tasks = append(m.tasks, taskLine{
		id:     e.TaskID,
		role:   string(e.Role),
		phase:  e.Phase,
		status: status,
		failed: failed,
	})
}

// View implements tea.Model.
func (m *WatchModel) View() string {
	if m.quitting && !m.done {
		return dimStyle.Render("detached; run continues in the background\n")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	if !m.done {
		fmt.Fprintf(&b, "%s %s\n\n", m.spinner.View(), phaseStyle.Render(fmt.Sprintf("phase %d", m.phase)))
	}

	for _, t := range m.tasks {
		style := dimStyle
		mark := "·"
		switch {
		case t.failed:
			style = failStyle
			mark = "✗"
		case t.status == "done":
			style = okStyle
			mark = "✓"
		case t.status == "running":
			style = phaseStyle
			mark = "▸"
		}
		fmt.Fprintf(&b, "  %s %-24s %-10s %s\n", mark, t.id, t.role, style.Render(t.status))
	}

	if m.done {
		if m.err != nil {
			b.WriteString(summaryStyle.Render(failStyle.Render(m.err.Error())))
			b.WriteString("\n")
		}
		b.WriteString(summaryStyle.Render(m.summary))
		b.WriteString("\n")
	} else {
		fmt.Fprintf(&b, "\n%s\n", dimStyle.Render(fmt.Sprintf("elapsed %s · q to detach", time.Since(m.started).Round(time.Second))))
	}

	return b.String()
}
