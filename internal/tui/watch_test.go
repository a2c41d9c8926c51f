package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DocHatty/Vulpes-Celare-sub003/internal/orchestrator"
	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

func TestWatchModelTracksTasks(t *testing.T) {
	events := make(chan orchestrator.Event, 8)
	m := NewWatchModel("leak fix", events)

	updated, _ := m.Update(EventMsg{Event: orchestrator.Event{
		Type: orchestrator.EventTaskStarted, TaskID: "locate-leak", Role: models.RoleScout,
	}})
	m = updated.(*WatchModel)

	view := m.View()
	if !strings.Contains(view, "locate-leak") || !strings.Contains(view, "running") {
		t.Errorf("view missing running task:\n%s", view)
	}

	updated, _ = m.Update(EventMsg{Event: orchestrator.Event{
		Type: orchestrator.EventTaskCompleted, TaskID: "locate-leak", Role: models.RoleScout,
	}})
	m = updated.(*WatchModel)

	if len(m.tasks) != 1 {
		t.Fatalf("expected task upsert, got %d rows", len(m.tasks))
	}
	if !strings.Contains(m.View(), "done") {
		t.Errorf("view missing completion:\n%s", m.View())
	}
}

func TestWatchModelShowsFailure(t *testing.T) {
	m := NewWatchModel("scan", make(chan orchestrator.Event))

	updated, _ := m.Update(EventMsg{Event: orchestrator.Event{
		Type: orchestrator.EventTaskFailed, TaskID: "scout-3", Role: models.RoleScout, Err: "timeout",
	}})
	m = updated.(*WatchModel)

	if !strings.Contains(m.View(), "timeout") {
		t.Errorf("view missing failure reason:\n%s", m.View())
	}
}

func TestWatchModelQuitsOnRunDone(t *testing.T) {
	m := NewWatchModel("audit", make(chan orchestrator.Event))

	updated, cmd := m.Update(RunDoneMsg{Summary: "Workflow compliance_audit completed"})
	m = updated.(*WatchModel)

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !m.done {
		t.Error("model should be done")
	}
	if !strings.Contains(m.View(), "completed") {
		t.Errorf("view missing summary:\n%s", m.View())
	}
}

func TestWatchModelQuitKey(t *testing.T) {
	m := NewWatchModel("audit", make(chan orchestrator.Event))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command on q")
	}
}
