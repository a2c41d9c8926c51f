package ledger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "ledger.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)

	outcomes := []*Outcome{
		{TaskType: "workflow", WorkflowType: models.WorkflowLeakFix, Summary: "leak fixed", Outcome: OutcomeSuccess, DurationMs: 1200},
		{TaskType: "workflow", WorkflowType: models.WorkflowBatchScan, Summary: "scan degraded", Outcome: OutcomePartial, Notes: "2 of 10 files failed"},
		{TaskType: "scout", WorkflowType: models.WorkflowCustom, Summary: "quick scan", Outcome: OutcomeFailure, Notes: "timeout"},
	}
	for i, o := range outcomes {
		o.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		if err := store.RecordOutcome(o); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		if o.ID == 0 {
			t.Errorf("record %d: ID not assigned", i)
		}
	}

	got, err := store.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(got))
	}

	// Newest first.
	if got[0].TaskType != "scout" {
		t.Errorf("expected newest outcome first, got %q", got[0].TaskType)
	}
	if got[0].Outcome != OutcomeFailure || got[0].Notes != "timeout" {
		t.Errorf("round-trip mismatch: %+v", got[0])
	}
	if got[2].WorkflowType != models.WorkflowLeakFix {
		t.Errorf("workflow type lost: %q", got[2].WorkflowType)
	}
	if got[2].DurationMs != 1200 {
		t.Errorf("duration lost: %d", got[2].DurationMs)
	}
}

func TestRecentLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		err := store.RecordOutcome(&Outcome{
			TaskType: "workflow",
			Summary:  "run",
			Outcome:  OutcomeSuccess,
		})
		if err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := store.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 outcomes, got %d", len(got))
	}

	// Non-positive limit falls back to a default rather than returning nothing.
	got, err = store.Recent(0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("expected all 5 outcomes with default limit, got %d", len(got))
	}
}

func TestReopenPersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.RecordOutcome(&Outcome{TaskType: "workflow", Summary: "persisted", Outcome: OutcomeSuccess}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 || got[0].Summary != "persisted" {
		t.Errorf("outcome did not survive reopen: %+v", got)
	}
}

func TestNop(t *testing.T) {
	var l Ledger = Nop{}
	if err := l.RecordOutcome(&Outcome{}); err != nil {
		t.Errorf("nop record: %v", err)
	}
	got, err := l.Recent(10)
	if err != nil || got != nil {
		t.Errorf("nop recent: %v %v", got, err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("nop close: %v", err)
	}
}
