package roles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

func TestDefaultsCoverAllRoles(t *testing.T) {
	table := Defaults()
	for _, role := range models.AllRoles {
		if table.Prompt(role) == "" {
			t.Errorf("role %s has no prompt template", role)
		}
		if len(table.Tools(role)) == 0 {
			t.Errorf("role %s has no tool set", role)
		}
	}
}

func TestToolsReturnsCopy(t *testing.T) {
	table := Defaults()
	tools := table.Tools(models.RoleScout)
	tools[0] = "mutated"

	if table.Tools(models.RoleScout)[0] == "mutated" {
		t.Error("Tools() exposed the internal slice")
	}
}

func TestBuildPrompt(t *testing.T) {
	table := Defaults()
	task := models.Task{
		ID:     "scout-1",
		Role:   models.RoleScout,
		Prompt: "scan the intake exporter",
		Context: map[string]any{
			"fileCount": 3,
			"dir":       "/data/intake",
		},
	}

	prompt := table.BuildPrompt(task)
	if !strings.Contains(prompt, "scan the intake exporter") {
		t.Error("prompt missing task text")
	}
	if !strings.Contains(prompt, "PHI scout") {
		t.Error("prompt missing role template")
	}
	if !strings.Contains(prompt, "fileCount: 3") {
		t.Error("prompt missing serialized context")
	}

	// Context serialization must be stable across calls.
	if table.BuildPrompt(task) != prompt {
		t.Error("BuildPrompt is not deterministic")
	}
}

func TestLoadFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roles.yaml")
	content := `roles:
  scout:
    prompt: "custom scout prompt"
    tools: ["read"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write role file: %v", err)
	}

	table, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	if table.Prompt(models.RoleScout) != "custom scout prompt" {
		t.Errorf("scout prompt not overridden: %q", table.Prompt(models.RoleScout))
	}
	if got := table.Tools(models.RoleScout); len(got) != 1 || got[0] != "read" {
		t.Errorf("scout tools not overridden: %v", got)
	}
	// Other roles keep defaults.
	if table.Prompt(models.RoleAuditor) == "" || table.Prompt(models.RoleAuditor) == "custom scout prompt" {
		t.Error("auditor prompt should keep its default")
	}
}

func TestLoadFileUnknownRole(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roles.yaml")
	if err := os.WriteFile(path, []byte("roles:\n  wizard:\n    prompt: x\n"), 0644); err != nil {
		t.Fatalf("write role file: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() accepted an unknown role name")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile() should fail for a missing file")
	}
}
