package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

func TestLoadDefaults(t *testing.T) {
	// Point XDG at an empty dir so the developer's real config is ignored.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Defaults.MaxParallel != DefaultMaxParallel {
		t.Errorf("MaxParallel = %d, want %d", cfg.Defaults.MaxParallel, DefaultMaxParallel)
	}
	if cfg.Mode() != ModeDev {
		t.Errorf("Mode() = %v, want dev", cfg.Mode())
	}
	if cfg.Provider.Name != "mock" {
		t.Errorf("Provider.Name = %q, want mock", cfg.Provider.Name)
	}
	if cfg.Timeouts.Scout != 2*time.Minute {
		t.Errorf("Timeouts.Scout = %v, want 2m", cfg.Timeouts.Scout)
	}
	if cfg.Defaults.SkipDependentsOnFailure {
		t.Error("SkipDependentsOnFailure should default to false")
	}
}

func TestLoadProjectOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	workDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(workDir, ".cortex"), 0755); err != nil {
		t.Fatal(err)
	}
	content := `provider:
  name: anthropic
  model: claude-sonnet-4-20250514
defaults:
  max_parallel: 5
  mode: production
`
	if err := os.WriteFile(filepath.Join(workDir, ".cortex", "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(workDir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Provider.Name != "anthropic" {
		t.Errorf("Provider.Name = %q, want anthropic", cfg.Provider.Name)
	}
	if cfg.Defaults.MaxParallel != 5 {
		t.Errorf("MaxParallel = %d, want 5", cfg.Defaults.MaxParallel)
	}
	if cfg.Mode() != ModeProduction {
		t.Errorf("Mode() = %v, want production", cfg.Mode())
	}
	// Unset keys keep defaults.
	if cfg.Timeouts.Engineer != 5*time.Minute {
		t.Errorf("Timeouts.Engineer = %v, want default 5m", cfg.Timeouts.Engineer)
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `timeouts:
  scout: 30s
ledger:
  path: /tmp/cortex-test.db
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Timeouts.Scout != 30*time.Second {
		t.Errorf("Timeouts.Scout = %v, want 30s", cfg.Timeouts.Scout)
	}
	if cfg.Ledger.Path != "/tmp/cortex-test.db" {
		t.Errorf("Ledger.Path = %q", cfg.Ledger.Path)
	}
}

func TestTimeoutsForRole(t *testing.T) {
	timeouts := TimeoutsConfig{
		Scout:    1 * time.Minute,
		Analyst:  2 * time.Minute,
		Engineer: 3 * time.Minute,
		Tester:   4 * time.Minute,
		Auditor:  5 * time.Minute,
		Setup:    6 * time.Minute,
	}

	tests := []struct {
		role models.Role
		want time.Duration
	}{
		{models.RoleScout, 1 * time.Minute},
		{models.RoleAnalyst, 2 * time.Minute},
		{models.RoleEngineer, 3 * time.Minute},
		{models.RoleTester, 4 * time.Minute},
		{models.RoleAuditor, 5 * time.Minute},
		{models.RoleSetup, 6 * time.Minute},
		{models.Role("unknown"), 1 * time.Minute},
	}

	for _, tt := range tests {
		if got := timeouts.ForRole(tt.role); got != tt.want {
			t.Errorf("ForRole(%s) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestLedgerPath(t *testing.T) {
	cfg := &Config{}
	if got := cfg.LedgerPath("/work"); got != filepath.Join("/work", ".cortex", "ledger.db") {
		t.Errorf("LedgerPath() = %q", got)
	}

	cfg.Ledger.Path = "/custom/ledger.db"
	if got := cfg.LedgerPath("/work"); got != "/custom/ledger.db" {
		t.Errorf("LedgerPath() with override = %q", got)
	}
}

func TestModeValid(t *testing.T) {
	for _, m := range []Mode{ModeDev, ModeQA, ModeProduction} {
		if !m.Valid() {
			t.Errorf("mode %q should be valid", m)
		}
	}
	if Mode("staging").Valid() {
		t.Error("unknown mode should not be valid")
	}
}
