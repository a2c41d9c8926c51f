// Package config handles configuration loading for Cortex.
// It supports XDG config paths, project-level overrides, and environment
// variables. The orchestration engine itself never reads ambient state;
// everything it needs arrives as an explicit Config value.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

// Mode is the deployment mode the engine runs in.
type Mode string

const (
	ModeDev        Mode = "dev"
	ModeQA         Mode = "qa"
	ModeProduction Mode = "production"
)

// Valid returns true if the mode is a known value.
func (m Mode) Valid() bool {
	switch m {
	case ModeDev, ModeQA, ModeProduction:
		return true
	default:
		return false
	}
}

// DefaultMaxParallel is the worker bound used when none is configured.
const DefaultMaxParallel = 3

// Config holds all configuration for Cortex.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Timeouts TimeoutsConfig `mapstructure:"timeouts"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Roles    RolesConfig    `mapstructure:"roles"`
}

// ProviderConfig selects and configures the executor capability backend.
type ProviderConfig struct {
	// Name is one of anthropic, ollama, gemini, mock.
	Name string `mapstructure:"name"`
	// APIKey is the provider API key. Empty falls back to the
	// provider's usual environment variable.
	APIKey string `mapstructure:"api_key"`
	// Model is the model identifier; empty uses the provider default.
	Model string `mapstructure:"model"`
	// UseBedrock routes Anthropic traffic through AWS Bedrock.
	UseBedrock bool `mapstructure:"use_bedrock"`
	// AWSRegion is the Bedrock region (e.g. "us-west-2").
	AWSRegion string `mapstructure:"aws_region"`
	// AWSProfile is the optional AWS profile name.
	AWSProfile string `mapstructure:"aws_profile"`
}

// DefaultsConfig holds engine-wide defaults.
type DefaultsConfig struct {
	// MaxParallel bounds concurrent task execution within a phase.
	MaxParallel int `mapstructure:"max_parallel"`
	// Mode is dev, qa, or production.
	Mode string `mapstructure:"mode"`
	// SkipDependentsOnFailure skips tasks whose dependencies failed
	// instead of attempting them and marking the run degraded.
	SkipDependentsOnFailure bool `mapstructure:"skip_dependents_on_failure"`
}

// TimeoutsConfig holds per-role task timeouts.
type TimeoutsConfig struct {
	Scout    time.Duration `mapstructure:"scout"`
	Analyst  time.Duration `mapstructure:"analyst"`
	Engineer time.Duration `mapstructure:"engineer"`
	Tester   time.Duration `mapstructure:"tester"`
	Auditor  time.Duration `mapstructure:"auditor"`
	Setup    time.Duration `mapstructure:"setup"`
}

// ForRole returns the configured timeout for a role.
func (t TimeoutsConfig) ForRole(role models.Role) time.Duration {
	switch role {
	case models.RoleScout:
		return t.Scout
	case models.RoleAnalyst:
		return t.Analyst
	case models.RoleEngineer:
		return t.Engineer
	case models.RoleTester:
		return t.Tester
	case models.RoleAuditor:
		return t.Auditor
	case models.RoleSetup:
		return t.Setup
	default:
		return t.Scout
	}
}

// LedgerConfig holds outcome ledger settings.
type LedgerConfig struct {
	// Path is the SQLite database path. Empty uses
	// {workingDir}/.cortex/ledger.db.
	Path string `mapstructure:"path"`
}

// RolesConfig points at an optional role override file.
type RolesConfig struct {
	// File is a YAML file overriding role prompts and tool sets.
	File string `mapstructure:"file"`
}

// Mode returns the parsed deployment mode, defaulting to dev.
func (c *Config) Mode() Mode {
	m := Mode(c.Defaults.Mode)
	if !m.Valid() {
		return ModeDev
	}
	return m
}

// LedgerPath resolves the ledger database path for a working directory.
func (c *Config) LedgerPath(workingDir string) string {
	if c.Ledger.Path != "" {
		return c.Ledger.Path
	}
	return filepath.Join(workingDir, ".cortex", "ledger.db")
}

// Load loads configuration for the given working directory.
// Precedence (highest to lowest):
//  1. Environment variables (ANTHROPIC_API_KEY, GOOGLE_API_KEY, CORTEX_*)
//  2. Project config ({workingDir}/.cortex/config.yaml)
//  3. User config (~/.config/cortex/config.yaml)
//  4. Built-in defaults
func Load(workingDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// User config from XDG path.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Project config overrides.
	projectConfig := filepath.Join(workingDir, ".cortex", "config.yaml")
	if _, err := os.Stat(projectConfig); err == nil {
		pv := viper.New()
		pv.SetConfigFile(projectConfig)
		if err := pv.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading project config: %w", err)
		}
		if err := v.MergeConfigMap(pv.AllSettings()); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	bindEnv(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Provider.APIKey = os.ExpandEnv(cfg.Provider.APIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific file (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Provider.APIKey = os.ExpandEnv(cfg.Provider.APIKey)

	return cfg, nil
}

// DefaultTimeouts returns the built-in per-role timeouts used when no
// configuration file is loaded.
func DefaultTimeouts() TimeoutsConfig {
	return TimeoutsConfig{
		Scout:    2 * time.Minute,
		Analyst:  3 * time.Minute,
		Engineer: 5 * time.Minute,
		Tester:   3 * time.Minute,
		Auditor:  3 * time.Minute,
		Setup:    5 * time.Minute,
	}
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	timeouts := DefaultTimeouts()
	v.SetDefault("provider.name", "mock")
	v.SetDefault("provider.model", "")
	v.SetDefault("defaults.max_parallel", DefaultMaxParallel)
	v.SetDefault("defaults.mode", string(ModeDev))
	v.SetDefault("defaults.skip_dependents_on_failure", false)
	v.SetDefault("timeouts.scout", timeouts.Scout)
	v.SetDefault("timeouts.analyst", timeouts.Analyst)
	v.SetDefault("timeouts.engineer", timeouts.Engineer)
	v.SetDefault("timeouts.tester", timeouts.Tester)
	v.SetDefault("timeouts.auditor", timeouts.Auditor)
	v.SetDefault("timeouts.setup", timeouts.Setup)
}

// bindEnv maps environment variables onto config keys.
func bindEnv(v *viper.Viper) {
	v.BindEnv("provider.name", "CORTEX_PROVIDER")
	v.BindEnv("provider.api_key", "ANTHROPIC_API_KEY", "GOOGLE_API_KEY")
	v.BindEnv("provider.model", "CORTEX_MODEL")
	v.BindEnv("defaults.mode", "CORTEX_MODE")
}

// userConfigDir returns the XDG config directory for cortex.
func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cortex")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "cortex")
}
