// internal/config/config.go
//
// This package handles configuration and the .goals directory structure.
// A project that embeds the goal store keeps its settings in .goals/config.yaml.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// GoalsDir is the name of the directory we create in each project
	GoalsDir = ".goals"

	// LogLevelEnv overrides logging.level when set.
	LogLevelEnv = "GOALS_LOG_LEVEL"

	defaultLogFile = "logs/goals.log"
)

const defaultProjectConfigYAML = `# goal store configuration
version: 1

store:
  # allow: any requirement between existing goals is accepted
  # reject: refuse requirements that would close a cycle
  cycle_policy: allow
  # orphan: deleting a goal leaves other goals' requirements on it in place
  # cascade: deleting a goal also removes it from every requirement set
  delete_policy: orphan

logging:
  level: info
  file: logs/goals.log
`

// StoreSettings selects the goal store policies.
type StoreSettings struct {
	CyclePolicy  string `yaml:"cycle_policy"`
	DeletePolicy string `yaml:"delete_policy"`
}

// LoggingSettings configures the store's log file.
type LoggingSettings struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// ProjectConfig models .goals/config.yaml.
type ProjectConfig struct {
	Version int             `yaml:"version"`
	Store   StoreSettings   `yaml:"store"`
	Logging LoggingSettings `yaml:"logging"`
}

// Config holds the runtime configuration for a project.
type Config struct {
	// ProjectDir is the directory that owns the .goals folder
	ProjectDir string

	// GoalsProjectDir is ProjectDir/.goals
	GoalsProjectDir string

	Project ProjectConfig
}

// InitDir creates the .goals directory structure in the given project
// directory and writes a default config.yaml if none exists.
//
// Structure created:
// .goals/
// ├── config.yaml
// └── logs/
func InitDir(projectDir string) error {
	goalsDir := filepath.Join(projectDir, GoalsDir)
	if err := os.MkdirAll(filepath.Join(goalsDir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: ensure goals dir: %w", err)
	}
	return ensureProjectConfig(filepath.Join(goalsDir, "config.yaml"))
}

// Load reads .goals/config.yaml under projectDir. A missing file yields the
// defaults.
func Load(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:      projectDir,
		GoalsProjectDir: filepath.Join(projectDir, GoalsDir),
		Project:         defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	if err := cfg.Project.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Dir returns the .goals directory.
func (c *Config) Dir() string {
	return c.GoalsProjectDir
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.GoalsProjectDir, "logs")
}

// ConfigPath returns the on-disk location for the project config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.GoalsProjectDir, "config.yaml")
}

// LogPath returns the absolute path of the log file.
func (c *Config) LogPath() string {
	return resolvePath(c.GoalsProjectDir, c.Project.Logging.File)
}

// Store returns the configured store policies.
func (c *Config) Store() StoreSettings {
	return c.Project.Store
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() string {
	return c.Project.Logging.Level
}

// Save writes the normalized config back to .goals/config.yaml.
func (c *Config) Save() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	c.Project.normalize()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.GoalsProjectDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure goals dir: %w", err)
	}
	data, err := yaml.Marshal(c.Project)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}

func (c *Config) loadProjectConfig() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func (c *Config) applyEnvOverrides() {
	if level := strings.TrimSpace(os.Getenv(LogLevelEnv)); level != "" {
		c.Project.Logging.Level = strings.ToLower(level)
	}
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Store: StoreSettings{
			CyclePolicy:  "allow",
			DeletePolicy: "orphan",
		},
		Logging: LoggingSettings{
			Level: "info",
			File:  defaultLogFile,
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	defaults := defaultProjectConfig()
	if pc.Version == 0 {
		pc.Version = defaults.Version
	}
	if strings.TrimSpace(pc.Store.CyclePolicy) == "" {
		pc.Store.CyclePolicy = defaults.Store.CyclePolicy
	}
	if strings.TrimSpace(pc.Store.DeletePolicy) == "" {
		pc.Store.DeletePolicy = defaults.Store.DeletePolicy
	}
	if strings.TrimSpace(pc.Logging.Level) == "" {
		pc.Logging.Level = defaults.Logging.Level
	}
	if strings.TrimSpace(pc.Logging.File) == "" {
		pc.Logging.File = defaults.Logging.File
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Store.CyclePolicy = normalizeName(pc.Store.CyclePolicy)
	pc.Store.DeletePolicy = normalizeName(pc.Store.DeletePolicy)
	pc.Logging.Level = normalizeName(pc.Logging.Level)
	pc.Logging.File = strings.TrimSpace(pc.Logging.File)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	switch pc.Store.CyclePolicy {
	case "allow", "reject":
	default:
		return fmt.Errorf("store.cycle_policy must be 'allow' or 'reject'")
	}
	switch pc.Store.DeletePolicy {
	case "orphan", "cascade":
	default:
		return fmt.Errorf("store.delete_policy must be 'orphan' or 'cascade'")
	}
	switch pc.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	return nil
}

func normalizeName(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
