package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const exampleHeader = `# Cadence configuration
# Values not specified here use built-in defaults.
`

// Example returns a fully populated config with default values, suitable
// for rendering as a starter config file.
func Example() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		State: StateConfig{
			LockTTL: "1h",
		},
		Git: GitConfig{
			Timeout: "30s",
		},
		Checkpoint: CheckpointConfig{
			CommitType:        "cadence",
			MaxFilesPerCommit: 4,
			SubjectMaxLength:  72,
			DefaultRemote:     "origin",
			Groups: []GroupConfig{
				{Name: "cadence-state", Patterns: []string{".cadence/"}},
				{Name: "skill-instructions", Patterns: []string{"skills/", "SKILL.md"}},
				{Name: "docs", Patterns: []string{"docs/", "doc/", ".md", ".rst", ".txt"}},
				{Name: "scripts", Patterns: []string{"scripts/", "bin/", ".sh", ".py"}},
				{Name: "tests", Patterns: []string{"tests/", "test/", "*_test.go", "test_*.py", "*.spec.*"}},
				{Name: "config", Patterns: []string{
					".yaml", ".yml", ".toml", ".ini", ".json", ".env",
					"Makefile", "Dockerfile", "go.mod", "go.sum", ".gitignore",
				}},
			},
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    ".cadence/history.db",
		},
	}
}

// RenderExample serializes the default config as commented YAML.
func RenderExample() ([]byte, error) {
	body, err := yaml.Marshal(Example())
	if err != nil {
		return nil, fmt.Errorf("rendering example config: %w", err)
	}
	return append([]byte(exampleHeader), body...), nil
}

// WriteExample writes the starter config file atomically.
func WriteExample(path string) error {
	data, err := RenderExample()
	if err != nil {
		return err
	}
	return AtomicWrite(path, data)
}
