package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	State      StateConfig      `mapstructure:"state" yaml:"state"`
	Git        GitConfig        `mapstructure:"git" yaml:"git"`
	Checkpoint CheckpointConfig `mapstructure:"checkpoint" yaml:"checkpoint"`
	History    HistoryConfig    `mapstructure:"history" yaml:"history"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// StateConfig configures state persistence.
type StateConfig struct {
	LockTTL string `mapstructure:"lock_ttl" yaml:"lock_ttl"`
}

// LockTTLDuration parses the lock TTL, falling back to one hour.
func (s StateConfig) LockTTLDuration() time.Duration {
	d, err := time.ParseDuration(s.LockTTL)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// GitConfig configures git command execution.
type GitConfig struct {
	Timeout string `mapstructure:"timeout" yaml:"timeout"`
}

// TimeoutDuration parses the git timeout, falling back to 30 seconds.
func (g GitConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(g.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// CheckpointConfig configures the finalize commit batcher.
type CheckpointConfig struct {
	CommitType        string        `mapstructure:"commit_type" yaml:"commit_type"`
	MaxFilesPerCommit int           `mapstructure:"max_files_per_commit" yaml:"max_files_per_commit"`
	SubjectMaxLength  int           `mapstructure:"subject_max_length" yaml:"subject_max_length"`
	DefaultRemote     string        `mapstructure:"default_remote" yaml:"default_remote"`
	Groups            []GroupConfig `mapstructure:"groups" yaml:"groups"`
}

// GroupConfig is one semantic commit group with its path patterns.
type GroupConfig struct {
	Name     string   `mapstructure:"name" yaml:"name"`
	Patterns []string `mapstructure:"patterns" yaml:"patterns"`
}

// HistoryConfig configures the local audit journal.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}
