// Package config provides configuration management and validation for urimap.
// It centralizes all command-line options and runtime settings, providing
// validation logic to catch configuration errors early before processing begins.
package config

import (
	"path/filepath"

	"urimap/internal/errors"
	"urimap/internal/rules"
)

// Mode identifies what a run does with the discovered files.
type Mode int

// Run modes. Rewrite is the default; the listing modes and the dry run never
// modify any file.
const (
	ModeRewrite Mode = iota
	ModeListConfigs
	ModeListProjects
	ModeDryRun
)

// Config holds all runtime configuration options for urimap operations.
// It provides a single source of truth for all settings, enabling consistent
// behavior across all components. Hostname, Protocol and Username are
// command-line overrides; when set they take precedence over the values in
// the rules file.
type Config struct {
	RulesFile       string
	Targets         []string
	ListConfigs     bool
	ListProjects    bool
	ListCategorised bool
	ShowNewPath     string
	DryRun          bool
	Hostname        string
	Username        string
	Protocol        rules.Protocol
	Modules         bool
	ModulesOnly     bool
	Backup          bool
	Verbose         bool
	Quiet           bool
}

// Validate performs validation of configuration settings. It catches option
// errors before any rules file or target is opened, providing clear feedback
// about invalid settings.
func (c *Config) Validate() error {
	if err := c.validateRulesFile(); err != nil {
		return err
	}
	if err := c.validateTargets(); err != nil {
		return err
	}
	return c.validateProtocol()
}

func (c *Config) validateRulesFile() error {
	if c.RulesFile == "" {
		return errors.NewConfigError("rules file is required", nil)
	}

	abs, err := filepath.Abs(c.RulesFile)
	if err != nil {
		return errors.NewConfigErrorWithPath(c.RulesFile, "invalid rules file path", err)
	}
	c.RulesFile = abs
	return nil
}

func (c *Config) validateTargets() error {
	if len(c.Targets) == 0 {
		return errors.NewConfigError("at least one target file or directory is required", nil)
	}
	return nil
}

func (c *Config) validateProtocol() error {
	if c.Protocol != "" && !c.Protocol.Valid() {
		return errors.NewConfigError("protocol must be one of: git, ssh, http, https, ssh-colon, file, relative", nil)
	}
	return nil
}

// Mode determines the run mode from the mode selection flags. The flags are
// declared mutually exclusive at the CLI layer, so precedence here only
// matters for programmatic construction.
func (c *Config) Mode() Mode {
	switch {
	case c.ListConfigs:
		return ModeListConfigs
	case c.ListProjects:
		return ModeListProjects
	case c.DryRun:
		return ModeDryRun
	default:
		return ModeRewrite
	}
}

// IncludeGitModules reports whether .gitmodules files are part of directory
// discovery in addition to .git/config files.
func (c *Config) IncludeGitModules() bool {
	return c.Modules || c.ModulesOnly
}

// IsVerbose determines if verbose output is enabled. Quiet mode overrides
// Verbose so the two never conflict.
func (c *Config) IsVerbose() bool {
	return c.Verbose && !c.Quiet
}

// ShouldCreateBackup determines if backup files should be created before a
// file is rewritten. Backups are opt-in and never apply to non-mutating modes.
func (c *Config) ShouldCreateBackup() bool {
	return c.Backup && c.Mode() == ModeRewrite
}
