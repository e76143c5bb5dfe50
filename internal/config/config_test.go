package config

import (
	"testing"

	"urimap/internal/rules"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name: "valid config",
			config: Config{
				RulesFile: "rules.json",
				Targets:   []string{"."},
			},
			expectError: false,
		},
		{
			name: "missing rules file",
			config: Config{
				Targets: []string{"."},
			},
			expectError: true,
		},
		{
			name: "missing targets",
			config: Config{
				RulesFile: "rules.json",
			},
			expectError: true,
		},
		{
			name: "invalid protocol override",
			config: Config{
				RulesFile: "rules.json",
				Targets:   []string{"."},
				Protocol:  rules.Protocol("gopher"),
			},
			expectError: true,
		},
		{
			name: "valid protocol override",
			config: Config{
				RulesFile: "rules.json",
				Targets:   []string{"."},
				Protocol:  rules.ProtocolSSHColon,
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError && err == nil {
				t.Errorf("expected validation error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestConfigMode(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected Mode
	}{
		{"default", Config{}, ModeRewrite},
		{"list configs", Config{ListConfigs: true}, ModeListConfigs},
		{"list projects", Config{ListProjects: true}, ModeListProjects},
		{"dry run", Config{DryRun: true}, ModeDryRun},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.Mode(); got != tt.expected {
				t.Errorf("Mode() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestIncludeGitModules(t *testing.T) {
	if (&Config{}).IncludeGitModules() {
		t.Errorf("gitmodules should be excluded by default")
	}
	if !(&Config{Modules: true}).IncludeGitModules() {
		t.Errorf("--modules should include gitmodules")
	}
	if !(&Config{ModulesOnly: true}).IncludeGitModules() {
		t.Errorf("--modules-only should include gitmodules")
	}
}

func TestIsVerbose(t *testing.T) {
	if !(&Config{Verbose: true}).IsVerbose() {
		t.Errorf("verbose config should be verbose")
	}
	if (&Config{Verbose: true, Quiet: true}).IsVerbose() {
		t.Errorf("quiet must override verbose")
	}
}

func TestShouldCreateBackup(t *testing.T) {
	if (&Config{}).ShouldCreateBackup() {
		t.Errorf("backups are opt-in")
	}
	if !(&Config{Backup: true}).ShouldCreateBackup() {
		t.Errorf("backup flag should enable backups in rewrite mode")
	}
	if (&Config{Backup: true, DryRun: true}).ShouldCreateBackup() {
		t.Errorf("dry run must never create backups")
	}
	if (&Config{Backup: true, ListProjects: true}).ShouldCreateBackup() {
		t.Errorf("listing modes must never create backups")
	}
}
