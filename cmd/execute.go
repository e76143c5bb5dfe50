// Package cmd implements the command-line interface and orchestration logic
// for urimap. It coordinates between the components to execute a run:
// loading rules, building the composite pattern, resolving the replacement
// target, discovering candidate files and dispatching them to the processor.
package cmd

import (
	"os"

	"urimap/internal/config"
	"urimap/internal/errors"
	"urimap/internal/filter"
	"urimap/internal/pattern"
	"urimap/internal/process"
	"urimap/internal/report"
	"urimap/internal/rewrite"
	"urimap/internal/rules"
)

func executeUrimap(cfg *config.Config) error {
	r, err := rules.Load(cfg.RulesFile)
	if err != nil {
		return err
	}

	pat, err := pattern.Build(r.Search.Hostname, r.Search.Path)
	if err != nil {
		return err
	}

	// Resolve and validate the replacement target before any file is
	// opened, so a bad configuration never leaves a run half done.
	target, err := resolveTarget(cfg, r)
	if err != nil {
		return err
	}

	files, err := filter.NewDiscovery(cfg).Discover()
	if err != nil {
		return err
	}

	reporter := report.New(os.Stdout, os.Stderr)
	process.New(cfg, pat, target, reporter).Run(files)

	if cfg.IsVerbose() {
		reporter.WriteSummary()
	}
	return nil
}

// resolveTarget merges the replace section of the rules file with the
// command-line overrides, which take precedence. Hostname and protocol are
// only required for the mutating modes; the listing modes never format a
// replacement URI.
func resolveTarget(cfg *config.Config, r *rules.Rules) (rewrite.Target, error) {
	target := rewrite.Target{
		Hostname:      r.Replace.Hostname,
		Protocol:      r.Replace.Protocol,
		Substitutions: r.Replace.Substitutions,
	}
	if r.Replace.Username != nil {
		target.Username = *r.Replace.Username
	}

	if cfg.Hostname != "" {
		target.Hostname = cfg.Hostname
	}
	if cfg.Protocol != "" {
		target.Protocol = cfg.Protocol
	}
	if cfg.Username != "" {
		target.Username = cfg.Username
	}

	mode := cfg.Mode()
	if mode == config.ModeListConfigs || mode == config.ModeListProjects {
		return target, nil
	}

	if target.Protocol == "" {
		return target, errors.NewConfigError("a replacement protocol is required (set replace.protocol or use --protocol)", nil)
	}
	if !target.Protocol.Valid() {
		return target, errors.NewConfigError("replacement protocol is invalid", nil)
	}
	if target.Hostname == "" {
		return target, errors.NewConfigError("a replacement hostname is required (set replace.hostname or use --hostname)", nil)
	}

	return target, nil
}
