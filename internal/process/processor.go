// Package process orchestrates per-file operations for urimap. Each target
// file is read fully into memory, matched and rewritten, and on mutating
// runs written back through a temporary file that is either renamed into
// place on success or removed on failure, so no partial write to the
// original is ever observable. Files are processed sequentially; per-file
// failures are reported and never block the remaining targets.
package process

import (
	"os"
	"path/filepath"

	"urimap/internal/backup"
	"urimap/internal/config"
	"urimap/internal/errors"
	"urimap/internal/pattern"
	"urimap/internal/report"
	"urimap/internal/rewrite"
)

// Processor runs the configured mode over a list of discovered files.
type Processor struct {
	cfg           *config.Config
	pattern       *pattern.Pattern
	target        rewrite.Target
	reporter      *report.Reporter
	backupManager *backup.Manager
}

// New creates a Processor for one run. The pattern and target are immutable
// values resolved once up front; nothing here is shared mutable state.
func New(cfg *config.Config, p *pattern.Pattern, t rewrite.Target, r *report.Reporter) *Processor {
	return &Processor{
		cfg:           cfg,
		pattern:       p,
		target:        t,
		reporter:      r,
		backupManager: backup.NewManager(cfg.ShouldCreateBackup()),
	}
}

// Run processes every file in order. Per-file errors go to the diagnostics
// stream and processing continues with the next file; Run itself only
// reflects that the run completed.
func (p *Processor) Run(files []string) {
	for _, file := range files {
		p.processFile(file)
	}
}

func (p *Processor) processFile(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		p.reporter.FileError(path, errors.WrapFileError(path, err))
		return
	}
	text := string(content)

	switch p.cfg.Mode() {
	case config.ModeListConfigs:
		p.listConfig(path, text)
	case config.ModeListProjects:
		p.listProjects(path, text)
	case config.ModeDryRun:
		p.previewRewrite(path, text)
	default:
		p.rewriteFile(path, text)
	}
}

func (p *Processor) listConfig(path, text string) {
	p.reporter.FileProcessed(false)
	if p.pattern.Matches(text) {
		p.reporter.ConfigFile(path)
	}
}

func (p *Processor) listProjects(path, text string) {
	p.reporter.FileProcessed(false)

	if p.cfg.ListCategorised {
		p.reporter.FileHeading(path)
	}

	entries, warnings := rewrite.ListProjects(text, p.pattern, p.target.Substitutions)
	for _, w := range warnings {
		p.reporter.WarnUnmapped(w)
	}
	for _, entry := range entries {
		p.reporter.Project(entry, p.cfg.ListCategorised, p.cfg.ShowNewPath)
	}
}

func (p *Processor) previewRewrite(path, text string) {
	result := rewrite.Rewrite(text, p.pattern, p.target)
	for _, w := range result.Warnings {
		p.reporter.WarnUnmapped(w)
	}
	p.reporter.FileProcessed(result.Changed(text))
	p.reporter.Preview(path, result.Text)
}

func (p *Processor) rewriteFile(path, text string) {
	result := rewrite.Rewrite(text, p.pattern, p.target)
	for _, w := range result.Warnings {
		p.reporter.WarnUnmapped(w)
	}

	changed := result.Changed(text)
	p.reporter.FileProcessed(changed)
	if !changed {
		return
	}

	backupPath := ""
	if p.cfg.ShouldCreateBackup() {
		bp, err := p.backupManager.BackupFile(path)
		if err != nil {
			p.reporter.FileError(path, err)
			return
		}
		backupPath = bp
	}

	if err := writeFileAtomic(path, result.Text); err != nil {
		if backupPath != "" {
			_ = p.backupManager.RestoreFile(path, backupPath)
		}
		p.reporter.FileError(path, err)
	}
}

// writeFileAtomic replaces the contents of path via a temporary file in the
// same directory. The original file mode is preserved and the temp file is
// removed on any failure, so the target is either fully replaced or left
// untouched.
func writeFileAtomic(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.WrapFileError(path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return errors.NewFileNotWritableError(path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return errors.NewFileNotWritableError(path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.NewFileNotWritableError(path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewFileNotWritableError(path, err)
	}

	if err := os.Chmod(tmpPath, info.Mode()); err != nil {
		return errors.NewFileNotWritableError(path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.NewFileNotWritableError(path, err)
	}

	return nil
}
