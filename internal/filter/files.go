// Package filter provides discovery of candidate git configuration files.
// It walks target directories collecting .git/config files, submodule
// configs under .git/modules, and optionally .gitmodules files, using a
// composable predicate system for the candidate rules.
package filter

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"urimap/internal/config"
	"urimap/internal/errors"
)

// FileFilter is a predicate that decides whether a path is a candidate file.
// Discovery accepts a path when any one of its filters matches, so each
// filter recognizes one kind of candidate.
type FileFilter func(path string) bool

// Discovery handles recursive directory traversal with candidate filtering.
// Explicit file targets bypass the filters entirely: a user who names a file
// directly is trusted to know it is a git config or .gitmodules file.
type Discovery struct {
	config  *config.Config
	filters []FileFilter
}

// NewDiscovery creates a Discovery with filters matching the configured
// target selection (.git/config only, plus .gitmodules, or .gitmodules only).
func NewDiscovery(cfg *config.Config) *Discovery {
	return &Discovery{
		config:  cfg,
		filters: buildFilters(cfg),
	}
}

// Discover expands the configured targets into the list of files to process,
// in target order with directory contents in lexical walk order. Unreadable
// subtrees are skipped rather than aborting the walk. A target that cannot
// be inspected is passed through as-is so the processor reports it as a
// per-file failure and the run continues with the remaining targets.
func (d *Discovery) Discover() ([]string, error) {
	var files []string

	for _, target := range d.config.Targets {
		info, err := os.Stat(target)
		if err != nil || !info.IsDir() {
			files = append(files, target)
			continue
		}

		err = filepath.WalkDir(target, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				if os.IsPermission(err) {
					return nil
				}
				return errors.WrapFileError(path, err)
			}
			if entry.IsDir() {
				return nil
			}
			if d.isCandidate(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func (d *Discovery) isCandidate(path string) bool {
	for _, filter := range d.filters {
		if filter(path) {
			return true
		}
	}
	return false
}

func buildFilters(cfg *config.Config) []FileFilter {
	if cfg.ModulesOnly {
		return []FileFilter{gitModulesFilter()}
	}

	filters := []FileFilter{gitConfigFilter(), moduleConfigFilter()}
	if cfg.IncludeGitModules() {
		filters = append(filters, gitModulesFilter())
	}
	return filters
}

// gitConfigFilter matches the main config file of a git repository,
// i.e. a file named "config" directly inside a ".git" directory.
func gitConfigFilter() FileFilter {
	return func(path string) bool {
		return filepath.Base(path) == "config" &&
			filepath.Base(filepath.Dir(path)) == ".git"
	}
}

// moduleConfigFilter matches submodule config files, which live at any depth
// under a ".git/modules" directory.
func moduleConfigFilter() FileFilter {
	return func(path string) bool {
		if filepath.Base(path) != "config" {
			return false
		}
		return strings.Contains(filepath.ToSlash(path), "/.git/modules/")
	}
}

// gitModulesFilter matches .gitmodules files anywhere in the tree.
func gitModulesFilter() FileFilter {
	return func(path string) bool {
		return filepath.Base(path) == ".gitmodules"
	}
}
