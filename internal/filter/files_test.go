package filter

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"urimap/internal/config"
)

// makeRepoTree creates a directory layout resembling two checked-out git
// repositories, one with a submodule, and returns its root.
func makeRepoTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := []string{
		"repoA/.git/config",
		"repoA/.git/modules/sub/config",
		"repoA/.gitmodules",
		"repoB/.git/config",
		"repoB/README.md",
		"repoB/config",
		"notes/config.txt",
	}
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		if err := os.WriteFile(path, []byte("content\n"), 0o644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	return root
}

func discover(t *testing.T, cfg *config.Config) []string {
	t.Helper()
	files, err := NewDiscovery(cfg).Discover()
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	sort.Strings(files)
	return files
}

func relAll(t *testing.T, root string, files []string) []string {
	t.Helper()
	rels := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil {
			t.Fatalf("rel failed: %v", err)
		}
		rels[i] = filepath.ToSlash(rel)
	}
	return rels
}

func assertEqual(t *testing.T, got, expected []string) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("discovered %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("file %d = %q, expected %q", i, got[i], expected[i])
		}
	}
}

func TestDiscoverGitConfigsOnly(t *testing.T) {
	root := makeRepoTree(t)
	cfg := &config.Config{Targets: []string{root}}

	got := relAll(t, root, discover(t, cfg))
	assertEqual(t, got, []string{
		"repoA/.git/config",
		"repoA/.git/modules/sub/config",
		"repoB/.git/config",
	})
}

func TestDiscoverWithGitModules(t *testing.T) {
	root := makeRepoTree(t)
	cfg := &config.Config{Targets: []string{root}, Modules: true}

	got := relAll(t, root, discover(t, cfg))
	assertEqual(t, got, []string{
		"repoA/.git/config",
		"repoA/.git/modules/sub/config",
		"repoA/.gitmodules",
		"repoB/.git/config",
	})
}

func TestDiscoverGitModulesOnly(t *testing.T) {
	root := makeRepoTree(t)
	cfg := &config.Config{Targets: []string{root}, ModulesOnly: true}

	got := relAll(t, root, discover(t, cfg))
	assertEqual(t, got, []string{"repoA/.gitmodules"})
}

func TestDiscoverExplicitFileBypassesFilters(t *testing.T) {
	root := makeRepoTree(t)
	target := filepath.Join(root, "notes", "config.txt")
	cfg := &config.Config{Targets: []string{target}}

	files := discover(t, cfg)
	if len(files) != 1 || files[0] != target {
		t.Errorf("explicit file target should pass through, got %v", files)
	}
}

func TestDiscoverMixedTargets(t *testing.T) {
	root := makeRepoTree(t)
	explicit := filepath.Join(root, "repoB", "README.md")
	cfg := &config.Config{Targets: []string{filepath.Join(root, "repoA"), explicit}}

	got := relAll(t, root, discover(t, cfg))
	assertEqual(t, got, []string{
		"repoA/.git/config",
		"repoA/.git/modules/sub/config",
		"repoB/README.md",
	})
}

func TestDiscoverMissingTargetPassesThrough(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent")
	cfg := &config.Config{Targets: []string{missing}}

	files, err := NewDiscovery(cfg).Discover()
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(files) != 1 || files[0] != missing {
		t.Errorf("a missing target should pass through for per-file reporting, got %v", files)
	}
}

func TestCandidateFilters(t *testing.T) {
	tests := []struct {
		name     string
		filter   FileFilter
		path     string
		expected bool
	}{
		{"git config", gitConfigFilter(), "/work/repo/.git/config", true},
		{"config outside .git", gitConfigFilter(), "/work/repo/config", false},
		{"nested module config", moduleConfigFilter(), "/work/repo/.git/modules/a/b/config", true},
		{"module dir without config", moduleConfigFilter(), "/work/repo/.git/modules/a/HEAD", false},
		{"gitmodules", gitModulesFilter(), "/work/repo/.gitmodules", true},
		{"gitmodules lookalike", gitModulesFilter(), "/work/repo/.gitmodules.bak", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter(filepath.FromSlash(tt.path)); got != tt.expected {
				t.Errorf("filter(%q) = %v, expected %v", tt.path, got, tt.expected)
			}
		})
	}
}
