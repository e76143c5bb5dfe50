// Package rewrite implements the URI rewrite engine. Given a file's text, a
// compiled composite pattern and a replacement target, it substitutes each
// matched project path with a freshly formatted URI while copying every
// other byte of the input through unchanged. The engine never touches the
// filesystem; callers decide what to do with the result.
package rewrite

import (
	"strings"

	"urimap/internal/pattern"
	"urimap/internal/rules"
)

// Target holds the resolved replacement components for a run: the final
// hostname, protocol and username after command-line overrides have been
// applied on top of the rules file, plus the substitution table. An empty
// Username means no "user@" part is emitted. For the relative protocol the
// Hostname is typically a prefix like "../..".
type Target struct {
	Hostname      string
	Username      string
	Protocol      rules.Protocol
	Substitutions map[string]string
}

// Result is the outcome of rewriting one file's text. Warnings lists the
// project names that matched but had no substitution entry, one element per
// occurrence, in order of appearance; those spans are preserved verbatim in
// Text.
type Result struct {
	Text     string
	Warnings []string
}

// Changed reports whether the rewritten text differs from the input.
func (r Result) Changed(original string) bool {
	return r.Text != original
}

// Rewrite substitutes every matched URI in text according to the target.
// For each non-overlapping match, in order of appearance, the project name
// is looked up in the substitution table: if present, the whole matched span
// is replaced by the original key text followed by a newly formatted URI; if
// absent, the span is copied through untouched and the project is recorded
// as a warning. Text outside matched spans, including line endings, is never
// modified.
func Rewrite(text string, p *pattern.Pattern, t Target) Result {
	matches := p.Find(text)
	if len(matches) == 0 {
		return Result{Text: text}
	}

	var b strings.Builder
	b.Grow(len(text))

	var warnings []string
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m.Start])

		newPath, ok := t.Substitutions[m.Project]
		if ok {
			b.WriteString(m.Key)
			b.WriteString(FormatURI(t.Protocol, t.Hostname, t.Username, newPath))
		} else {
			warnings = append(warnings, m.Project)
			b.WriteString(text[m.Start:m.End])
		}
		last = m.End
	}
	b.WriteString(text[last:])

	return Result{Text: b.String(), Warnings: warnings}
}

// FormatURI renders a replacement URI from its components. The ssh-colon
// protocol produces SCP-style "user@host:path" URIs, relative produces a
// bare "prefix/path" reference with no scheme or username, and every other
// protocol produces "proto://user@host/path".
func FormatURI(proto rules.Protocol, host, user, path string) string {
	userPart := ""
	if user != "" {
		userPart = user + "@"
	}

	switch proto {
	case rules.ProtocolSSHColon:
		return userPart + host + ":" + path
	case rules.ProtocolRelative:
		return host + "/" + path
	default:
		return string(proto) + "://" + userPart + host + "/" + path
	}
}

// ProjectEntry is one listed project: its name as captured from the file and
// the path it would be rewritten to. Mapped is false when the substitution
// table has no entry for the project, in which case NewPath is empty.
type ProjectEntry struct {
	Name    string
	NewPath string
	Mapped  bool
}

// ListProjects reports every matched project in text, in file order, without
// rewriting anything. The returned warnings list the projects that have no
// substitution entry, one element per occurrence, mirroring exactly the
// warnings a Rewrite pass over the same text would emit.
func ListProjects(text string, p *pattern.Pattern, subst map[string]string) ([]ProjectEntry, []string) {
	matches := p.Find(text)
	if len(matches) == 0 {
		return nil, nil
	}

	entries := make([]ProjectEntry, 0, len(matches))
	var warnings []string
	for _, m := range matches {
		newPath, ok := subst[m.Project]
		if !ok {
			warnings = append(warnings, m.Project)
		}
		entries = append(entries, ProjectEntry{
			Name:    m.Project,
			NewPath: newPath,
			Mapped:  ok,
		})
	}
	return entries, warnings
}
