// Package pattern builds the composite regular expression that recognizes
// remote URI lines in .git/config and .gitmodules files. The expression is
// assembled from named sub-expressions plus two caller-supplied fragments
// (hostname and path), so that every accepted URI shape shares a single
// project-name capture.
package pattern

import (
	"regexp"

	"urimap/internal/errors"
)

// Fixed sub-expressions of the composite pattern. The key capture keeps the
// literal "url = " prefix verbatim so rewrites can reuse it byte-for-byte.
// Trailing whitespace is confined to the matched line; the pattern never
// spans line boundaries.
const (
	keyExpr      = `(?P<key>[ \t]*url[ \t]*=[ \t]*)`
	schemeExpr   = `(?:(?:file|ssh|git|http|https)://)?`
	userExpr     = `(?:[a-z_][a-z0-9_-]*[$]?@)??`
	relativeExpr = `\.\.`
	projectExpr  = `(?P<project>[^.\n]+)`
	suffixExpr   = `(?:\.git)??[ \t\r]*$`
)

// Match records one recognized URI line. Start and End delimit the whole
// matched span within the searched text; Key holds the literal prefix up to
// and including the '=' and surrounding whitespace, and Project holds the
// captured project path (which may contain internal slashes).
type Match struct {
	Start   int
	End     int
	Key     string
	Project string
}

// Pattern is a compiled composite URI pattern. It is immutable and safe for
// concurrent use; callers pass it explicitly to the rewrite engine rather
// than sharing it through package state.
type Pattern struct {
	re         *regexp.Regexp
	keyIdx     int
	projectIdx int
}

// Build assembles and compiles the composite pattern from the hostname and
// path fragments of a search specification. Both fragments are compiled on
// their own first so an invalid fragment is reported precisely instead of
// surfacing as an opaque composite failure. The fragments are spliced in
// verbatim, giving callers full regex power at the splice points; they must
// not contain anchors.
func Build(hostname, path string) (*Pattern, error) {
	if _, err := regexp.Compile(hostname); err != nil {
		return nil, errors.NewPatternError("search hostname fragment is not a valid regex", err)
	}
	if _, err := regexp.Compile(path); err != nil {
		return nil, errors.NewPatternError("search path fragment is not a valid regex", err)
	}

	re, err := regexp.Compile(compose(hostname, path))
	if err != nil {
		return nil, errors.NewPatternError("composite URI pattern failed to compile", err)
	}

	return &Pattern{
		re:         re,
		keyIdx:     re.SubexpIndex("key"),
		projectIdx: re.SubexpIndex("project"),
	}, nil
}

// compose concatenates the named sub-expressions around the supplied
// fragments. Per line the result matches either a protocol-qualified or
// SCP-style URI (optional scheme, optional non-greedy user, hostname,
// optional colon, path) or the relative-parent marker "..", each followed by
// one or more slashes, the project capture and an optional ".git" suffix.
func compose(hostname, path string) string {
	uri := schemeExpr + userExpr + group(hostname) + ":?" + group(path)
	return "(?m)^" + keyExpr + group(uri+"|"+relativeExpr) + "/+" + projectExpr + suffixExpr
}

func group(expr string) string {
	return "(?:" + expr + ")"
}

// Matches reports whether text contains at least one recognized URI line.
func (p *Pattern) Matches(text string) bool {
	return p.re.MatchString(text)
}

// Find returns every non-overlapping match in text, in order of appearance.
func (p *Pattern) Find(text string) []Match {
	idx := p.re.FindAllStringSubmatchIndex(text, -1)
	matches := make([]Match, 0, len(idx))
	for _, m := range idx {
		matches = append(matches, Match{
			Start:   m[0],
			End:     m[1],
			Key:     text[m[2*p.keyIdx]:m[2*p.keyIdx+1]],
			Project: text[m[2*p.projectIdx]:m[2*p.projectIdx+1]],
		})
	}
	return matches
}

// String returns the assembled expression, mainly for debugging output.
func (p *Pattern) String() string {
	return p.re.String()
}
