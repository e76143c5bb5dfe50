// Package report provides output and diagnostics handling for urimap.
// Listing and preview output goes to a primary stream and warnings and
// per-file errors go to a separate diagnostics stream, keeping the two
// separable for scripting. The reporter also tracks aggregate statistics
// for an end-of-run summary.
package report

import (
	"fmt"
	"io"

	"urimap/internal/rewrite"
)

// Summary provides aggregate statistics for an entire run.
type Summary struct {
	FilesProcessed int
	FilesChanged   int
	ProjectsFound  int
	Warnings       int
	Errors         int
}

// Reporter writes listing output and diagnostics to their respective streams
// while maintaining run statistics. It is not safe for concurrent use;
// processing is sequential by design.
type Reporter struct {
	out     io.Writer
	errOut  io.Writer
	summary Summary
}

// New creates a Reporter writing primary output to out and diagnostics to
// errOut.
func New(out, errOut io.Writer) *Reporter {
	return &Reporter{
		out:    out,
		errOut: errOut,
	}
}

// ConfigFile prints the path of a file containing at least one matching URI,
// used by the list-configs mode.
func (r *Reporter) ConfigFile(path string) {
	fmt.Fprintln(r.out, path)
}

// FileHeading prints a categorised listing heading for a file.
func (r *Reporter) FileHeading(path string) {
	fmt.Fprintf(r.out, "%s:\n", path)
}

// Project prints one listed project. Unmapped projects are skipped here;
// their warnings are emitted separately. When categorised, the line is
// indented under its file heading. A non-empty delimiter appends the
// project's new path.
func (r *Reporter) Project(entry rewrite.ProjectEntry, categorised bool, delimiter string) {
	r.summary.ProjectsFound++
	if !entry.Mapped {
		return
	}

	if categorised {
		fmt.Fprint(r.out, "\t")
	}
	if delimiter != "" {
		fmt.Fprintf(r.out, "%s%s%s\n", entry.Name, delimiter, entry.NewPath)
	} else {
		fmt.Fprintln(r.out, entry.Name)
	}
}

// Preview prints the would-be contents of a file for the dry-run mode.
func (r *Reporter) Preview(path, text string) {
	fmt.Fprintf(r.out, "In %s the following would be the new contents:\n", path)
	fmt.Fprintln(r.out, text)
}

// WarnUnmapped emits a diagnostic for a matched project that has no
// substitution entry, once per occurrence.
func (r *Reporter) WarnUnmapped(project string) {
	r.summary.Warnings++
	fmt.Fprintf(r.errOut, "WARNING: project %q has no replacement path and will not be rewritten\n", project)
}

// FileError reports a per-file failure on the diagnostics stream. The run
// continues with the next file.
func (r *Reporter) FileError(path string, err error) {
	r.summary.Errors++
	fmt.Fprintf(r.errOut, "ERROR: %s: %s\n", path, err)
}

// FileProcessed records that a file was read and examined, and whether the
// rewrite changed it.
func (r *Reporter) FileProcessed(changed bool) {
	r.summary.FilesProcessed++
	if changed {
		r.summary.FilesChanged++
	}
}

// Summary returns a copy of the accumulated statistics.
func (r *Reporter) Summary() Summary {
	return r.summary
}

// WriteSummary prints the aggregate statistics to the diagnostics stream,
// keeping the primary stream clean for listing output.
func (r *Reporter) WriteSummary() {
	fmt.Fprintf(r.errOut, "\nFiles processed: %d\n", r.summary.FilesProcessed)
	fmt.Fprintf(r.errOut, "Files changed: %d\n", r.summary.FilesChanged)
	fmt.Fprintf(r.errOut, "Projects found: %d\n", r.summary.ProjectsFound)
	fmt.Fprintf(r.errOut, "Warnings: %d\n", r.summary.Warnings)
	fmt.Fprintf(r.errOut, "Errors: %d\n", r.summary.Errors)
}
