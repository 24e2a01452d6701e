package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Reporter formats InterpErrors and Diagnostics with Rust-like styling,
// adapted from the teacher compiler's ErrorReporter: a bold red header
// line naming the code, then a dim "--> file:line:col" location line.
type Reporter struct {
	filename string
	source   string
	lines    []string
}

// NewReporter creates a Reporter for a single source file.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{
		filename: filename,
		source:   source,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError renders a halting InterpError.
func (r *Reporter) FormatError(err *InterpError) string {
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", red(fmt.Sprintf("error[%s]", err.Code)), bold(err.Message))
	fmt.Fprintf(&b, "  %s %s:%d:%d\n", dim("-->"), r.filename, err.Pos.Line, err.Pos.Column)
	r.writeSourceLine(&b, err.Pos.Line)
	return b.String()
}

// FormatDiagnostic renders a non-fatal symbolic-executor finding.
func (r *Reporter) FormatDiagnostic(d Diagnostic) string {
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", yellow(fmt.Sprintf("warning[%s]", d.Code)), d.Message)
	fmt.Fprintf(&b, "  %s %s:%d:%d\n", dim("-->"), r.filename, d.Pos.Line, d.Pos.Column)
	r.writeSourceLine(&b, d.Pos.Line)
	return b.String()
}

func (r *Reporter) writeSourceLine(b *strings.Builder, line int) {
	dim := color.New(color.Faint).SprintFunc()
	if line <= 0 || line > len(r.lines) {
		return
	}
	fmt.Fprintf(b, "   %s %s\n", dim("│"), r.lines[line-1])
}
