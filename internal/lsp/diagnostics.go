package lsp

import (
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"wlang/internal/errors"
	"wlang/internal/parser"
)

// convertParseError turns a parser.ParseError into a one-line LSP
// diagnostic spanning the single character at the failing position,
// enough for an editor to underline something visible.
func convertParseError(perr *parser.ParseError) protocol.Diagnostic {
	line := uint32(0)
	if perr.Position.Line > 0 {
		line = uint32(perr.Position.Line - 1)
	}
	col := uint32(0)
	if perr.Position.Column > 0 {
		col = uint32(perr.Position.Column - 1)
	}
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + 1},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("wlang-parser"),
		Message:  fmt.Sprintf("[%s] %s", perr.Code, perr.Message),
	}
}

// convertExecDiagnostic turns a symbolic-executor finding into an LSP
// warning diagnostic at its triggering statement's position.
func convertExecDiagnostic(d errors.Diagnostic) protocol.Diagnostic {
	line := uint32(0)
	if d.Pos.Line > 0 {
		line = uint32(d.Pos.Line - 1)
	}
	col := uint32(0)
	if d.Pos.Column > 0 {
		col = uint32(d.Pos.Column - 1)
	}
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + 1},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityWarning),
		Source:   ptrString("wlang-symexec"),
		Message:  d.Message,
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }
func ptrString(s string) *string                                            { return &s }
func ptrBool(b bool) *bool                                                  { return &b }
func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
