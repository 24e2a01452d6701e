// Package lsp is a diagnostics-only language server for W, adapted
// from the teacher's internal/lsp handler: the same glsp wiring and
// didOpen/didChange-triggered diagnostic publishing (re-reading the
// buffer from disk on each event, exactly as the teacher's updateAST
// does), re-pointed at wlang's parser and symbolic executor instead of
// the teacher's contract-language parser. There is no W analogue of
// the teacher's completion or semantic-token providers (those were
// specific to a typed, struct/function-shaped contract language), so
// Initialize only advertises TextDocumentSync.
package lsp

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"wlang/internal/parser"
	"wlang/internal/symexec"
	"wlang/internal/symstate"
)

// Handler implements the LSP methods wlang-lsp advertises. It carries
// no document state of its own; every event re-parses the file fresh.
type Handler struct{}

// NewHandler returns a ready-to-wire Handler.
func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("wlang LSP initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("wlang LSP shutdown")
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	return h.analyze(ctx, params.TextDocument.URI)
}

func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	return h.analyze(ctx, params.TextDocument.URI)
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

// analyze reads the document off disk, parses it, and, if parsing
// succeeds, runs the symbolic executor over it; either stage's
// findings become the published diagnostics for uri.
func (h *Handler) analyze(ctx *glsp.Context, uri protocol.DocumentUri) error {
	path, err := uriToPath(uri)
	if err != nil {
		return fmt.Errorf("converting URI %s: %w", uri, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	stmt, perr := parser.ParseString(path, string(content))
	if perr != nil {
		pe, ok := perr.(*parser.ParseError)
		if !ok {
			pe = &parser.ParseError{Message: perr.Error()}
		}
		sendDiagnostics(ctx, uri, []protocol.Diagnostic{convertParseError(pe)})
		return nil
	}

	ex := symexec.New(nil)
	ex.Run(stmt, symstate.New())

	diagnostics := make([]protocol.Diagnostic, 0, len(ex.Diagnostics))
	for _, d := range ex.Diagnostics {
		diagnostics = append(diagnostics, convertExecDiagnostic(d))
	}
	sendDiagnostics(ctx, uri, diagnostics)
	return nil
}

func sendDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func uriToPath(rawURI protocol.DocumentUri) (string, error) {
	u, err := url.Parse(string(rawURI))
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}
	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}
