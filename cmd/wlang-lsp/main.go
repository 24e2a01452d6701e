// SPDX-License-Identifier: Apache-2.0

// Command wlang-lsp is the language server entry point, adapted from
// the teacher's cmd/kanso-lsp: same glsp server wiring, pointed at
// wlang's diagnostics-only Handler instead of the teacher's contract
// language handler.
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"wlang/internal/lsp"
)

const lsName = "wlang"

func main() {
	commonlog.Configure(1, nil)

	h := lsp.NewHandler()

	handler := protocol.Handler{
		Initialize:            h.Initialize,
		Initialized:           h.Initialized,
		Shutdown:              h.Shutdown,
		TextDocumentDidOpen:   h.TextDocumentDidOpen,
		TextDocumentDidChange: h.TextDocumentDidChange,
		TextDocumentDidClose:  h.TextDocumentDidClose,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting wlang LSP server...")
	if err := s.RunStdio(); err != nil {
		log.Println("Error starting wlang LSP server:", err)
		os.Exit(1)
	}
}
