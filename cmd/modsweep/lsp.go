package main

import (
	"context"
	"io"
	"os"

	"github.com/modsweep/modsweep/internal/logging"
	"github.com/modsweep/modsweep/lspserver"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// stdinStdout wraps stdin/stdout into the single ReadWriteCloser jsonrpc2
// wants.
type stdinStdout struct {
	io.Reader
	io.Writer
}

func (stdinStdout) Close() error { return nil }

// runLSP runs `modsweep lsp`: a long-running JSON-RPC server over
// stdin/stdout that re-analyzes the workspace on open/save and publishes
// unused-export/unused-dependency diagnostics.
func runLSP() error {
	logger := logging.NewLSP("/tmp/modsweep-lsp.log")
	defer logger.Sync() //nolint:errcheck

	rwc := stdinStdout{Reader: os.Stdin, Writer: os.Stdout}
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))

	srv := lspserver.New(logger)
	srv.DiagnosticCallback = func(uri string, diagnostics []protocol.Diagnostic) {
		if err := conn.Notify(context.Background(), "textDocument/publishDiagnostics", &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: diagnostics,
		}); err != nil {
			logger.Warn("publish diagnostics failed", zap.Error(err))
		}
	}

	handler := protocol.ServerHandler(srv, nil)

	ctx := context.Background()
	conn.Go(ctx, handler)

	<-conn.Done()

	return conn.Err()
}
