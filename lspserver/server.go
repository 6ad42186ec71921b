// Package lspserver implements modsweep's `lsp` subcommand: a long-running
// mode that re-runs the full loader → analyzer → linker pipeline on file
// open/save and republishes unused-export/unused-dependency diagnostics
// over textDocument/publishDiagnostics. Findings here are inherently
// cross-module (the link phase only runs after every module in the
// project has been analyzed), so this server re-runs the whole-project
// pipeline on every triggering notification and republishes diagnostics
// for every file the last run touched.
package lspserver

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/modsweep/modsweep/ignorefile"
	"github.com/modsweep/modsweep/linker"
	"github.com/modsweep/modsweep/loader"
	"github.com/modsweep/modsweep/manifest"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"
)

// Server implements protocol.Server for modsweep's project-wide analysis.
type Server struct {
	logger *zap.Logger

	mu   sync.Mutex
	root string
	open map[string]bool

	// lastDiagnostics is the set of URIs the previous run published
	// diagnostics for; a re-run that stops flagging a file still needs to
	// publish an empty diagnostic list for it, or the editor keeps showing
	// stale squiggles.
	lastDiagnostics map[string]bool

	DiagnosticCallback func(uri string, diagnostics []protocol.Diagnostic)
}

// New creates an lspserver.Server. logger is the NewLSP logger from
// internal/logging, since stdout is reserved for the JSON-RPC transport.
func New(logger *zap.Logger) *Server {
	return &Server{
		logger:          logger,
		open:            make(map[string]bool),
		lastDiagnostics: make(map[string]bool),
	}
}

// Initialize handles the initialize request and records the workspace root
// the analyzer pipeline will run against.
func (s *Server) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	s.mu.Lock()

	if params.RootURI != "" {
		if p, err := uri.URI(params.RootURI).Filename(); err == nil {
			s.root = p
		}
	}

	s.mu.Unlock()

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    "modsweep-lsp",
			Version: "0.1.0",
		},
	}, nil
}

// DidOpen handles textDocument/didOpen: re-run the project-wide pipeline
// and republish every file's diagnostics.
func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	u := string(params.TextDocument.URI)

	s.mu.Lock()
	s.open[u] = true
	s.mu.Unlock()

	return s.reanalyze(ctx)
}

// DidSave handles textDocument/didSave the same way: a save is the event
// that should trigger a re-run.
func (s *Server) DidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error {
	return s.reanalyze(ctx)
}

// DidClose handles textDocument/didClose; it doesn't trigger a re-run,
// since closing an editor tab changes nothing about the project on disk.
func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	u := string(params.TextDocument.URI)

	s.mu.Lock()
	delete(s.open, u)
	s.mu.Unlock()

	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	// Full-sync edits aren't written to disk until save; re-analyzing here
	// would just re-read the unmodified file, so this is a no-op until
	// DidSave fires.
	return nil
}

// reanalyze runs loader → linker over s.root and republishes diagnostics
// for every file touched by this run or the previous one.
func (s *Server) reanalyze(ctx context.Context) error {
	s.mu.Lock()
	root := s.root
	s.mu.Unlock()

	if root == "" {
		return nil
	}

	matcher, err := ignorefile.Load(filepath.Join(root, ".customsignore"))
	if err != nil {
		s.logger.Warn("ignorefile load failed", zap.Error(err))
		matcher = &ignorefile.Matcher{}
	}

	graph, err := loader.Load(ctx, root, matcher, 0)
	if err != nil {
		s.logger.Warn("loader failed", zap.Error(err))
		return nil
	}

	deps, err := manifest.ReadDependencies(root)
	if err != nil {
		s.logger.Warn("reading package.json failed", zap.Error(err))
	}

	rep, linkErr := linker.Link(graph.Modules, graph.Resolver, deps)
	if linkErr != nil {
		s.logger.Debug("linker diagnostics", zap.Error(linkErr))
	}

	byFile := make(map[string][]protocol.Diagnostic)

	for _, f := range rep.Findings {
		if f.Kind == linker.FindingUnusedDependency {
			continue
		}

		severity := protocol.DiagnosticSeverityWarning
		message := "export " + f.Name + " is never imported by another module"

		if f.Kind == linker.FindingLocallyUsedOnlyExport {
			severity = protocol.DiagnosticSeverityHint
			message = "export " + f.Name + " is used locally but never imported by another module"
		}

		byFile[f.Path] = append(byFile[f.Path], protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: uint32(f.Loc.Start.Line - 1), Character: uint32(f.Loc.Start.Column - 1)},
				End:   protocol.Position{Line: uint32(f.Loc.End.Line - 1), Character: uint32(f.Loc.End.Column - 1)},
			},
			Severity: severity,
			Message:  message,
			Source:   "modsweep",
		})
	}

	s.mu.Lock()
	stale := s.lastDiagnostics
	s.lastDiagnostics = make(map[string]bool, len(byFile))
	s.mu.Unlock()

	for path := range byFile {
		stale[path] = true
	}

	for path := range stale {
		u := string(uri.File(path))
		diags := byFile[path]

		s.mu.Lock()
		if len(diags) > 0 {
			s.lastDiagnostics[path] = true
		}
		s.mu.Unlock()

		s.publish(u, diags)
	}

	return nil
}

func (s *Server) publish(uri string, diags []protocol.Diagnostic) {
	if s.DiagnosticCallback == nil {
		return
	}

	if diags == nil {
		diags = []protocol.Diagnostic{}
	}

	s.DiagnosticCallback(uri, diags)
}
