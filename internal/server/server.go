// Package server exposes scans as JSON-RPC 2.0 tools over HTTP so agent
// frontends can drive codetriage without the CLI.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/codetriage/codetriage/internal/engine"
	"github.com/codetriage/codetriage/internal/registry"
	"github.com/codetriage/codetriage/internal/types"
)

// Handler processes a JSON-RPC request and returns a response.
type Handler func(ctx context.Context, id any, rawParams json.RawMessage) *JSONRPCResponse

// Config configures the tool server.
type Config struct {
	Port            int
	Host            string        // bind address (default "" = all interfaces)
	ShutdownTimeout time.Duration // graceful shutdown timeout (0 = immediate)
}

// Server is an HTTP server with JSON-RPC 2.0 dispatch over the scan engine.
type Server struct {
	port            int
	host            string
	shutdownTimeout time.Duration
	engine          *engine.Engine
	log             *logrus.Logger
	handlers        map[string]Handler
	mu              sync.RWMutex
	srv             *http.Server
}

// NewServer creates a tool server over the given engine.
func NewServer(cfg Config, eng *engine.Engine, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Server{
		port:            cfg.Port,
		host:            cfg.Host,
		shutdownTimeout: cfg.ShutdownTimeout,
		engine:          eng,
		log:             log,
		handlers:        make(map[string]Handler),
	}
	s.RegisterHandler("security_scan", s.handleSecurityScan)
	s.RegisterHandler("dependency_scan", s.handleDependencyScan)
	s.RegisterHandler("tools/list", s.handleToolsList)
	return s
}

// RegisterHandler registers a JSON-RPC method handler.
func (s *Server) RegisterHandler(method string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = h
}

// Port returns the port the server listens on (the actual port after Start
// resolves conflicts).
func (s *Server) Port() int {
	return s.port
}

// Start begins serving HTTP. It blocks until the context is cancelled or an
// error occurs.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("POST /", s.handleJSONRPC)

	s.srv = &http.Server{
		Handler:     mux,
		IdleTimeout: 120 * time.Second,
	}

	// Try specified port, then auto-increment up to 10 times on conflict.
	var ln net.Listener
	var listenErr error
	actualPort := s.port
	for attempt := 0; attempt < 10; attempt++ {
		addr := fmt.Sprintf("%s:%d", s.host, actualPort)
		ln, listenErr = net.Listen("tcp", addr)
		if listenErr == nil {
			break
		}
		if !isAddrInUse(listenErr) {
			return fmt.Errorf("listen on %s: %w", addr, listenErr)
		}
		actualPort++
	}
	if listenErr != nil {
		return fmt.Errorf("all ports %d-%d in use: %w", s.port, actualPort, listenErr)
	}
	s.port = actualPort
	s.srv.Addr = fmt.Sprintf("%s:%d", s.host, actualPort)
	s.log.Infof("tool server listening on %s", s.srv.Addr)

	go func() {
		<-ctx.Done()
		shutdownCtx := context.Background()
		if s.shutdownTimeout > 0 {
			var cancel context.CancelFunc
			shutdownCtx, cancel = context.WithTimeout(shutdownCtx, s.shutdownTimeout)
			defer cancel()
		}
		s.srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
}

func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	var req JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusOK, NewErrorResponse(nil, ErrCodeParseError, "parse error: "+err.Error()))
		return
	}

	if req.JSONRPC != "2.0" {
		writeJSON(w, http.StatusOK, NewErrorResponse(req.ID, ErrCodeInvalidRequest, "jsonrpc must be \"2.0\""))
		return
	}

	s.mu.RLock()
	h, ok := s.handlers[req.Method]
	s.mu.RUnlock()
	if !ok {
		writeJSON(w, http.StatusOK, NewErrorResponse(req.ID, ErrCodeMethodNotFound, "method not found: "+req.Method))
		return
	}
	writeJSON(w, http.StatusOK, h(r.Context(), req.ID, req.Params))
}

type inlineFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type scanParams struct {
	Path        string       `json:"path,omitempty"`
	Files       []inlineFile `json:"files,omitempty"`
	Categories  []string     `json:"categories,omitempty"`
	MinSeverity string       `json:"minSeverity,omitempty"`
}

func (s *Server) handleSecurityScan(ctx context.Context, id any, rawParams json.RawMessage) *JSONRPCResponse {
	var params scanParams
	if len(rawParams) > 0 {
		if err := json.Unmarshal(rawParams, &params); err != nil {
			return NewErrorResponse(id, ErrCodeInvalidParams, "invalid params: "+err.Error())
		}
	}

	categories, err := parseCategories(params.Categories)
	if err != nil {
		return NewErrorResponse(id, ErrCodeInvalidParams, err.Error())
	}
	minSeverity, err := parseMinSeverity(params.MinSeverity)
	if err != nil {
		return NewErrorResponse(id, ErrCodeInvalidParams, err.Error())
	}

	req := engine.Request{
		Path:        params.Path,
		Files:       convertInline(params.Files),
		Categories:  categories,
		MinSeverity: minSeverity,
	}
	res, err := s.engine.FullScan(ctx, req)
	if err != nil {
		if errors.Is(err, engine.ErrNoInput) || errors.Is(err, engine.ErrAmbiguousInput) {
			return NewErrorResponse(id, ErrCodeInvalidParams, err.Error())
		}
		s.log.Errorf("security_scan failed: %v", err)
		return NewErrorResponse(id, ErrCodeInternal, err.Error())
	}
	return NewResultResponse(id, res)
}

type depScanParams struct {
	Path       string `json:"path"`
	IncludeDev *bool  `json:"includeDev,omitempty"`
}

func (s *Server) handleDependencyScan(ctx context.Context, id any, rawParams json.RawMessage) *JSONRPCResponse {
	var params depScanParams
	if len(rawParams) > 0 {
		if err := json.Unmarshal(rawParams, &params); err != nil {
			return NewErrorResponse(id, ErrCodeInvalidParams, "invalid params: "+err.Error())
		}
	}
	report, err := s.engine.DependencyScan(ctx, params.Path, params.IncludeDev)
	if err != nil {
		return NewErrorResponse(id, ErrCodeInvalidParams, err.Error())
	}
	return NewResultResponse(id, report)
}

// toolDescriptor describes one callable method for discovery.
type toolDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Params      any    `json:"params"`
}

func (s *Server) handleToolsList(ctx context.Context, id any, rawParams json.RawMessage) *JSONRPCResponse {
	tools := []toolDescriptor{
		{
			Name:        "security_scan",
			Description: "Classify a project or inline files into prioritized security hotspots, with dependency audit when a lock file is present.",
			Params: map[string]string{
				"path":        "project directory or single file to scan (exclusive with files)",
				"files":       "inline files [{path, content}] to classify (exclusive with path)",
				"categories":  "optional category filter: " + strings.Join(registry.IDs(), ", "),
				"minSeverity": "advisory severity floor echoed on the result for finding consumers",
			},
		},
		{
			Name:        "dependency_scan",
			Description: "Run npm audit against a project directory and return normalized vulnerabilities.",
			Params: map[string]string{
				"path":       "project directory containing package.json",
				"includeDev": "audit devDependencies too (default false)",
			},
		},
	}
	return NewResultResponse(id, map[string]any{"tools": tools})
}

// parseMinSeverity validates the advisory severity floor. Empty means no
// floor.
func parseMinSeverity(raw string) (types.Severity, error) {
	if raw == "" {
		return "", nil
	}
	sev := types.Severity(strings.ToLower(strings.TrimSpace(raw)))
	switch sev {
	case types.SevCritical, types.SevHigh, types.SevMedium, types.SevLow, types.SevInfo:
		return sev, nil
	}
	return "", fmt.Errorf("unknown severity %q (known: critical, high, medium, low, info)", raw)
}

func parseCategories(ids []string) ([]types.Category, error) {
	var out []types.Category
	for _, raw := range ids {
		c := types.Category(strings.ToLower(strings.TrimSpace(raw)))
		if _, ok := registry.Lookup(c); !ok {
			return nil, fmt.Errorf("unknown category %q (known: %s)", raw, strings.Join(registry.IDs(), ", "))
		}
		out = append(out, c)
	}
	return out, nil
}

func convertInline(files []inlineFile) []types.ScannedFile {
	out := make([]types.ScannedFile, 0, len(files))
	for _, f := range files {
		out = append(out, types.ScannedFile{
			Path:      filepath.ToSlash(f.Path),
			Content:   f.Content,
			Size:      len(f.Content),
			Extension: strings.ToLower(filepath.Ext(f.Path)),
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// isAddrInUse returns true if the error indicates the address is already in use.
func isAddrInUse(err error) bool {
	var errno syscall.Errno
	return errors.As(err, &errno) && errno == syscall.EADDRINUSE
}
