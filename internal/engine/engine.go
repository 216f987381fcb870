// Package engine wires walking, classification, reference data, and
// dependency auditing into full scans. It is the single entry point the CLI
// and the tool server share.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/codetriage/codetriage/internal/cache"
	"github.com/codetriage/codetriage/internal/classify"
	"github.com/codetriage/codetriage/internal/cwe"
	"github.com/codetriage/codetriage/internal/npmaudit"
	"github.com/codetriage/codetriage/internal/project"
	"github.com/codetriage/codetriage/internal/prompt"
	"github.com/codetriage/codetriage/internal/types"
	"github.com/codetriage/codetriage/internal/walker"
)

// Config controls scanning behavior including scope, filters, and the
// external integrations.
type Config struct {
	IncludeGlobs string
	ExcludeGlobs string
	MaxBytes     int64
	NoCache      bool

	AuditEnabled    bool
	AuditTimeout    time.Duration
	AuditIncludeDev bool

	CWEBaseURL  string
	CWECacheDir string

	Log *logrus.Logger
}

// Engine runs scans. Safe for concurrent use.
type Engine struct {
	cfg     Config
	cwe     *cwe.Client
	builder *prompt.Builder
	audit   *npmaudit.Runner
	log     *logrus.Logger
}

// New builds an Engine from configuration.
func New(cfg Config) *Engine {
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	var cweOpts []cwe.Option
	cweOpts = append(cweOpts, cwe.WithLogger(log))
	if cfg.CWEBaseURL != "" {
		cweOpts = append(cweOpts, cwe.WithBaseURL(cfg.CWEBaseURL))
	}
	if cfg.CWECacheDir != "" {
		cweOpts = append(cweOpts, cwe.WithDiskCache(cfg.CWECacheDir))
	}
	client := cwe.NewClient(cweOpts...)

	auditOpts := []npmaudit.Option{npmaudit.WithLogger(log)}
	if cfg.AuditTimeout > 0 {
		auditOpts = append(auditOpts, npmaudit.WithTimeout(cfg.AuditTimeout))
	}
	if cfg.AuditIncludeDev {
		auditOpts = append(auditOpts, npmaudit.WithDevDependencies(true))
	}

	return &Engine{
		cfg:     cfg,
		cwe:     client,
		builder: prompt.NewBuilder(client),
		audit:   npmaudit.NewRunner(auditOpts...),
		log:     log,
	}
}

// Builder exposes the engine's prompt builder.
func (e *Engine) Builder() *prompt.Builder { return e.builder }

// CWE exposes the engine's weakness client.
func (e *Engine) CWE() *cwe.Client { return e.cwe }

// Request describes one scan. Exactly one of Path and Files must be set:
// Path walks a directory or single file on disk, Files classifies inline
// content with no filesystem access.
type Request struct {
	Path       string
	Files      []types.ScannedFile
	Categories []types.Category

	// MinSeverity is an advisory floor for whoever consumes the findings
	// produced from this scan's prompts. It is echoed on the result and
	// never filters classification.
	MinSeverity types.Severity
}

// Hotspot is a classified group annotated with the weakness identifiers the
// reviewer should be primed with.
type Hotspot struct {
	types.SecurityHotspot
	RelevantCWEs []string `json:"relevantCwes,omitempty"`
}

// Summary is the aggregate view of one scan.
type Summary struct {
	TotalFiles             int `json:"totalFiles"`
	SecurityRelevantFiles  int `json:"securityRelevantFiles"`
	SkippedFiles           int `json:"skippedFiles"`
	HotspotCategories      int `json:"hotspotCategories"`
	VulnerableDependencies int `json:"vulnerableDependencies"`
}

// Result is the outcome of a full scan.
type Result struct {
	Hotspots       []Hotspot            `json:"hotspots"`
	SkippedFiles   []string             `json:"skippedFiles"`
	ProjectContext types.ProjectContext `json:"projectContext"`
	Dependencies   *npmaudit.Report     `json:"dependencies,omitempty"`
	MinSeverity    types.Severity       `json:"minSeverity,omitempty"`
	Summary        Summary              `json:"summary"`
	ScanDurationMS int64                `json:"scanDurationMs"`
}

// ErrNoInput is returned when a request names neither a path nor inline files.
var ErrNoInput = errors.New("either a path or inline files must be provided")

// ErrAmbiguousInput is returned when a request names both.
var ErrAmbiguousInput = errors.New("path and inline files are mutually exclusive")

// FullScan classifies the requested input, attaches reference identifiers,
// and audits dependencies when scanning a directory that carries a lock
// file. Audit problems degrade to data on the result, never to a failed scan.
func (e *Engine) FullScan(ctx context.Context, req Request) (Result, error) {
	start := time.Now()

	switch {
	case req.Path == "" && len(req.Files) == 0:
		return Result{}, ErrNoInput
	case req.Path != "" && len(req.Files) > 0:
		return Result{}, ErrAmbiguousInput
	}

	files := req.Files
	if req.Path != "" {
		var err error
		files, err = walker.Collect(ctx, walker.Config{
			Root:         req.Path,
			IncludeGlobs: e.cfg.IncludeGlobs,
			ExcludeGlobs: e.cfg.ExcludeGlobs,
			MaxBytes:     e.cfg.MaxBytes,
		})
		if err != nil {
			return Result{}, err
		}
	}

	useCache := req.Path != "" && !e.cfg.NoCache
	hashes := map[string]string{}
	for _, f := range files {
		hashes[f.Path] = cache.HashContent(f.Content)
	}

	// An unchanged tree reuses the last saved classification.
	var analysis types.HotspotAnalysis
	cached := false
	if useCache {
		if db, err := cache.Load(req.Path); err == nil && hashesEqual(db.Entries, hashes) {
			if prev, err := cache.LoadResults(req.Path); err == nil {
				analysis = prev.Analysis
				cached = true
			}
		}
	}
	if !cached {
		analysis = classify.Classify(files)
	}
	if useCache {
		if err := cache.Save(req.Path, cache.DB{Entries: hashes}); err != nil {
			e.log.Debugf("could not persist file hashes: %v", err)
		}
		if !cached {
			if err := cache.SaveResults(req.Path, analysis); err != nil {
				e.log.Debugf("could not persist scan results: %v", err)
			}
		}
	}

	if len(req.Categories) > 0 {
		analysis = classify.FilterHotspots(analysis, req.Categories)
	}

	pc := project.Detect(files)
	if req.Path != "" {
		project.EnrichRepo(&pc, req.Path)
	}

	res := Result{
		Hotspots:       annotate(analysis.Hotspots),
		SkippedFiles:   analysis.SkippedFiles,
		ProjectContext: pc,
		MinSeverity:    req.MinSeverity,
		Summary: Summary{
			TotalFiles:            analysis.TotalFiles,
			SecurityRelevantFiles: analysis.SecurityRelevantFiles,
			SkippedFiles:          len(analysis.SkippedFiles),
			HotspotCategories:     len(analysis.Hotspots),
		},
	}

	// Auditing needs a real project directory and only pays off when a lock
	// file pins the dependency tree.
	if e.cfg.AuditEnabled && req.Path != "" && project.HasLockFile(files) {
		report := e.audit.Run(ctx, req.Path)
		res.Dependencies = &report
		res.Summary.VulnerableDependencies = len(report.Vulnerabilities)
	}

	res.ScanDurationMS = time.Since(start).Milliseconds()
	return res, nil
}

// DependencyScan audits a project directory without classification. A nil
// includeDev keeps the engine's configured setting.
func (e *Engine) DependencyScan(ctx context.Context, dir string, includeDev *bool) (npmaudit.Report, error) {
	if dir == "" {
		return npmaudit.Report{}, ErrNoInput
	}
	dev := e.cfg.AuditIncludeDev
	if includeDev != nil {
		dev = *includeDev
	}
	return e.audit.RunWithDev(ctx, dir, dev), nil
}

func hashesEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func annotate(hotspots []types.SecurityHotspot) []Hotspot {
	out := make([]Hotspot, 0, len(hotspots))
	for _, h := range hotspots {
		out = append(out, Hotspot{
			SecurityHotspot: h,
			RelevantCWEs:    prompt.RelevantCWEs(h.Category),
		})
	}
	return out
}
