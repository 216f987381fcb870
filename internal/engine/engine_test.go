package engine

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/codetriage/codetriage/internal/types"
)

func testEngine() *Engine {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(Config{Log: log, NoCache: true})
}

func inline(path, content string) types.ScannedFile {
	return types.ScannedFile{Path: path, Content: content, Size: len(content)}
}

func TestFullScanInputValidation(t *testing.T) {
	eng := testEngine()
	ctx := context.Background()

	if _, err := eng.FullScan(ctx, Request{}); !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
	req := Request{Path: ".", Files: []types.ScannedFile{inline("a.ts", "")}}
	if _, err := eng.FullScan(ctx, req); !errors.Is(err, ErrAmbiguousInput) {
		t.Fatalf("expected ErrAmbiguousInput, got %v", err)
	}
}

func TestFullScanInlineFiles(t *testing.T) {
	eng := testEngine()
	res, err := eng.FullScan(context.Background(), Request{Files: []types.ScannedFile{
		inline("src/auth/login.ts", "authenticate(user)"),
		inline("README.md", "# docs"),
	}})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if res.Summary.TotalFiles != 2 || res.Summary.SkippedFiles != 1 {
		t.Fatalf("unexpected summary %+v", res.Summary)
	}
	if len(res.Hotspots) != 1 || res.Hotspots[0].Category != types.CategoryAuth {
		t.Fatalf("expected auth hotspot, got %+v", res.Hotspots)
	}
	if len(res.Hotspots[0].RelevantCWEs) == 0 {
		t.Fatalf("hotspot should carry weakness ids")
	}
	if res.Dependencies != nil {
		t.Fatalf("inline scans must not audit dependencies")
	}
	if res.ScanDurationMS < 0 {
		t.Fatalf("negative duration")
	}
}

func TestFullScanCategoryFilter(t *testing.T) {
	eng := testEngine()
	res, err := eng.FullScan(context.Background(), Request{
		Files: []types.ScannedFile{
			inline("src/auth/login.ts", ""),
			inline("src/api/users.ts", "router.get('/u', h)"),
		},
		Categories: []types.Category{types.CategoryAPI},
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(res.Hotspots) != 1 || res.Hotspots[0].Category != types.CategoryAPI {
		t.Fatalf("filter not applied: %+v", res.Hotspots)
	}
	// Totals still cover the full input.
	if res.Summary.TotalFiles != 2 || res.Summary.SecurityRelevantFiles != 2 {
		t.Fatalf("totals must not shrink under a filter: %+v", res.Summary)
	}
}

func TestFullScanDirectory(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, dir, "src/auth/session.ts", "export const s = 1")
	mustWrite(t, dir, "package.json", `{"dependencies": {"next": "14"}}`)

	eng := testEngine()
	res, err := eng.FullScan(context.Background(), Request{Path: dir})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if res.ProjectContext.Framework != "nextjs" {
		t.Fatalf("project context not detected: %+v", res.ProjectContext)
	}
	// No lock file, so auditing stays off.
	if res.Dependencies != nil {
		t.Fatalf("audit should require a lock file")
	}
	found := map[types.Category]bool{}
	for _, h := range res.Hotspots {
		found[h.Category] = true
	}
	if !found[types.CategoryAuth] || !found[types.CategoryDependencies] {
		t.Fatalf("expected auth and dependencies hotspots, got %+v", res.Hotspots)
	}
}

func TestFullScanReusesCacheOnUnchangedTree(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, dir, "src/auth/login.ts", "authenticate(user)")

	log := logrus.New()
	log.SetOutput(io.Discard)
	eng := New(Config{Log: log})
	ctx := context.Background()

	first, err := eng.FullScan(ctx, Request{Path: dir})
	if err != nil {
		t.Fatalf("first scan: %v", err)
	}
	second, err := eng.FullScan(ctx, Request{Path: dir})
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if second.Summary != first.Summary {
		t.Fatalf("unchanged tree should reproduce the summary: %+v vs %+v", second.Summary, first.Summary)
	}

	// A new file invalidates the cache and shows up in the next scan.
	mustWrite(t, dir, "src/api/users.ts", "router.get('/u', h)")
	third, err := eng.FullScan(ctx, Request{Path: dir})
	if err != nil {
		t.Fatalf("third scan: %v", err)
	}
	if third.Summary.TotalFiles != first.Summary.TotalFiles+1 {
		t.Fatalf("changed tree must be reclassified: %+v", third.Summary)
	}
}

func TestDependencyScanRequiresPath(t *testing.T) {
	eng := testEngine()
	if _, err := eng.DependencyScan(context.Background(), "", nil); !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
	dev := true
	if _, err := eng.DependencyScan(context.Background(), "", &dev); !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput with override, got %v", err)
	}
}

func TestFullScanEchoesMinSeverity(t *testing.T) {
	eng := testEngine()
	res, err := eng.FullScan(context.Background(), Request{
		Files:       []types.ScannedFile{inline("src/auth/login.ts", "authenticate(user)")},
		MinSeverity: types.SevHigh,
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if res.MinSeverity != types.SevHigh {
		t.Fatalf("severity floor not echoed: %+v", res.MinSeverity)
	}
	// Advisory only: the hotspot set is unchanged.
	if len(res.Hotspots) != 1 {
		t.Fatalf("classification must ignore the floor, got %+v", res.Hotspots)
	}
}

func mustWrite(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}
