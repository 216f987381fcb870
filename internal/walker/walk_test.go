package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

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

func collect(t *testing.T, cfg Config) map[string]bool {
	t.Helper()
	files, err := Collect(context.Background(), cfg)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	got := map[string]bool{}
	for _, f := range files {
		got[f.Path] = true
	}
	return got
}

func TestCollectDefaultExcludes(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, dir, "src/auth/login.ts", "login")
	mustWrite(t, dir, "node_modules/express/index.js", "module")
	mustWrite(t, dir, ".git/config", "[core]")
	mustWrite(t, dir, "dist/bundle.js", "bundle")

	got := collect(t, Config{Root: dir})
	if !got["src/auth/login.ts"] {
		t.Fatalf("expected source file, got %v", got)
	}
	for _, p := range []string{"node_modules/express/index.js", ".git/config", "dist/bundle.js"} {
		if got[p] {
			t.Fatalf("%s should be excluded by default", p)
		}
	}
}

// .git is pruned by exact name; dot directories like .github hold scannable
// config such as workflow YAML.
func TestCollectKeepsGithubDir(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, dir, ".github/workflows/deploy.yml", "on: push")
	mustWrite(t, dir, ".git/config", "[core]")
	mustWrite(t, dir, ".codetriagecache.json", `{"entries":{}}`)

	got := collect(t, Config{Root: dir})
	if !got[".github/workflows/deploy.yml"] {
		t.Fatalf("workflow file should be collected, got %v", got)
	}
	if got[".git/config"] {
		t.Fatalf(".git contents should stay excluded")
	}
	if got[".codetriagecache.json"] {
		t.Fatalf("own cache artifact should not be scanned")
	}
}

func TestCollectSkipsBinaryAndOversized(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, dir, "ok.js", "text")
	mustWrite(t, dir, "blob.bin", "abc\x00def")
	mustWrite(t, dir, "big.js", "xxxxxxxxxx")

	got := collect(t, Config{Root: dir, MaxBytes: 5})
	if !got["ok.js"] {
		t.Fatalf("text file should survive: %v", got)
	}
	if got["blob.bin"] {
		t.Fatalf("NUL-containing file should be dropped")
	}
	if got["big.js"] {
		t.Fatalf("oversized file should be dropped")
	}
}

func TestCollectSingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, dir, "Login.TSX", "component")

	files, err := Collect(context.Background(), Config{Root: filepath.Join(dir, "Login.TSX")})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].Path != "Login.TSX" {
		t.Fatalf("unexpected path %q", files[0].Path)
	}
	if files[0].Extension != ".tsx" {
		t.Fatalf("extension should be lowercased, got %q", files[0].Extension)
	}
	if files[0].Size != len("component") {
		t.Fatalf("size mismatch: %d", files[0].Size)
	}
}

func TestCollectGlobs(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, dir, "src/a.ts", "a")
	mustWrite(t, dir, "src/b.js", "b")
	mustWrite(t, dir, "src/c.py", "c")

	got := collect(t, Config{Root: dir, IncludeGlobs: "**/*.ts,**/*.js", ExcludeGlobs: "**/b.js"})
	if !got["src/a.ts"] {
		t.Fatalf("include glob should keep a.ts: %v", got)
	}
	if got["src/b.js"] {
		t.Fatalf("exclude glob should drop b.js")
	}
	if got["src/c.py"] {
		t.Fatalf("include filter should drop c.py")
	}
}

func TestCollectMissingRoot(t *testing.T) {
	if _, err := Collect(context.Background(), Config{Root: filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Fatalf("expected error for missing root")
	}
}
