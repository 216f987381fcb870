package project

import (
	"testing"

	"github.com/codetriage/codetriage/internal/types"
)

func manifestFile(content string) types.ScannedFile {
	return types.ScannedFile{Path: "package.json", Content: content, Size: len(content)}
}

func TestDetectFramework(t *testing.T) {
	pc := Detect([]types.ScannedFile{
		manifestFile(`{"dependencies": {"next": "14.0.0", "react": "18.2.0"}}`),
	})
	if !pc.HasPackageJSON {
		t.Fatalf("manifest presence not detected")
	}
	// next wins over react regardless of map order.
	if pc.Framework != "nextjs" {
		t.Fatalf("Framework = %q, want nextjs", pc.Framework)
	}
}

func TestDetectDatabaseAndAuth(t *testing.T) {
	pc := Detect([]types.ScannedFile{
		manifestFile(`{"dependencies": {"express": "4", "pg": "8", "passport": "0.7"}}`),
	})
	if pc.Framework != "express" {
		t.Fatalf("Framework = %q", pc.Framework)
	}
	if pc.Database != "postgresql" {
		t.Fatalf("Database = %q", pc.Database)
	}
	if pc.AuthProvider != "passport" {
		t.Fatalf("AuthProvider = %q", pc.AuthProvider)
	}
}

func TestDetectTypeScript(t *testing.T) {
	byDep := Detect([]types.ScannedFile{
		manifestFile(`{"devDependencies": {"typescript": "5"}}`),
	})
	if !byDep.IsTypeScript {
		t.Fatalf("typescript dep should mark project as TypeScript")
	}
	byFile := Detect([]types.ScannedFile{
		{Path: "src/index.ts", Content: "export {}"},
	})
	if !byFile.IsTypeScript {
		t.Fatalf(".ts file should mark project as TypeScript")
	}
}

func TestDetectMalformedManifest(t *testing.T) {
	pc := Detect([]types.ScannedFile{manifestFile(`{not json`)})
	if !pc.HasPackageJSON {
		t.Fatalf("malformed manifest still counts as present")
	}
	if pc.Framework != "" {
		t.Fatalf("malformed manifest must contribute no hints")
	}
}

func TestLockFileDetection(t *testing.T) {
	files := []types.ScannedFile{
		manifestFile(`{}`),
		{Path: "package-lock.json", Content: `{}`},
	}
	pc := Detect(files)
	if !pc.HasPackageLock {
		t.Fatalf("lock file not detected")
	}
	if !HasLockFile(files) {
		t.Fatalf("HasLockFile should agree")
	}
	if HasLockFile(files[:1]) {
		t.Fatalf("no lock file expected")
	}
}

func TestDetectNested(t *testing.T) {
	pc := Detect([]types.ScannedFile{
		{Path: "backend/package.json", Content: `{"dependencies": {"fastify": "4"}}`},
	})
	if pc.Framework != "fastify" {
		t.Fatalf("nested manifest should be honored, got %q", pc.Framework)
	}
}
