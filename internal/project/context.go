// Package project detects coarse project hints (framework, database, auth
// provider) from the package manifest, plus repository metadata. All
// detection is best-effort: an empty field means unknown, not absent.
package project

import (
	"encoding/json"
	"path"
	"strings"

	"github.com/codetriage/codetriage/internal/types"
)

type detection struct {
	dep  string
	name string
}

// First match wins within each table, so more specific entries go first.
var frameworkTable = []detection{
	{"next", "nextjs"},
	{"nuxt", "nuxtjs"},
	{"@remix-run/react", "remix"},
	{"@nestjs/core", "nestjs"},
	{"@angular/core", "angular"},
	{"svelte", "svelte"},
	{"vue", "vue"},
	{"react", "react"},
	{"fastify", "fastify"},
	{"koa", "koa"},
	{"express", "express"},
}

var databaseTable = []detection{
	{"@prisma/client", "prisma"},
	{"mongoose", "mongodb"},
	{"mongodb", "mongodb"},
	{"pg", "postgresql"},
	{"mysql2", "mysql"},
	{"mysql", "mysql"},
	{"better-sqlite3", "sqlite"},
	{"sqlite3", "sqlite"},
	{"ioredis", "redis"},
	{"redis", "redis"},
}

var authTable = []detection{
	{"next-auth", "nextauth"},
	{"@clerk/nextjs", "clerk"},
	{"@auth0/auth0-react", "auth0"},
	{"auth0", "auth0"},
	{"firebase-admin", "firebase"},
	{"firebase", "firebase"},
	{"@supabase/supabase-js", "supabase"},
	{"passport", "passport"},
}

type manifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Detect derives project context from the scanned file set. The manifest is
// located by exact base name; a malformed manifest still counts as present
// but contributes no dependency hints.
func Detect(files []types.ScannedFile) types.ProjectContext {
	var pc types.ProjectContext
	deps := map[string]bool{}

	for _, f := range files {
		switch path.Base(f.Path) {
		case "package.json":
			pc.HasPackageJSON = true
			var m manifest
			if err := json.Unmarshal([]byte(f.Content), &m); err == nil {
				for d := range m.Dependencies {
					deps[d] = true
				}
				for d := range m.DevDependencies {
					deps[d] = true
				}
			}
		case "package-lock.json", "npm-shrinkwrap.json":
			pc.HasPackageLock = true
		case "tsconfig.json":
			pc.IsTypeScript = true
		}
		if strings.HasSuffix(f.Path, ".ts") || strings.HasSuffix(f.Path, ".tsx") {
			pc.IsTypeScript = true
		}
	}

	if deps["typescript"] {
		pc.IsTypeScript = true
	}
	pc.Framework = firstMatch(frameworkTable, deps)
	pc.Database = firstMatch(databaseTable, deps)
	pc.AuthProvider = firstMatch(authTable, deps)
	return pc
}

func firstMatch(table []detection, deps map[string]bool) string {
	for _, d := range table {
		if deps[d.dep] {
			return d.name
		}
	}
	return ""
}

// HasLockFile reports whether the scanned set contains an npm lock file.
func HasLockFile(files []types.ScannedFile) bool {
	for _, f := range files {
		switch path.Base(f.Path) {
		case "package-lock.json", "npm-shrinkwrap.json":
			return true
		}
	}
	return false
}
