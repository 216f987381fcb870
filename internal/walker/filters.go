package walker

// Directories never descended into. Classification-level skips live in the
// registry; this list only keeps the walk cheap.
var defaultExcludeDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"out":          true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	"coverage":     true,
	".next":        true,
	".turbo":       true,
}

func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name]
}

// Artifacts the tool writes into non-git roots; scanning them would churn
// the hash cache on every run.
var selfArtifacts = map[string]bool{
	".codetriagecache.json":      true,
	".codetriage_last_scan.json": true,
}

func isSelfArtifact(name string) bool {
	return selfArtifacts[name]
}
