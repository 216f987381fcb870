package walker

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/codetriage/codetriage/internal/types"
)

// Config controls traversal scope and filtering.
type Config struct {
	Root         string
	IncludeGlobs string // comma-separated, positive filter when set
	ExcludeGlobs string // comma-separated, subtracted last
	MaxBytes     int64  // skip files larger than this (0 = default)
}

const defaultMaxBytes = 1 << 20

// Collect traverses the root (directory or single file) and returns the
// eligible files as ScannedFile records with forward-slash relative paths
// and lowercase extensions. Binary and oversized files are dropped here;
// classification-level skips (docs, tests, assets) are not — those belong
// to the registry so they can be reported.
func Collect(ctx context.Context, cfg Config) ([]types.ScannedFile, error) {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = defaultMaxBytes
	}
	st, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("cannot access path %q: %w", cfg.Root, err)
	}
	if !st.IsDir() {
		f, ok := readOne(cfg.Root, filepath.Base(cfg.Root), cfg.MaxBytes)
		if !ok {
			return nil, nil
		}
		return []types.ScannedFile{f}, nil
	}

	var out []types.ScannedFile
	err = filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if isSelfArtifact(d.Name()) {
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		rel = filepath.ToSlash(rel)
		if !allowedByGlobs(rel, cfg) {
			return nil
		}
		info, _ := d.Info()
		if info != nil && info.Size() > cfg.MaxBytes {
			return nil
		}
		if f, ok := readOne(p, rel, cfg.MaxBytes); ok {
			out = append(out, f)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func readOne(abs, rel string, maxBytes int64) (types.ScannedFile, bool) {
	b, err := os.ReadFile(abs)
	if err != nil {
		return types.ScannedFile{}, false
	}
	if int64(len(b)) > maxBytes {
		return types.ScannedFile{}, false
	}
	if looksBinary(b) {
		return types.ScannedFile{}, false
	}
	return types.ScannedFile{
		Path:      rel,
		Content:   string(b),
		Size:      len(b),
		Extension: strings.ToLower(filepath.Ext(rel)),
	}, true
}

// looksBinary sniffs a small prefix for NUL bytes.
func looksBinary(b []byte) bool {
	const sniff = 800
	n := sniff
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}

// allowedByGlobs applies include/exclude globs with forward-slash semantics.
// Include globs act as a positive filter when provided; excludes subtract.
func allowedByGlobs(relPath string, cfg Config) bool {
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(relPath, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(relPath, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}
