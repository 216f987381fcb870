package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/codetriage/codetriage/internal/types"
)

// AnalysisResults stores the classification outcome of the last scan so an
// unchanged tree can skip re-classification.
type AnalysisResults struct {
	Analysis  types.HotspotAnalysis `json:"analysis"`
	Timestamp time.Time             `json:"timestamp"`
	Root      string                `json:"root"`
}

func resultsPath(root string) string {
	// Store in .git directory or project root
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "codetriage_last_scan.json")
	}
	return filepath.Join(root, ".codetriage_last_scan.json")
}

// SaveResults saves the analysis of a completed scan.
func SaveResults(root string, analysis types.HotspotAnalysis) error {
	p := resultsPath(root)
	results := AnalysisResults{
		Analysis:  analysis,
		Timestamp: time.Now(),
		Root:      root,
	}
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0644)
}

// LoadResults loads the last saved analysis.
func LoadResults(root string) (AnalysisResults, error) {
	var results AnalysisResults
	p := resultsPath(root)
	f, err := os.ReadFile(p)
	if err != nil {
		return results, err
	}
	if err := json.Unmarshal(f, &results); err != nil {
		return results, err
	}
	return results, nil
}
