package classify

import (
	"fmt"
	"sort"

	"github.com/codetriage/codetriage/internal/registry"
	"github.com/codetriage/codetriage/internal/types"
)

// Classify runs every file through the skip rules and then the category
// tables, producing priority-ordered hotspot groups. A file matching a skip
// rule never enters a hotspot; a surviving file can land in several
// categories at once. No input yields an empty analysis, not an error.
func Classify(files []types.ScannedFile) types.HotspotAnalysis {
	cats := registry.Categories()
	buckets := make(map[types.Category][]types.ScannedFile, len(cats))
	var skipped []string
	relevant := map[string]bool{}

	for _, f := range files {
		if _, ok := registry.MatchSkip(f.Path); ok {
			skipped = append(skipped, f.Path)
			continue
		}
		for _, cp := range cats {
			if cp.Matches(f) {
				buckets[cp.Category] = append(buckets[cp.Category], f)
				relevant[f.Path] = true
			}
		}
	}

	// Table order first, then a stable sort by priority, so ties keep the
	// registry's declaration order.
	var hotspots []types.SecurityHotspot
	for _, cp := range cats {
		fs := buckets[cp.Category]
		if len(fs) == 0 {
			continue
		}
		hotspots = append(hotspots, types.SecurityHotspot{
			Category: cp.Category,
			Files:    fs,
			Priority: cp.Priority,
			Reason:   fmt.Sprintf("%s (%d files)", cp.Description, len(fs)),
		})
	}
	sort.SliceStable(hotspots, func(i, j int) bool {
		return hotspots[i].Priority.Rank() < hotspots[j].Priority.Rank()
	})

	return types.HotspotAnalysis{
		Hotspots:              hotspots,
		SkippedFiles:          skipped,
		TotalFiles:            len(files),
		SecurityRelevantFiles: len(relevant),
	}
}

// FilterHotspots restricts an analysis to the requested categories. It is a
// view, not a re-analysis: totals and the skip list stay computed over the
// full input. An empty category list returns the analysis unchanged.
func FilterHotspots(a types.HotspotAnalysis, categories []types.Category) types.HotspotAnalysis {
	if len(categories) == 0 {
		return a
	}
	keep := make(map[types.Category]bool, len(categories))
	for _, c := range categories {
		keep[c] = true
	}
	out := a
	out.Hotspots = nil
	for _, h := range a.Hotspots {
		if keep[h.Category] {
			out.Hotspots = append(out.Hotspots, h)
		}
	}
	return out
}
