package npmaudit

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/blang/semver/v4"

	"github.com/codetriage/codetriage/internal/types"
)

// auditReport mirrors the npm audit --json v2 layout (npm 7+).
type auditReport struct {
	AuditReportVersion int                       `json:"auditReportVersion"`
	Vulnerabilities    map[string]wireVulnerable `json:"vulnerabilities"`
	Metadata           wireMetadata              `json:"metadata"`
}

type wireVulnerable struct {
	Name         string            `json:"name"`
	Severity     string            `json:"severity"`
	IsDirect     bool              `json:"isDirect"`
	Via          []json.RawMessage `json:"via"`
	Range        string            `json:"range"`
	FixAvailable json.RawMessage   `json:"fixAvailable"`
}

// wireAdvisory is the object form of a via entry. String entries name a
// transitively vulnerable dependency and carry no advisory data.
type wireAdvisory struct {
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Severity string   `json:"severity"`
	CWE      []string `json:"cwe"`
	Range    string   `json:"range"`
}

type wireFix struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type wireMetadata struct {
	Vulnerabilities map[string]int `json:"vulnerabilities"`
}

func convertReport(wire auditReport) Report {
	out := Report{
		ToolAvailable:   true,
		Vulnerabilities: []types.DependencyVulnerability{},
		Summary:         map[string]int{},
	}

	names := make([]string, 0, len(wire.Vulnerabilities))
	for name := range wire.Vulnerabilities {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v := wire.Vulnerabilities[name]
		dv := types.DependencyVulnerability{
			PackageName:    name,
			Version:        v.Range,
			Severity:       string(normalizeSeverity(v.Severity)),
			PatchedVersion: patchedVersion(v.FixAvailable),
		}
		for _, raw := range v.Via {
			var adv wireAdvisory
			if err := json.Unmarshal(raw, &adv); err != nil {
				// String entry: transitive pointer, nothing to extract.
				continue
			}
			if dv.Title == "" {
				dv.Title = adv.Title
			}
			if adv.Title != "" {
				if dv.Description != "" {
					dv.Description += "; "
				}
				dv.Description += adv.Title
			}
			if id := advisoryID(adv.URL); id != "" {
				dv.CVEIDs = append(dv.CVEIDs, id)
			}
		}
		if dv.Title == "" {
			dv.Title = "Vulnerable versions of " + name
		}
		out.Vulnerabilities = append(out.Vulnerabilities, dv)
		out.Summary[npmSeverity(v.Severity)]++
	}
	out.Summary["total"] = len(out.Vulnerabilities)

	// Prefer npm's own histogram when present; it counts transitives the
	// converted list may collapse.
	if len(wire.Metadata.Vulnerabilities) > 0 {
		summary := map[string]int{}
		total := 0
		for k, n := range wire.Metadata.Vulnerabilities {
			if n == 0 {
				continue
			}
			if k == "total" {
				total = n
				continue
			}
			summary[npmSeverity(k)] += n
		}
		if len(summary) > 0 {
			if total == 0 {
				for _, n := range summary {
					total += n
				}
			}
			summary["total"] = total
			out.Summary = summary
		}
	}
	return out
}

// patchedVersion extracts the fix version. fixAvailable is a bool when npm
// has no single fix to offer, or an object naming the version to install.
func patchedVersion(raw json.RawMessage) string {
	var fix wireFix
	if err := json.Unmarshal(raw, &fix); err != nil {
		return ""
	}
	if _, err := semver.Parse(fix.Version); err != nil {
		return ""
	}
	return fix.Version
}

// advisoryID takes the advisory identifier from a GitHub advisory URL.
func advisoryID(url string) string {
	if url == "" {
		return ""
	}
	if idx := strings.LastIndex(url, "/"); idx >= 0 && idx < len(url)-1 {
		return url[idx+1:]
	}
	return ""
}

// npmSeverity keeps npm's own scale (info|low|moderate|high|critical) for
// the summary histogram. normalizeSeverity is for per-vulnerability fields.
func npmSeverity(s string) string {
	switch l := strings.ToLower(s); l {
	case "critical", "high", "moderate", "low", "info":
		return l
	case "medium":
		return "moderate"
	default:
		return "info"
	}
}

func normalizeSeverity(s string) types.Severity {
	switch strings.ToLower(s) {
	case "critical":
		return types.SevCritical
	case "high":
		return types.SevHigh
	case "moderate", "medium":
		return types.SevMedium
	case "low":
		return types.SevLow
	default:
		return types.SevInfo
	}
}
