package types

// Priority ranks a hotspot category for review ordering.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
)

// Rank returns the sort rank of a priority (critical first). Unknown
// priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	}
	return 3
}

// Severity is the level assigned to a review finding.
type Severity string

const (
	SevCritical Severity = "critical"
	SevHigh     Severity = "high"
	SevMedium   Severity = "medium"
	SevLow      Severity = "low"
	SevInfo     Severity = "info"
)

// Category labels a group of security-relevant files.
type Category string

const (
	CategoryAuth         Category = "auth"
	CategoryAPI          Category = "api"
	CategoryDataFlow     Category = "data-flow"
	CategoryConfig       Category = "config"
	CategoryCrypto       Category = "crypto"
	CategoryUpload       Category = "upload"
	CategoryPayment      Category = "payment"
	CategoryDependencies Category = "dependencies"
	CategoryAdmin        Category = "admin"
)

// ScannedFile is one file handed to the classifier. Path is relative with
// forward slashes; Extension is lowercase and keeps the leading dot (empty
// when the file has none). Immutable once produced.
type ScannedFile struct {
	Path      string `json:"path"`
	Content   string `json:"content"`
	Size      int    `json:"size"`
	Extension string `json:"extension,omitempty"`
}

// SecurityHotspot is a category-labeled group of files worth review.
// Files keep scan order; the same file may appear in several hotspots.
type SecurityHotspot struct {
	Category Category      `json:"category"`
	Files    []ScannedFile `json:"files"`
	Priority Priority      `json:"priority"`
	Reason   string        `json:"reason"`
}

// HotspotAnalysis is the result of one classification run.
// SecurityRelevantFiles counts distinct paths across all hotspots, not the
// sum of per-hotspot file counts.
type HotspotAnalysis struct {
	Hotspots              []SecurityHotspot `json:"hotspots"`
	SkippedFiles          []string          `json:"skippedFiles"`
	TotalFiles            int               `json:"totalFiles"`
	SecurityRelevantFiles int               `json:"securityRelevantFiles"`
}

// DependencyVulnerability is one normalized entry from a package-manager
// audit. Severity is normalized (info|low|medium|high|critical); the audit
// report's summary histogram keeps npm's own scale.
type DependencyVulnerability struct {
	PackageName    string   `json:"packageName"`
	Version        string   `json:"version"`
	Severity       string   `json:"severity"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	CVEIDs         []string `json:"cveIds,omitempty"`
	PatchedVersion string   `json:"patchedVersion,omitempty"`
}

// Remediation carries the fix guidance attached to a finding.
type Remediation struct {
	Summary string   `json:"summary"`
	Steps   []string `json:"steps,omitempty"`
}

// Finding is one issue reported by the external reviewer, parsed back from
// its structured response.
type Finding struct {
	Title       string      `json:"title"`
	Severity    Severity    `json:"severity"`
	Confidence  int         `json:"confidence"` // 0-100
	File        string      `json:"file"`
	Line        int         `json:"line,omitempty"`
	Description string      `json:"description,omitempty"`
	Remediation Remediation `json:"remediation"`
	CWEID       string      `json:"cweId,omitempty"`
}

// ReviewResult is the parsed shape of a reviewer response. Summary carries a
// diagnostic when the raw response could not be parsed.
type ReviewResult struct {
	Findings []Finding `json:"findings"`
	Summary  string    `json:"summary"`
}

// ProjectContext holds hints detected from the project manifest. Empty
// string fields mean "could not determine", not "absent".
type ProjectContext struct {
	HasPackageJSON bool   `json:"hasPackageJson"`
	HasPackageLock bool   `json:"hasPackageLock"`
	Framework      string `json:"framework,omitempty"`
	Database       string `json:"database,omitempty"`
	AuthProvider   string `json:"authProvider,omitempty"`
	IsTypeScript   bool   `json:"isTypeScript"`
	Branch         string `json:"branch,omitempty"`
	Remote         string `json:"remote,omitempty"`
}
