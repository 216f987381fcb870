// Package prompt turns hotspot groups and reference data into the prompt
// pair consumed by the external reviewer, and parses the structured response
// back into typed findings. It never calls a model itself.
package prompt

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/codetriage/codetriage/internal/cwe"
	"github.com/codetriage/codetriage/internal/risk"
	"github.com/codetriage/codetriage/internal/types"
)

const (
	maxDescriptionChars = 300
	maxMitigations      = 2
	maxFileChars        = 8000
	maxTotalChars       = 100000
)

// Builder assembles prompts, fetching weakness context through the shared
// client. Reference-data failures degrade to missing context lines, never to
// a failed build.
type Builder struct {
	cwe *cwe.Client
}

// NewBuilder creates a Builder backed by the given weakness client.
func NewBuilder(c *cwe.Client) *Builder {
	return &Builder{cwe: c}
}

// RelevantCWEs returns the normalized weakness identifiers attached to a
// category's profile.
func RelevantCWEs(c types.Category) []string {
	p := ProfileFor(c)
	out := make([]string, 0, len(p.CWEs))
	for _, id := range p.CWEs {
		out = append(out, cwe.Normalize(id))
	}
	return out
}

// BuildSystemPrompt constructs the role-framed instruction prompt for one
// category. pc may be nil when no project context was detected.
func (b *Builder) BuildSystemPrompt(ctx context.Context, category types.Category, pc *types.ProjectContext) string {
	p := ProfileFor(category)
	var sb strings.Builder

	sb.WriteString(p.Role)
	sb.WriteString("\n\nFocus areas:\n")
	for _, f := range p.Focus {
		sb.WriteString("- ")
		sb.WriteString(f)
		sb.WriteString("\n")
	}

	if len(p.CWEs) > 0 {
		records := b.cwe.FetchMany(ctx, p.CWEs)
		var lines []string
		for _, id := range p.CWEs {
			rec, ok := records[cwe.Normalize(id)]
			if !ok {
				continue
			}
			lines = append(lines, fmt.Sprintf("- %s (%s): %s", rec.ID, rec.Name, truncate(rec.Description, maxDescriptionChars)))
			for i, m := range rec.Mitigations {
				if i >= maxMitigations {
					break
				}
				lines = append(lines, "  Mitigation: "+truncate(m, maxDescriptionChars))
			}
		}
		if len(lines) > 0 {
			sb.WriteString("\nRelevant weakness classes:\n")
			sb.WriteString(strings.Join(lines, "\n"))
			sb.WriteString("\n")
		}
	}

	if lines := riskLines(p.FindingTypes); len(lines) > 0 {
		sb.WriteString("\nAssociated OWASP risk categories:\n")
		sb.WriteString(strings.Join(lines, "\n"))
		sb.WriteString("\n")
	}

	if pc != nil {
		if lines := contextLines(*pc); len(lines) > 0 {
			sb.WriteString("\nProject context:\n")
			sb.WriteString(strings.Join(lines, "\n"))
			sb.WriteString("\n")
		}
	}

	sb.WriteString(outputInstructions)
	return sb.String()
}

// BuildUserPrompt serializes a hotspot's files as fenced blocks, smallest
// files first so cheap signal survives the budget. Per-file content is
// capped at 8000 characters; once the running total crosses 100000 the
// remaining files are reported as omitted, not partially included.
func (b *Builder) BuildUserPrompt(h types.SecurityHotspot) string {
	files := make([]types.ScannedFile, len(h.Files))
	copy(files, h.Files)
	sort.SliceStable(files, func(i, j int) bool { return files[i].Size < files[j].Size })

	var sb strings.Builder
	fmt.Fprintf(&sb, "Review the following %d file(s) flagged for category %q.\n\n", len(files), h.Category)

	total := 0
	for i, f := range files {
		block := serializeFile(f)
		sb.WriteString(block)
		total += len(block)
		if total > maxTotalChars && i < len(files)-1 {
			fmt.Fprintf(&sb, "\n[%d more file(s) omitted to stay within the content budget]\n", len(files)-i-1)
			break
		}
	}
	return sb.String()
}

func serializeFile(f types.ScannedFile) string {
	content := f.Content
	truncated := false
	if len(content) > maxFileChars {
		content = content[:maxFileChars]
		truncated = true
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "### %s\n```%s\n%s", f.Path, languageTag(f), content)
	if truncated {
		sb.WriteString("\n[truncated]")
	}
	sb.WriteString("\n```\n\n")
	return sb.String()
}

// languageTag derives the fence tag from the file path, defaulting to
// "text" when no lexer claims it.
func languageTag(f types.ScannedFile) string {
	lexer := lexers.Match(f.Path)
	if lexer == nil {
		return "text"
	}
	name := strings.ToLower(lexer.Config().Name)
	if name == "" {
		return "text"
	}
	return name
}

func riskLines(findingTypes []string) []string {
	seen := map[string]bool{}
	var lines []string
	for _, ft := range findingTypes {
		for _, r := range risk.ForFindingType(ft) {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			lines = append(lines, fmt.Sprintf("- %s %s: %s", r.ID, r.Name, r.Description))
		}
	}
	return lines
}

func contextLines(pc types.ProjectContext) []string {
	var lines []string
	if pc.Framework != "" {
		lines = append(lines, "- Framework: "+pc.Framework)
	}
	if pc.Database != "" {
		lines = append(lines, "- Database: "+pc.Database)
	}
	if pc.AuthProvider != "" {
		lines = append(lines, "- Auth provider: "+pc.AuthProvider)
	}
	if pc.IsTypeScript {
		lines = append(lines, "- Language: TypeScript")
	}
	if pc.Branch != "" {
		lines = append(lines, "- Git branch: "+pc.Branch)
	}
	return lines
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

const outputInstructions = `
Report format:
- Report only findings evidenced by the code shown. Do not speculate about code you cannot see.
- Include the file path and, when identifiable, the line number for every finding.
- Assign one severity per finding: critical, high, medium, or low.
- Assign a confidence score from 0 to 100.
- Provide a remediation summary and an ordered list of remediation steps.
- Do not report client-embedded Firebase API keys as findings; they are public by design.
- Do not report the mere presence of a dependency without evidence of vulnerable usage.

Respond with exactly one JSON object in this shape:
{
  "findings": [
    {
      "title": "",
      "severity": "high",
      "confidence": 80,
      "file": "path/to/file",
      "line": 0,
      "description": "",
      "remediation": {"summary": "", "steps": [""]},
      "cweId": "CWE-0"
    }
  ],
  "summary": ""
}`
