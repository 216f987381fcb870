// Package report renders scan results for terminals and machine consumers.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/codetriage/codetriage/internal/engine"
	"github.com/codetriage/codetriage/internal/npmaudit"
)

type PrintOptions struct {
	NoColor bool
}

// Lipgloss styles for each priority and severity level.
var (
	styleCritical = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	styleHigh     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleMedium   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleLow      = lipgloss.NewStyle().Faint(true)
)

// AutoNoColor reports whether color should be suppressed because stdout is
// not a terminal.
func AutoNoColor() bool {
	return !term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintScan renders a full scan result as a hotspot table with a summary
// footer, plus a dependency section when auditing ran.
func PrintScan(w io.Writer, res engine.Result, opts PrintOptions) {
	if len(res.Hotspots) == 0 {
		fmt.Fprintln(w, "No security hotspots found ✅")
	} else {
		table := tablewriter.NewTable(w)
		table.Header("PRIORITY", "CATEGORY", "FILES", "REASON")
		for _, h := range res.Hotspots {
			table.Append([]string{
				styleLevel(string(h.Priority), opts.NoColor),
				string(h.Category),
				fmt.Sprintf("%d", len(h.Files)),
				h.Reason,
			})
		}
		_ = table.Render() //nolint:errcheck // Terminal write
	}

	if res.Dependencies != nil {
		fmt.Fprintln(w)
		PrintAudit(w, *res.Dependencies, opts)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Files: %d scanned, %d security-relevant, %d skipped\n",
		res.Summary.TotalFiles, res.Summary.SecurityRelevantFiles, res.Summary.SkippedFiles)
	if pc := res.ProjectContext; pc.Framework != "" || pc.Database != "" {
		parts := []string{}
		if pc.Framework != "" {
			parts = append(parts, "framework: "+pc.Framework)
		}
		if pc.Database != "" {
			parts = append(parts, "database: "+pc.Database)
		}
		if pc.AuthProvider != "" {
			parts = append(parts, "auth: "+pc.AuthProvider)
		}
		fmt.Fprintf(w, "Project: %s\n", strings.Join(parts, ", "))
	}
	fmt.Fprintf(w, "Scan duration: %.2fs\n", float64(res.ScanDurationMS)/1000)
}

// PrintAudit renders a dependency audit report.
func PrintAudit(w io.Writer, report npmaudit.Report, opts PrintOptions) {
	if !report.ToolAvailable || report.Error != "" {
		fmt.Fprintf(w, "Dependency audit unavailable: %s\n", firstLine(report.Error))
		return
	}
	if len(report.Vulnerabilities) == 0 {
		fmt.Fprintln(w, "No vulnerable dependencies found ✅")
		return
	}

	table := tablewriter.NewTable(w)
	table.Header("SEVERITY", "PACKAGE", "RANGE", "FIXED IN", "ADVISORY")
	for _, v := range report.Vulnerabilities {
		fixed := v.PatchedVersion
		if fixed == "" {
			fixed = "-"
		}
		table.Append([]string{
			styleLevel(v.Severity, opts.NoColor),
			v.PackageName,
			v.Version,
			fixed,
			v.Title,
		})
	}
	_ = table.Render() //nolint:errcheck // Terminal write

	var parts []string
	for _, level := range []string{"critical", "high", "moderate", "low", "info"} {
		if n := report.Summary[level]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", level, n))
		}
	}
	total := report.Summary["total"]
	if total == 0 {
		total = len(report.Vulnerabilities)
	}
	if len(parts) > 0 {
		fmt.Fprintf(w, "Vulnerabilities: %d (%s)\n", total, strings.Join(parts, ", "))
	}
}

// PrintJSON writes any result as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func styleLevel(level string, noColor bool) string {
	if noColor {
		return level
	}
	switch level {
	case "critical":
		return styleCritical.Render(level)
	case "high":
		return styleHigh.Render(level)
	case "medium", "moderate":
		return styleMedium.Render(level)
	default:
		return styleLow.Render(level)
	}
}

func firstLine(s string) string {
	if idx := strings.Index(s, "\n"); idx >= 0 {
		return s[:idx]
	}
	return s
}
