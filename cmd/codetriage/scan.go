package codetriage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/codetriage/codetriage/internal/engine"
	"github.com/codetriage/codetriage/internal/registry"
	"github.com/codetriage/codetriage/internal/report"
	"github.com/codetriage/codetriage/internal/types"
	"github.com/codetriage/codetriage/internal/update"
)

var (
	flagPath         string
	flagInclude      string
	flagExclude      string
	flagMaxBytes     int64
	flagCategories   string
	flagNoAudit      bool
	flagAuditTimeout time.Duration
	flagIncludeDev   bool
	flagCWECacheDir  string
	flagMinSeverity  string
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Classify files into security hotspots",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan (directory or single file)")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().StringVar(&flagCategories, "categories", "", "only report these categories (comma-separated IDs)")
	cmd.Flags().BoolVar(&flagNoAudit, "no-audit", false, "skip npm dependency audit")
	cmd.Flags().DurationVar(&flagAuditTimeout, "audit-timeout", 0, "npm audit time budget (default 60s)")
	cmd.Flags().BoolVar(&flagIncludeDev, "include-dev", false, "audit devDependencies too")
	cmd.Flags().StringVar(&flagCWECacheDir, "cwe-cache-dir", "", "directory for the on-disk weakness record cache")
	cmd.Flags().StringVar(&flagMinSeverity, "min-severity", "", "advisory severity floor echoed on the result (critical|high|medium|low|info)")
}

func runScan(cmd *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagPath)

	// Friendly banner before scanning
	if !flagJSON {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				_, _ = fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'codetriage --self-update' to upgrade\n", latest)
			}
		}
		if flagSelfUpdate {
			if err := selfUpdate(); err == nil {
				_, _ = fmt.Fprintln(os.Stderr, "updated to latest; re-run command")
				return nil
			}
		}
		_, _ = fmt.Fprintf(os.Stderr, "Scanning %s across %d categories...\n", abs, len(registry.Categories()))
	}

	categories, err := parseCategoryFlag(flagCategories)
	if err != nil {
		return err
	}
	minSeverity, err := parseSeverityFlag(flagMinSeverity)
	if err != nil {
		return err
	}

	eng := engine.New(buildEngineConfig(abs))
	res, err := eng.FullScan(cmd.Context(), engine.Request{Path: abs, Categories: categories, MinSeverity: minSeverity})
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	if flagJSON {
		return report.PrintJSON(os.Stdout, res)
	}
	report.PrintScan(os.Stdout, res, report.PrintOptions{NoColor: flagNoColor || report.AutoNoColor()})
	return nil
}

func parseSeverityFlag(raw string) (types.Severity, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	sev := types.Severity(strings.ToLower(strings.TrimSpace(raw)))
	switch sev {
	case types.SevCritical, types.SevHigh, types.SevMedium, types.SevLow, types.SevInfo:
		return sev, nil
	}
	return "", fmt.Errorf("unknown severity %q (known: critical, high, medium, low, info)", raw)
}

func parseCategoryFlag(raw string) ([]types.Category, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []types.Category
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c := types.Category(strings.ToLower(part))
		if _, ok := registry.Lookup(c); !ok {
			return nil, fmt.Errorf("unknown category %q (known: %s)", part, strings.Join(registry.IDs(), ", "))
		}
		out = append(out, c)
	}
	return out, nil
}
