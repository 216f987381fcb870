package codetriage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codetriage/codetriage/internal/engine"
	"github.com/codetriage/codetriage/internal/report"
)

func init() {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Audit npm dependencies for known vulnerabilities",
		RunE:  runDeps,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagDepsPath, "path", "p", ".", "project directory containing package.json")
	cmd.Flags().BoolVar(&flagIncludeDev, "include-dev", false, "audit devDependencies too")
	cmd.Flags().DurationVar(&flagAuditTimeout, "audit-timeout", 0, "npm audit time budget (default 60s)")
}

var flagDepsPath string

func runDeps(cmd *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagDepsPath)
	eng := engine.New(buildEngineConfig(abs))
	rep, err := eng.DependencyScan(cmd.Context(), abs, nil)
	if err != nil {
		return fmt.Errorf("audit error: %w", err)
	}

	if flagJSON {
		return report.PrintJSON(os.Stdout, rep)
	}
	report.PrintAudit(os.Stdout, rep, report.PrintOptions{NoColor: flagNoColor || report.AutoNoColor()})
	return nil
}
