package codetriage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/codetriage/codetriage/internal/engine"
	"github.com/codetriage/codetriage/internal/registry"
	"github.com/codetriage/codetriage/internal/types"
)

var (
	flagPromptPath     string
	flagPromptCategory string
	flagSystemOnly     bool
	flagUserOnly       bool
	flagCopy           bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Build the review prompt pair for one hotspot category",
		RunE:  runPrompt,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPromptPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVarP(&flagPromptCategory, "category", "c", "", "hotspot category to build a prompt for (required)")
	cmd.Flags().BoolVar(&flagSystemOnly, "system", false, "print only the system prompt")
	cmd.Flags().BoolVar(&flagUserOnly, "user", false, "print only the user prompt")
	cmd.Flags().BoolVar(&flagCopy, "copy", false, "copy the output to the clipboard")
	_ = cmd.MarkFlagRequired("category") //nolint:errcheck
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	category := types.Category(strings.ToLower(strings.TrimSpace(flagPromptCategory)))
	if _, ok := registry.Lookup(category); !ok {
		return fmt.Errorf("unknown category %q (known: %s)", flagPromptCategory, strings.Join(registry.IDs(), ", "))
	}

	abs, _ := filepath.Abs(flagPromptPath)
	cfg := buildEngineConfig(abs)
	cfg.AuditEnabled = false // prompt building never needs the audit
	eng := engine.New(cfg)

	res, err := eng.FullScan(cmd.Context(), engine.Request{Path: abs, Categories: []types.Category{category}})
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	var hotspot *types.SecurityHotspot
	for i := range res.Hotspots {
		if res.Hotspots[i].Category == category {
			hotspot = &res.Hotspots[i].SecurityHotspot
			break
		}
	}
	if hotspot == nil {
		return fmt.Errorf("no %s hotspot found under %s", category, abs)
	}

	var out strings.Builder
	if !flagUserOnly {
		out.WriteString(eng.Builder().BuildSystemPrompt(cmd.Context(), category, &res.ProjectContext))
	}
	if !flagSystemOnly {
		if out.Len() > 0 {
			out.WriteString("\n\n---\n\n")
		}
		out.WriteString(eng.Builder().BuildUserPrompt(*hotspot))
	}

	if flagCopy {
		if err := clipboard.WriteAll(out.String()); err != nil {
			return fmt.Errorf("clipboard error: %w", err)
		}
		_, _ = fmt.Fprintln(os.Stderr, "prompt copied to clipboard")
		return nil
	}
	fmt.Println(out.String())
	return nil
}
