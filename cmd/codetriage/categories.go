package codetriage

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codetriage/codetriage/internal/registry"
)

func init() {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List hotspot categories",
		Run: func(_ *cobra.Command, _ []string) {
			for _, cp := range registry.Categories() {
				fmt.Printf("%-12s %-8s %s\n", cp.Category, cp.Priority, cp.Description)
			}
		},
	}
	rootCmd.AddCommand(cmd)
}
