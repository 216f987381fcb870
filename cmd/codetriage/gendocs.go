package codetriage

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codetriage/codetriage/internal/registry"
)

// gendocs regenerates the hotspot categories section in README.md between
// the markers <!-- BEGIN:HOTSPOT_CATEGORIES --> and <!-- END:HOTSPOT_CATEGORIES -->.
func init() {
	cmd := &cobra.Command{
		Use:   "gendocs",
		Short: "Regenerate README hotspot categories",
		RunE: func(_ *cobra.Command, _ []string) error {
			path := "README.md"
			b, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			start := []byte("<!-- BEGIN:HOTSPOT_CATEGORIES -->")
			end := []byte("<!-- END:HOTSPOT_CATEGORIES -->")
			i := bytes.Index(b, start)
			j := bytes.Index(b, end)
			if i < 0 || j < 0 || j <= i {
				return fmt.Errorf("markers not found in README.md")
			}

			var out strings.Builder
			out.WriteString("\nCategories in match order (run `codetriage categories` for the same list):\n\n")
			out.WriteString("| Category | Priority | Description |\n")
			out.WriteString("|---|---|---|\n")
			for _, cp := range registry.Categories() {
				fmt.Fprintf(&out, "| %s | %s | %s |\n", cp.Category, cp.Priority, cp.Description)
			}

			var nb bytes.Buffer
			nb.Write(b[:i])
			nb.Write(start)
			nb.WriteString("\n")
			nb.WriteString(out.String())
			nb.Write(end)
			nb.Write(b[j+len(end):])
			return os.WriteFile(path, nb.Bytes(), 0644)
		},
	}
	rootCmd.AddCommand(cmd)
}
