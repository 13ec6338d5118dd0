package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/pkg/sraqs"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write a metadata table template",
	Long: `Template writes ` + sraqs.TemplateFileName + `, a tab-separated file
holding only the header row that 'sraqs submit' expects for table input.
Fill one row per sample; extra columns are passed through.`,
	Args: cobra.NoArgs,
	RunE: runTemplate,
}

var templateOutput string

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.Flags().StringVarP(&templateOutput, "output", "o", "",
		"Directory to write the template into, created if missing (default: current directory)")
}

// writeTemplate creates dir when needed and returns the template path.
func writeTemplate(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	path := filepath.Join(dir, sraqs.TemplateFileName)
	header := strings.Join(sraqs.TemplateColumns, "\t") + "\n"
	if err := os.WriteFile(path, []byte(header), 0o644); err != nil {
		return "", fmt.Errorf("write template: %w", err)
	}
	return path, nil
}

func runTemplate(cmd *cobra.Command, args []string) error {
	path, err := writeTemplate(templateOutput)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}
