package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sraqs",
	Short: "Package sequencing runs for NCBI SRA submission",
	Long: `sraqs turns a metadata table or a MiSeq output directory into SRA
submission documents (experiment, run, submission) and bundles each sample's
documents into <sample>.submission_archive.tar, ready for upload.

Exit Codes:
  0  - Success, every record was packaged
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or submitter identity
  11 - Metadata table or run directory not found
  12 - One or more records were skipped
  13 - Output directory is locked by another sraqs process`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
