package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireSubmitArgs validates the <project> and <input> arguments.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireSubmitArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf(`missing required argument: <PRJNAxxxxxx> <PATH|FILE>

Usage: %s

Examples:
  %s PRJNA000001 ./metadata.txt
  %s - /data/MiSeq/150101_M01234_0001  # project from Sample_Project`, cmd.UseLine(), cmd.CommandPath(), cmd.CommandPath())
	}
	if len(args) > 2 {
		return fmt.Errorf("accepts 2 arg(s), received %d", len(args))
	}
	return nil
}
