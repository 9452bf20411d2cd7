package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/catload/pkg/catload"
)

// RequireInputPaths validates that exactly the three positional paths are provided.
// Returns a usage error with an example otherwise.
func RequireInputPaths(cmd *cobra.Command, args []string) error {
	if len(args) == 3 {
		return nil
	}
	return fmt.Errorf(`expected 3 arguments, received %d: %w

Usage: %s

Provide the filepaths of the messages and categories datasets as the first
and second argument respectively, and the filepath of the database to save
the cleaned data to as the third argument.

Example:
  %s disaster_messages.csv disaster_categories.csv DisasterResponse.db`,
		len(args), catload.ErrUsage, cmd.UseLine(), cmd.CommandPath())
}
