package commands

import (
	"fmt"

	"hinglishgen/internal/version"

	"github.com/spf13/cobra"
)

// versionCmd returns the version command
func versionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Version never needs configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintln(app.stdout, version.String())
		},
	}
}
