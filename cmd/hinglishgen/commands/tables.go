package commands

import (
	"fmt"

	"hinglishgen/internal/output"

	"github.com/spf13/cobra"
)

// tablesCmd returns the tables command group
func tablesCmd(app *App) *cobra.Command {
	tablesCmd := &cobra.Command{
		Use:   "tables",
		Short: "Corpus table commands",
		Long: `Corpus table commands.

Available commands:
  dump     - Write the active tables as YAML`,
	}

	tablesCmd.AddCommand(dumpCmd(app))

	return tablesCmd
}

// dumpCmd returns the tables dump command
func dumpCmd(app *App) *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write the active corpus tables as YAML",
		Long: `Write the active corpus tables (built-in, or merged with --tables) as YAML.
The result is a valid --tables file and a starting point for custom tables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, err := app.loadTables()
			if err != nil {
				return err
			}

			if dest == "" {
				return tables.Dump(app.stdout)
			}

			f, err := output.Create(dest)
			if err != nil {
				return err
			}
			defer f.Abort()

			if err := tables.Dump(f); err != nil {
				return err
			}
			if err := f.Commit(); err != nil {
				return err
			}

			app.logger.Info(cmd.Context(), "Tables written", map[string]interface{}{"path": dest, "bytes": f.Written()})
			fmt.Fprintf(app.stdout, "%sWrote tables → %s\n", donePrefix(app.stdout), dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dest, "output", "o", "", "write to this file instead of stdout")

	return cmd
}
