package commands

import (
	"bufio"
	"fmt"
	"strings"

	"hinglishgen/internal/services"
	contextutils "hinglishgen/internal/utils"

	"github.com/spf13/cobra"
)

// normalizeCmd returns the normalize command
func normalizeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [text...]",
		Short: "Print the script-normalized form of text",
		Long: `Print the script-normalized form of text.

Arguments are joined with single spaces and normalized as one utterance. With
no arguments every line read from stdin is normalized and printed in turn.`,
		Example: `  hinglishgen normalize "bhai kal subah call yaad dila"
  cat inputs.txt | hinglishgen normalize`,
		RunE: app.runNormalize,
	}
}

func (a *App) runNormalize(cmd *cobra.Command, args []string) error {
	tables, err := a.loadTables()
	if err != nil {
		return err
	}
	normalizer := services.NewScriptNormalizer(tables)

	if len(args) > 0 {
		fmt.Fprintln(a.stdout, normalizer.Normalize(strings.Join(args, " ")))
		return nil
	}

	lines := 0
	scanner := bufio.NewScanner(a.stdin)
	for scanner.Scan() {
		fmt.Fprintln(a.stdout, normalizer.Normalize(scanner.Text()))
		lines++
	}
	if err := scanner.Err(); err != nil {
		return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeInvalidInput, contextutils.SeverityError,
			"Failed to read stdin", err.Error(), err)
	}

	a.logger.Debug(cmd.Context(), "Normalized stdin", map[string]interface{}{"lines": lines})
	return nil
}
