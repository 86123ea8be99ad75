package commands

import (
	"fmt"
	"io"
	"math/rand"
	"os"

	"hinglishgen/internal/config"
	"hinglishgen/internal/observability"
	"hinglishgen/internal/services"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// generateCmd returns the generate command
func generateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a JSON Lines file of labeled samples",
		Long: `Generate N labeled samples and write them as JSON Lines.

The run is deterministic: the same seed, count and tables always produce a
byte-identical file. The destination only changes once every sample has been
written; on failure any previous file is left untouched.`,
		Args: cobra.NoArgs,
		RunE: app.runGenerate,
	}

	cmd.Flags().StringP("output", "o", config.DefaultOutputPath, "output file path")
	cmd.Flags().IntP("count", "n", config.DefaultSampleCount, "number of samples to generate")
	cmd.Flags().Int64("seed", config.DefaultSeed, "random seed")

	return cmd
}

func (a *App) runGenerate(cmd *cobra.Command, _ []string) (err error) {
	gc := a.cfg.Generator
	ctx, span := observability.TraceFunction(cmd.Context(), "cli", "generate",
		observability.AttributeSeed(gc.Seed),
		observability.AttributeCount(gc.Count),
	)
	defer observability.FinishSpan(span, &err)

	logger := a.logger.With(map[string]interface{}{"run_id": uuid.NewString()})

	tables, err := a.loadTables()
	if err != nil {
		logger.Error(ctx, "Failed to load corpus tables", err, map[string]interface{}{"tables_file": gc.TablesFile})
		return err
	}

	metrics, err := observability.NewGeneratorMetrics()
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(gc.Seed))
	generator := services.NewGeneratorServiceWithLogger(tables, rng, gc.Instruction, metrics, logger)
	batch := services.NewBatchServiceWithLogger(generator, logger)

	logger.Info(ctx, "Starting generation", map[string]interface{}{
		"count":  gc.Count,
		"seed":   gc.Seed,
		"output": gc.OutputPath,
		"frames": len(tables.Frames),
	})

	result, err := batch.Run(ctx, gc.Count, gc.OutputPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "%sGenerated %d samples → %s\n", donePrefix(a.stdout), result.Count, result.Path)
	return nil
}

// donePrefix decorates the completion message on interactive terminals only
func donePrefix(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "✅ "
	}
	return ""
}
