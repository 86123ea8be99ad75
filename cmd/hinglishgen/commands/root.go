// Package commands implements the hinglishgen subcommands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"hinglishgen/internal/config"
	"hinglishgen/internal/corpus"
	"hinglishgen/internal/observability"
	contextutils "hinglishgen/internal/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/trace"
)

// App carries the state shared by every subcommand of one invocation
type App struct {
	cfg    *config.Config
	logger *observability.Logger
	tp     trace.TracerProvider
	mp     *metric.MeterProvider

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configFile string
	envFile    string
	logLevel   string
	tablesFile string
}

// Execute runs the CLI with args and returns the process exit code
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := &App{stdin: stdin, stdout: stdout, stderr: stderr, logger: observability.NewNopLogger()}
	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		app.logger.Error(ctx, "Command failed", err, map[string]interface{}{
			"severity": string(contextutils.GetErrorSeverity(err)),
		})
	}
	app.shutdown(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return contextutils.ExitCode(err)
	}
	return 0
}

// NewRootCommand builds the command tree around app
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hinglishgen",
		Short: "Hinglish NLU synthetic sample generator",
		Long: `Hinglish NLU synthetic sample generator

Writes labeled code-mixed Hindi-English training samples as JSON Lines.
Each sample pairs a noisy romanized utterance with its intent, slots and a
script-normalized rendering (Hindi in Devanagari, English in Latin).`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				fmt.Fprintf(app.stderr, "Error showing help: %v\n", err)
			}
		},
	}
	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn,
			"Invalid command line", err.Error(), err)
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.configFile, "config", "", "config file (default $"+config.ConfigFileEnv+" or ./"+config.DefaultConfigFile+")")
	flags.StringVar(&app.envFile, "env-file", "", "dotenv file loaded before the config (default ./"+config.DefaultEnvFile+" when present)")
	flags.StringVar(&app.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&app.tablesFile, "tables", "", "YAML file overriding sections of the built-in corpus tables")

	rootCmd.AddCommand(generateCmd(app))
	rootCmd.AddCommand(normalizeCmd(app))
	rootCmd.AddCommand(tablesCmd(app))
	rootCmd.AddCommand(versionCmd(app))

	return rootCmd
}

// setup loads .env and config, applies flag overrides, validates, and starts observability
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	if err := loadEnvFile(a.envFile); err != nil {
		return err
	}

	cfg, err := config.NewConfigFromFile(a.configFile)
	if err != nil {
		return err
	}
	if err := a.applyFlags(cmd, cfg); err != nil {
		return err
	}
	validate := cfg.ValidateShared
	if cmd.Name() == "generate" {
		validate = cfg.Validate
	}
	if err := validate(); err != nil {
		return err
	}

	level, err := observability.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}

	tp, mp, logger, err := observability.SetupObservability(&cfg.OpenTelemetry, "", level)
	if logger != nil {
		a.logger = logger
	}
	if err != nil {
		return contextutils.WrapError(err, "failed to initialize observability")
	}

	a.cfg, a.tp, a.mp = cfg, tp, mp
	a.logger.Debug(cmd.Context(), "Configuration loaded", map[string]interface{}{
		"command":     cmd.Name(),
		"config_file": a.configFile,
		"tables_file": cfg.Generator.TablesFile,
		"log_level":   cfg.Logging.Level,
	})
	return nil
}

// applyFlags copies explicitly set flags over the loaded configuration
func (a *App) applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	if changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if changed("tables") {
		cfg.Generator.TablesFile = a.tablesFile
	}
	if cmd.Name() != "generate" {
		return nil
	}

	var err error
	if changed("output") {
		cfg.Generator.OutputPath, err = flags.GetString("output")
		if err != nil {
			return err
		}
	}
	if changed("count") {
		cfg.Generator.Count, err = flags.GetInt("count")
		if err != nil {
			return err
		}
	}
	if changed("seed") {
		cfg.Generator.Seed, err = flags.GetInt64("seed")
		if err != nil {
			return err
		}
	}
	return nil
}

// loadTables reads the active corpus tables
func (a *App) loadTables() (*corpus.Tables, error) {
	return corpus.Load(a.cfg.Generator.TablesFile)
}

// shutdown flushes telemetry and logs
func (a *App) shutdown(ctx context.Context) {
	if err := observability.Shutdown(context.WithoutCancel(ctx), a.tp, a.mp); err != nil {
		a.logger.Warn(ctx, "Error shutting down telemetry providers", map[string]interface{}{"error": err.Error()})
	}
	_ = a.logger.Sync()
}

// loadEnvFile loads a dotenv file without overriding variables already set. The
// default file is optional; an explicitly named one must exist.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = config.DefaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeInvalidConfig, contextutils.SeverityFatal,
			"Failed to load env file", path, err)
	}
	return nil
}
