package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/catload/internal/checksum"
	"github.com/vvka-141/catload/internal/cleaner"
	"github.com/vvka-141/catload/internal/config"
	"github.com/vvka-141/catload/internal/files/filesystem"
	"github.com/vvka-141/catload/internal/files/loader"
	"github.com/vvka-141/catload/internal/logging"
	"github.com/vvka-141/catload/internal/services"
	"github.com/vvka-141/catload/internal/store"
	"github.com/vvka-141/catload/pkg/catload"
)

type runFlagValues struct {
	configPath string
	relation   string
	separator  string
	logFormat  string
}

var runFlags runFlagValues

var rootCmd = &cobra.Command{
	Use:   "catload <messages> <categories> <output>",
	Short: "Merge, clean and store categorized messages",
	Long: `catload reads a messages dataset and a categories dataset, joins them on id,
splits the combined category string into one integer column per category,
drops rows with an out-of-domain related flag and exact duplicates, and
replaces the message_categories table in the output database.

Sources are CSV files with a header row, or .xlsx workbooks.
The output is a SQLite file path or a postgres:// connection URL.

Exit Codes:
  0  - Success
  1  - Any failure (usage, missing input, malformed data, storage)
  3  - Panic or unexpected system error`,
	Example: `  catload disaster_messages.csv disaster_categories.csv DisasterResponse.db
  catload messages.xlsx categories.xlsx postgres://localhost/etl --table labelled`,
	Args:         RequireInputPaths,
	RunE:         runPipeline,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	bindRunFlags(rootCmd, &runFlags)
}

func bindRunFlags(cmd *cobra.Command, v *runFlagValues) {
	cmd.Flags().StringVar(&v.configPath, "config", "",
		"Path to a config file (default ./"+catload.DefaultConfigFile+" when present)")
	cmd.Flags().StringVar(&v.relation, "table", "",
		"Name of the output table (default "+catload.DefaultRelation+")")
	cmd.Flags().StringVar(&v.separator, "separator", "",
		"Separator between category tokens (default \""+catload.DefaultSeparator+"\")")
	cmd.Flags().StringVar(&v.logFormat, "log-format", "",
		"Log output format: text or json (default text)")
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

func runPipeline(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	settings, err := resolveSettings(cmd, &runFlags, os.LookupEnv)
	if err != nil {
		return err
	}

	logger, flush := newLogger(cmd.OutOrStdout(), settings.LogFormat, verbose)
	defer flush()

	cfg := catload.PipelineConfig{
		MessagesPath:   args[0],
		CategoriesPath: args[1],
		Destination:    args[2],
		Relation:       settings.Relation,
		Options:        settings.CleanOptions(),
	}

	pipeline := services.NewPipeline(
		loader.NewLoader(filesystem.NewOSFileSystem(), checksum.New(), cfg.Options),
		cleaner.New(cfg.Options),
		store.Open,
		logger,
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return pipeline.Run(ctx, cfg)
}

// resolveSettings merges defaults, the config file, the environment and flags,
// in increasing order of precedence.
func resolveSettings(cmd *cobra.Command, flags *runFlagValues, lookup func(string) (string, bool)) (config.Settings, error) {
	_ = godotenv.Load()

	settings := config.Defaults()

	projectCfg, err := loadProjectConfig(flags.configPath)
	if err != nil {
		return config.Settings{}, err
	}
	projectCfg.Apply(&settings)

	config.ApplyEnv(&settings, lookup)

	if cmd.Flags().Changed("table") {
		settings.Relation = flags.relation
	}
	if cmd.Flags().Changed("separator") {
		settings.Separator = flags.separator
	}
	if cmd.Flags().Changed("log-format") {
		settings.LogFormat = flags.logFormat
	}

	if err := settings.Validate(); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

// loadProjectConfig loads the config file.
// A missing default file is not an error; a missing explicit one is.
func loadProjectConfig(path string) (*config.ProjectConfig, error) {
	explicit := path != ""
	if !explicit {
		path = catload.DefaultConfigFile
	}

	projectCfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !explicit {
			return nil, nil
		}
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("config file %s not found: %w", path, catload.ErrInvalidConfig)
		}
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return projectCfg, nil
}

// newLogger returns the logger for format and a function flushing it.
func newLogger(out io.Writer, format string, verbose bool) (catload.Logger, func()) {
	if format == config.LogFormatJSON {
		zl := logging.NewZapLogger(out, verbose)
		return zl, func() { _ = zl.Sync() }
	}
	return logging.NewConsoleLogger(out, verbose), func() {}
}
