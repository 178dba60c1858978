package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bisegni/qprint/pkg/config"
	"github.com/bisegni/qprint/pkg/database"
	"github.com/bisegni/qprint/pkg/engine"
	"github.com/bisegni/qprint/pkg/export"
	"github.com/bisegni/qprint/pkg/link"
	"github.com/bisegni/qprint/pkg/telemetry/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string

	// Loaded by the persistent pre-run of every command
	cfg *config.Config

	InteractiveMode bool
	QueryExplain    bool
	LinkMode        string
)

// exportFlags maps command line flags to export parameters. Only flags set
// on the command line override the configuration.
var exportFlags = []struct {
	flag, param, usage string
}{
	{"format", export.ParamFormat, "output format (csv, dsv)"},
	{"sep", export.ParamSep, "field separator"},
	{"separator", export.ParamSeparator, "field separator (dsv, wins over --sep)"},
	{"headers", export.ParamHeaders, "show or hide the header line"},
	{"limit", export.ParamLimit, "maximum number of rows"},
	{"mainlabel", export.ParamMainLabel, "label of the first column"},
	{"filename", export.ParamFilename, "suggested file name (dsv)"},
	{"searchlabel", export.ParamSearchLabel, "label of a generated link"},
}

var rootCmd = &cobra.Command{
	Use:   `qprint [file|-|JSON] "SELECT ..."`,
	Short: "Export JSON and JSONL query results as CSV or DSV",
	Long: `qprint runs a SELECT query over JSON or JSONL records and prints the
result as CSV or DSV, or as a link that reproduces the export later.

Input can be a file, stdin ("-" or piped) or inline JSON.

Examples:
  qprint people.jsonl "SELECT name, email WHERE age > 30"
  cat people.json | qprint "SELECT name, tags" --format dsv --sep ";"
  qprint people.jsonl "SELECT name" --link html --searchlabel "Download"
  qprint "SELECT name FROM people LIMIT 10" --config qprint.yaml
  qprint people.jsonl -i`,
	Args:              cobra.RangeArgs(0, 2),
	PersistentPreRunE: setup,
	RunE:              runExport,
	SilenceUsage:      true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "override log format (json, text, console)")

	for _, f := range exportFlags {
		rootCmd.Flags().String(f.flag, "", f.usage)
	}
	rootCmd.Flags().BoolVarP(&InteractiveMode, "interactive", "i", false, "Interactive REPL mode")
	rootCmd.Flags().BoolVar(&QueryExplain, "explain", false, "print the query plan instead of running it")
	rootCmd.Flags().StringVar(&LinkMode, "link", "", "print a link to the export instead (html, wiki)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(paramsCmd)
}

// setup loads the configuration and installs the default logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Telemetry.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Telemetry.Logging.Format = logFormat
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

// overrides collects the export flags given on the command line.
func overrides(cmd *cobra.Command) map[string]string {
	params := make(map[string]string)
	for _, f := range exportFlags {
		if cmd.Flags().Changed(f.flag) {
			params[f.param], _ = cmd.Flags().GetString(f.flag)
		}
	}
	return params
}

// newCatalog registers the configured datasets.
func newCatalog(c *config.Config) (*database.Catalog, error) {
	catalog := database.NewCatalog()
	if c.Server.DataDir != "" {
		n, err := catalog.LoadDir(c.Server.DataDir)
		if err != nil {
			return nil, err
		}
		slog.Debug("data directory loaded", "dir", c.Server.DataDir, "datasets", n)
	}
	for name, path := range c.Datasets {
		if err := catalog.RegisterFile(name, path); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

func hasStdin() bool {
	stat, err := os.Stdin.Stat()
	return err == nil && (stat.Mode()&os.ModeCharDevice) == 0
}

// isQuery tells a SELECT statement apart from an input argument.
func isQuery(arg string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(arg)), "SELECT")
}

func runExport(cmd *cobra.Command, args []string) error {
	opts, err := cfg.Export.Options(overrides(cmd))
	if err != nil {
		return err
	}

	var input, sql string
	switch len(args) {
	case 2:
		input, sql = args[0], args[1]
	case 1:
		if isQuery(args[0]) {
			sql = args[0]
			if hasStdin() {
				input = "-"
			}
		} else {
			input = args[0]
		}
	default:
		if !InteractiveMode {
			return cmd.Help()
		}
	}
	if input == "" && InteractiveMode && hasStdin() {
		input = "-"
	}

	catalog, err := newCatalog(cfg)
	if err != nil {
		return err
	}
	executor := engine.NewExecutor(catalog)

	if InteractiveMode {
		return RunInteractive(cmd, executor, input, opts)
	}
	if sql == "" {
		return fmt.Errorf("missing query: expected a SELECT statement")
	}

	var table database.Table
	if input != "" {
		table = database.NewJSONTable(input)
	}
	prepared, err := executor.Prepare(sql, table, opts.Limit)
	if err != nil {
		return err
	}
	if QueryExplain {
		fmt.Fprintln(cmd.OutOrStdout(), "Execution Plan:")
		fmt.Fprintln(cmd.OutOrStdout(), prepared.Explain())
		return nil
	}

	if LinkMode != "" {
		return printLink(cmd, input, sql, opts)
	}
	return printExport(cmd, prepared, opts)
}

func printExport(cmd *cobra.Command, prepared *engine.Prepared, opts *export.Options) error {
	printer, err := export.NewPrinter(opts, nil)
	if err != nil {
		return err
	}
	res, err := prepared.Open(opts.MainLabel)
	if err != nil {
		return err
	}
	defer res.Close()

	rows, err := printer.Write(cmd.OutOrStdout(), res)
	if err != nil {
		return fmt.Errorf("export failed after %d rows: %w", rows, err)
	}
	slog.Debug("export written", "format", opts.Format, "rows", rows)
	return nil
}

// printLink prints the deferred form of the export. The link targets the
// configured server; a local input file is passed as the file parameter.
func printLink(cmd *cobra.Command, input, sql string, opts *export.Options) error {
	mode, err := export.ParseOutputMode(LinkMode)
	if err != nil || mode == export.ModeFile {
		return fmt.Errorf("--link must be html or wiki, got %q", LinkMode)
	}

	links, err := link.NewBuilder(strings.TrimSuffix(cfg.Server.LinkBase(), "/") + "/export")
	if err != nil {
		return err
	}
	if input != "" && input != "-" && filepath.IsLocal(input) {
		links = links.With("file", filepath.ToSlash(input))
	}
	printer, err := export.NewPrinter(opts, links.With("q", sql))
	if err != nil {
		return err
	}
	out, err := printer.Print(nil, mode)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out.(*export.Link).Text)
	return nil
}
