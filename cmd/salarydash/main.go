package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fr4nk3nst1ner/salarydash/internal/analytics"
	"github.com/fr4nk3nst1ner/salarydash/internal/client"
	"github.com/fr4nk3nst1ner/salarydash/internal/config"
	"github.com/fr4nk3nst1ner/salarydash/internal/dataset"
	"github.com/fr4nk3nst1ner/salarydash/internal/export"
	"github.com/fr4nk3nst1ner/salarydash/internal/logging"
	"github.com/fr4nk3nst1ner/salarydash/internal/ui"
	"github.com/fr4nk3nst1ner/salarydash/internal/web"
)

var (
	// Global flags
	configPath     string
	recordsPath    string
	categoriesPath string
	debug          bool

	// report flags
	bins       int
	silence    bool
	noBanner   bool
	noProgress bool

	// serve flags
	port  int
	watch bool

	// export flags
	exportFormat string
	exportTable  string
	exportOut    string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "salarydash",
	Short: "Salary analytics dashboard for pre-clustered job postings (CRC)",
	Long: `salarydash loads a row-level salary dataset labelled with a low/high salary
cluster and a per-category summary, and reports aggregate metrics, charts and a
currency-formatted summary table in the terminal, as files or over HTTP.

Run without a subcommand to print the terminal report.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runReport,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard to the terminal",
	RunE:  runReport,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard and JSON API over HTTP",
	RunE:  runServe,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the summary or cluster table as CSV or JSON",
	RunE:  runExport,
}

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Show usage examples",
	Run: func(cmd *cobra.Command, args []string) {
		printExamples(cmd.OutOrStdout())
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default: salarydash.yaml if present)")
	pf.StringVar(&recordsPath, "records", "", "Row-level salary CSV (path or http(s) URL)")
	pf.StringVar(&categoriesPath, "categories", "", "Category summary CSV (path or http(s) URL)")
	pf.BoolVar(&debug, "debug", false, "Enable debug logging")

	for _, cmd := range []*cobra.Command{rootCmd, reportCmd} {
		f := cmd.Flags()
		f.IntVar(&bins, "bins", analytics.DefaultBins, "Histogram bin count")
		f.BoolVar(&silence, "silence", false, "Silence the banner")
		f.BoolVar(&noBanner, "nobanner", false, "Silence the banner (alias for --silence)")
		f.BoolVar(&noProgress, "no-progress", false, "Hide load progress bars")
	}

	serveCmd.Flags().IntVar(&port, "port", 8080, "Web server port")
	serveCmd.Flags().BoolVar(&watch, "watch", false, "Watch input files and reload as soon as they change")

	exportCmd.Flags().StringVar(&exportFormat, "format", export.FormatCSV, "Output format: csv or json")
	exportCmd.Flags().StringVar(&exportTable, "table", export.TableSummary, "Table to export: summary or clusters")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")

	rootCmd.AddCommand(reportCmd, serveCmd, exportCmd, examplesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

// setup loads .env and the config file, applies flag overrides and builds the logger
func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnv(".env"); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if recordsPath != "" {
		cfg.Data.Records = recordsPath
	}
	if categoriesPath != "" {
		cfg.Data.Categories = categoriesPath
	}
	if flags.Changed("bins") {
		cfg.Report.Bins = bins
	}
	if silence || noBanner {
		cfg.Report.Banner = false
	}
	if noProgress {
		cfg.Report.Progress = false
	}
	if flags.Changed("port") {
		cfg.Web.Port = port
	}
	if watch {
		cfg.Web.Watch = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Format, debug)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded",
		zap.String("records", cfg.Data.Records),
		zap.String("categories", cfg.Data.Categories),
	)
	return nil
}

func newLoader(wrap dataset.ReaderWrapper) *dataset.Loader {
	httpClient := client.CreateHTTPClient(cfg.Data.Proxy)
	loader := dataset.NewLoader(
		dataset.NewSource(cfg.Data.Records, httpClient),
		dataset.NewSource(cfg.Data.Categories, httpClient),
		nil,
		logger,
	)
	loader.Wrap = wrap
	return loader
}

func newPipeline() *analytics.Pipeline {
	p := analytics.NewPipeline()
	p.Currency = cfg.Currency
	p.Bins = cfg.Report.Bins
	return p
}

// buildReport loads both tables once and runs the pipeline
func buildReport(ctx context.Context, showProgress bool) (*analytics.Report, error) {
	var wrap dataset.ReaderWrapper
	var progress *ui.LoadProgress
	if showProgress {
		progress = ui.NewLoadProgress(os.Stderr)
		wrap = progress.Wrap
	}

	ds, err := newLoader(wrap).Load(ctx)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		return nil, err
	}
	return newPipeline().Run(ds)
}

func runReport(cmd *cobra.Command, args []string) error {
	defer logger.Sync()

	ui.PrintBanner(!cfg.Report.Banner)

	report, err := buildReport(cmd.Context(), cfg.Report.Progress)
	if err != nil {
		return err
	}

	printer := ui.NewReportPrinter(cmd.OutOrStdout())
	printer.Currency = cfg.Currency
	return printer.Print(report)
}

func runExport(cmd *cobra.Command, args []string) error {
	defer logger.Sync()

	report, err := buildReport(cmd.Context(), false)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := export.Write(out, report, exportTable, exportFormat); err != nil {
		return err
	}
	if exportOut != "" {
		pterm.Success.Printfln("Wrote %s table to %s", exportTable, exportOut)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := newLoader(nil)

	// Fail fast on unreadable inputs; later failures are reported per request
	if _, err := loader.Load(ctx); err != nil {
		return err
	}

	if cfg.Web.Watch {
		watcher, err := dataset.NewWatcher(loader.Cache(), logger, loader.Records, loader.Categories)
		if err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer watcher.Stop()
	}

	server := web.NewServer(loader, newPipeline(), logger, web.Options{
		Username: cfg.Web.Username,
		Password: cfg.Web.Password,
	})
	return server.Run(ctx, fmt.Sprintf(":%d", cfg.Web.Port))
}
