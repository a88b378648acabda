package main

//
//  @title           floorsheet API
//  @version         1.0
//  @description     Buyer/seller broker activity aggregated from floorsheet records.
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/floorsheet
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        brokers
//  @tag.description Buyer/seller report rows
//
//  @tag.name        runs
//  @tag.description Pipeline run summaries
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/guttosm/floorsheet/config"
	_ "github.com/guttosm/floorsheet/docs" // swagger docs
	"github.com/guttosm/floorsheet/internal/app"
	"github.com/guttosm/floorsheet/internal/export"
	"github.com/guttosm/floorsheet/internal/ingestion"
	"github.com/guttosm/floorsheet/internal/logger"
	"github.com/guttosm/floorsheet/internal/metrics"
	"github.com/guttosm/floorsheet/internal/pipeline"
)

// Indirections over the Postgres-backed constructors; tests replace them.
var (
	storeOpener    = app.InitializeStore
	appInitializer = app.InitializeApp
)

// startServer initializes and starts the HTTP server in a separate goroutine.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown blocks until SIGINT or SIGTERM, then shuts the server
// down and runs cleanup.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runReport executes one pipeline run with the loaded configuration. m may
// be nil.
func runReport(ctx context.Context, out io.Writer, m *metrics.Metrics) error {
	cfg := config.AppConfig.Pipeline

	runner := pipeline.NewRunner(
		pipeline.Options{InputFiles: cfg.InputFiles, OutputFile: cfg.OutputFile, XLSXFile: cfg.OutputXLSX},
		ingestion.NewLoader(cfg.InputFiles, cfg.Parallel),
		export.NewTSVWriter(),
	)
	runner.Metrics = m
	if cfg.OutputXLSX != "" {
		runner.XLSX = export.NewXLSXWriter()
	}
	if config.AppConfig.Store.Enabled {
		repo, cleanup, err := storeOpener()
		if err != nil {
			return fmt.Errorf("%w: %v", pipeline.ErrPersistReport, err)
		}
		defer cleanup()
		runner.Store = repo
	}

	run, err := runner.Run(ctx)
	switch {
	case errors.Is(err, pipeline.ErrNoValidData):
		fmt.Fprintln(out, pipeline.ErrNoValidData.Error())
		return err
	case errors.Is(err, pipeline.ErrNothingToJoin):
		fmt.Fprintln(out, pipeline.ErrNothingToJoin.Error())
		return err
	case errors.Is(err, pipeline.ErrPersistReport):
		fmt.Fprintf(out, "Merged analysis exported to %s\n", run.OutputFile)
		return err
	case err != nil:
		return err
	}
	fmt.Fprintf(out, "Merged analysis exported to %s\n", run.OutputFile)
	return nil
}

// reportFlags overrides the pipeline configuration from the command line.
func reportFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSlice("input", nil, "Input floorsheet files, in order (overrides INPUT_FILES)")
	f.String("output", "", "Report output path (overrides OUTPUT_FILE)")
	f.String("xlsx", "", "Also write an Excel copy to this path (overrides OUTPUT_XLSX)")
	f.Int("parallel", 1, "How many input files to read concurrently (overrides LOAD_PARALLEL)")
	f.Bool("store", false, "Persist the report to Postgres (overrides STORE_ENABLED)")
}

// applyReportFlags copies explicitly set flags onto config.AppConfig.
func applyReportFlags(cmd *cobra.Command) error {
	f := cmd.Flags()
	cfg := &config.AppConfig
	if f.Changed("input") {
		in, err := f.GetStringSlice("input")
		if err != nil {
			return err
		}
		cfg.Pipeline.InputFiles = in
	}
	if f.Changed("output") {
		cfg.Pipeline.OutputFile, _ = f.GetString("output")
	}
	if f.Changed("xlsx") {
		cfg.Pipeline.OutputXLSX, _ = f.GetString("xlsx")
	}
	if f.Changed("parallel") {
		cfg.Pipeline.Parallel, _ = f.GetInt("parallel")
	}
	if f.Changed("store") {
		cfg.Store.Enabled, _ = f.GetBool("store")
	}
	if missing := cfg.Missing(); len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v", missing)
	}
	return nil
}

func newRootCmd(out io.Writer) *cobra.Command {
	reportRunE := func(cmd *cobra.Command, _ []string) error {
		if err := applyReportFlags(cmd); err != nil {
			return err
		}
		return runReport(cmd.Context(), out, nil)
	}

	root := &cobra.Command{
		Use:           "floorsheet",
		Short:         "Aggregate floorsheet trades into a buyer/seller report",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			config.LoadConfig()
			logger.Init()
		},
		RunE: reportRunE,
	}
	reportFlags(root)

	report := &cobra.Command{
		Use:   "report",
		Short: "Build the buyer/seller report from the configured input files",
		RunE:  reportRunE,
	}
	reportFlags(report)

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the stored report over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			port := config.AppConfig.Server.Port
			if cmd.Flags().Changed("port") {
				port, _ = cmd.Flags().GetString("port")
			}
			runFirst, _ := cmd.Flags().GetBool("run")
			if missing := config.AppConfig.Missing(); runFirst && len(missing) > 0 {
				return fmt.Errorf("missing required configuration: %v", missing)
			}
			m := metrics.New()

			router, cleanup, err := appInitializer(m)
			if err != nil {
				return err
			}

			if runFirst {
				if err := runReport(cmd.Context(), out, m); err != nil {
					logger.L().Error().Err(err).Int("exit_code", pipeline.ExitCode(err)).Msg("startup run failed")
				}
			}

			server := startServer(router, port)
			gracefulShutdown(cmd.Context(), server, cleanup)
			return nil
		},
	}
	serve.Flags().String("port", "8080", "Port for the API server (overrides SERVER_PORT)")
	serve.Flags().Bool("run", false, "Run the report pipeline once before serving")

	root.AddCommand(report, serve)
	return root
}

// execute runs the CLI and maps the outcome to a process exit code.
func execute(ctx context.Context, args []string, out, errOut io.Writer) int {
	cmd := newRootCmd(out)
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	err := cmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, pipeline.ErrNoValidData) && !errors.Is(err, pipeline.ErrNothingToJoin) {
		fmt.Fprintln(errOut, "Error:", err)
	}
	return pipeline.ExitCode(err)
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
