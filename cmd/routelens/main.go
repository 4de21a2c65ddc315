package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/RouteLens/routelens/internal/logger"
	"github.com/RouteLens/routelens/internal/output"
	"github.com/RouteLens/routelens/internal/watch"
	"github.com/RouteLens/routelens/pkg/audit"
)

var (
	version = "1.0.0"

	// Global flags
	configFile string
	verbose    bool
	debug      bool

	// Scan flags
	workers      int
	specRoot     string
	specFiles    []string
	outputFile   string
	outputFormat string
	pretty       bool
	stateFile    string

	// Watch flags
	debounceMs int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "routelens",
		Short: "RouteLens - REST API coverage auditor",
		Long: `RouteLens - Static REST endpoint extraction and API coverage auditing.

Scans Java and Scala source trees for REST endpoints (Spring, Play, Akka HTTP,
http4s), discovers OpenAPI and Swagger specifications, and reports which
endpoints the specifications cover.`,
		Version: version,
	}

	scanCmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Scan a source tree",
		Long:  "Scan a source tree for REST endpoints and report specification coverage.",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}

	watchCmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Rescan on file changes",
		Long:  "Scan a source tree, then rescan whenever source or specification files change.",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("routelens %s\n", version)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug mode")

	for _, cmd := range []*cobra.Command{scanCmd, watchCmd} {
		cmd.Flags().IntVarP(&workers, "workers", "w", 8, "Number of concurrent extraction workers")
		cmd.Flags().StringVar(&specRoot, "spec-root", "", "Root to search for specifications (default: scan root)")
		cmd.Flags().StringArrayVar(&specFiles, "spec", nil, "Explicit specification file (repeatable; skips discovery)")
		cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
		cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, csv)")
		cmd.Flags().BoolVar(&pretty, "pretty", true, "Pretty-print JSON output")
		cmd.Flags().StringVar(&stateFile, "state-file", "", "History database for run-to-run diffs")
	}
	watchCmd.Flags().IntVar(&debounceMs, "debounce", 300, "Debounce window in milliseconds")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildConfig assembles the effective configuration from defaults, the
// optional config file and command-line flags. Flags take precedence.
func buildConfig(cmd *cobra.Command, root string) (*audit.Config, error) {
	config := audit.DefaultConfig()

	if configFile != "" {
		fileConfig, err := audit.LoadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		config = fileConfig
	}

	config.Root = root

	if cmd.Flags().Changed("workers") {
		config.Workers = workers
	}
	if cmd.Flags().Changed("spec-root") {
		config.SpecRoot = specRoot
	}
	if cmd.Flags().Changed("spec") {
		config.SpecFiles = specFiles
	}
	if cmd.Flags().Changed("output") {
		config.Output.FilePath = outputFile
	}
	if cmd.Flags().Changed("format") {
		config.Output.Format = outputFormat
	}
	if cmd.Flags().Changed("pretty") {
		config.Output.Pretty = pretty
	}
	if cmd.Flags().Changed("state-file") {
		config.State.FilePath = stateFile
		config.State.Enabled = true
	}

	config.Verbose = verbose
	config.Debug = debug

	return config, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	config, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	a, err := audit.New(audit.WithConfig(config))
	if err != nil {
		return fmt.Errorf("failed to create auditor: %w", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	report, err := a.Run(ctx)
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if report != nil && config.Output.FilePath != "" {
		printSummary(report, time.Since(start))
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	config, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	level := logger.InfoLevel
	if verbose {
		level = logger.DebugLevel
	}
	log := logger.New(logger.Config{Level: level, Pretty: true, Component: "watch"})

	rescan := func() {
		a, err := audit.New(audit.WithConfig(config))
		if err != nil {
			log.WithError(err).Error("Failed to create auditor")
			return
		}
		if _, err := a.Run(context.Background()); err != nil {
			log.WithError(err).Error("Scan failed")
		}
	}

	// Initial scan before entering the watch loop.
	rescan()

	ctx, cancel := signalContext()
	defer cancel()

	stop := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(stop)
	}()

	w := watch.New(args[0], time.Duration(debounceMs)*time.Millisecond, log, rescan)
	log.WithField("root", args[0]).Info("Watching for changes")
	return w.Run(stop)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, stopping...\n")
		cancel()
	}()

	return ctx, cancel
}

func printSummary(report *output.ScanReport, duration time.Duration) {
	fmt.Println()
	fmt.Println("Scan Summary")
	fmt.Println("------------")
	fmt.Printf("Duration:        %v\n", duration.Round(time.Millisecond))
	fmt.Printf("Files Scanned:   %d/%d\n", report.Stats.FilesScanned, report.Stats.FilesTotal)
	fmt.Printf("Endpoints Found: %d\n", report.Stats.EndpointsFound)
	fmt.Printf("Covered:         %d\n", report.Stats.Covered)
	fmt.Printf("Not Covered:     %d\n", report.Stats.NotCovered)
	fmt.Printf("No Spec Found:   %d\n", report.Stats.NoSpec)
	fmt.Printf("Errors:          %d\n", report.Stats.ErrorCount)
	if report.Stats.EndpointsFound > 0 && report.Stats.NoSpec == 0 {
		fmt.Printf("Coverage:        %.1f%%\n", report.CoveragePercent())
	}
	fmt.Println()
}
