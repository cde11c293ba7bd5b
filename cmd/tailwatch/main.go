package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"tailwatch/internal/analyze"
	"tailwatch/internal/cache"
	"tailwatch/internal/config"
	"tailwatch/internal/provider"
	"tailwatch/internal/recorder"
	"tailwatch/internal/web"
	"tailwatch/pkg/model"
)

var (
	cfgFile string
	period  string
	format  string
	port    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tailwatch",
		Short: "Market index tail-risk analyzer",
		Long: `Tailwatch fetches historical daily closes for market indices, computes
log-return z-scores and compares the observed tail distribution against a
standard normal law.

Examples:
  tailwatch analyze
  tailwatch analyze SP500 NASDAQ --format json
  tailwatch serve --port 8000`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [ticker...]",
		Short: "Analyze one or more configured indices (default: all)",
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().StringVar(&period, "period", "", "history range: 1y, 5y, 10y, max (default from config)")
	analyzeCmd.Flags().StringVar(&format, "format", "table", "output format: table, json")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis web form",
		RunE:  runServe,
	}
	serveCmd.Flags().IntVar(&port, "port", 0, "listen port (default from config)")

	rootCmd.AddCommand(analyzeCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup() (*config.Config, *analyze.Analyzer, recorder.Recorder, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if period != "" {
		cfg.Period = period
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	var providers []provider.Provider
	if cfg.API.AlphaVantage.Key != "" {
		providers = append(providers, provider.NewAlphaVantageProvider(cfg.API.AlphaVantage.Key, cfg.API.AlphaVantage.RateLimit))
	}
	// Yahoo Finance (always available, no API key)
	providers = append(providers, provider.NewYahooProvider())

	source := provider.NewCachingProvider(
		provider.NewFallbackProvider(providers...),
		cache.NewFileStore(cfg.DataDir),
	)

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.HistoryDB != "" {
		rec, err = recorder.NewSQLiteRecorder(cfg.HistoryDB)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening history db: %w", err)
		}
	}

	return cfg, analyze.New(cfg, source, rec), rec, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, analyzer, rec, err := setup()
	if err != nil {
		return err
	}
	defer rec.Close()

	tickers := args
	if len(tickers) == 0 {
		tickers = cfg.TickerNames()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted. Stopping analysis...")
		cancel()
	}()

	var bar *progressbar.ProgressBar
	if format == "table" && len(tickers) > 1 {
		bar = progressbar.NewOptions(len(tickers),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Analyzing"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]█[reset]",
				SaucerHead:    "[green]█[reset]",
				SaucerPadding: "░",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}

	asOf := time.Now()
	var results []*model.AnalysisResult
	for i, ticker := range tickers {
		result, err := analyzer.Run(ctx, ticker, asOf)
		if err != nil {
			if bar != nil {
				bar.Finish()
				fmt.Println()
			}
			return fmt.Errorf("analyzing %s: %w", ticker, err)
		}
		results = append(results, result)
		if bar != nil {
			bar.Set(i + 1)
		}
	}

	if bar != nil {
		bar.Finish()
		fmt.Println()
	}

	if format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	for _, result := range results {
		printResult(result)
	}
	return nil
}

func printResult(result *model.AnalysisResult) {
	fmt.Printf("\nDistribution Analysis: %s (%s)\n", result.Ticker, result.Symbol)
	fmt.Printf("Total days: %d | %s\n", result.Summary.DataPoints, result.Summary.DateRange())
	fmt.Printf("Mean daily return: %.6f | Stddev: %.6f\n\n", result.Summary.MeanReturn, result.Summary.StdDevReturn)

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Threshold", "Observed", "Expected (Normal)", "Difference"}),
	)

	for _, row := range result.Report.Rows {
		table.Append([]string{
			fmt.Sprintf("|Z| > %.0fσ", row.Threshold),
			fmt.Sprintf("%d (%.2f%%)", row.ObservedCount, row.ObservedPct),
			fmt.Sprintf("%.1f (%.2f%%)", row.ExpectedCount, row.ExpectedPct),
			fmt.Sprintf("%+.1f (%+.2f%%)", row.DiffCount, row.DiffPct),
		})
	}

	table.Render()
	fmt.Printf("\nPlot: %s\nCSV:  %s\n", result.PlotPath, result.CSVPath)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, analyzer, rec, err := setup()
	if err != nil {
		return err
	}
	defer rec.Close()

	if port == 0 {
		port = cfg.Server.Port
	}

	server, err := web.NewServer(cfg, analyzer)
	if err != nil {
		return err
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(port)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
		fmt.Println("\nShutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}
