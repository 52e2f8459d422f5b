package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pitwatch/kcbs-events/internal/config"
	"github.com/pitwatch/kcbs-events/internal/extract"
	"github.com/pitwatch/kcbs-events/internal/kcbs"
	"github.com/pitwatch/kcbs-events/internal/logger"
	"github.com/pitwatch/kcbs-events/internal/report"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagZipcode   string
	flagRadius    string
	flagOutput    string
	flagFormat    string
	flagVerifyTLS bool
	flagVerbose   bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kcbs-events",
		Short: "Search KCBS competitions within a radius of a ZIP code",
		Long: `Searches the KCBS member site for barbecue competitions within a radius of
a ZIP code over the next year and writes a pipe-delimited report file.`,
		SilenceUsage: true,
		RunE:         runSearch,
	}

	// Define flags
	cmd.Flags().StringVar(&flagZipcode, "zipcode", "", "ZIP code to search around (default: env ZIPCODE)")
	cmd.Flags().StringVar(&flagRadius, "radius", "", fmt.Sprintf("Search radius in miles (default %q)", config.DefaultRadiusMiles))
	cmd.Flags().StringVar(&flagOutput, "output", "", fmt.Sprintf("Report file path (default %q)", config.DefaultOutputFile))
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Summary format: text or json")
	cmd.Flags().BoolVar(&flagVerifyTLS, "verify-tls", false, "Verify the endpoint's TLS certificate (off by default; the member site has served bad certificates)")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runSearch is the main command logic
func runSearch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	applyFlags(cfg)

	if cfg.Verbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	begin, end := kcbs.DateWindow(time.Now())
	fmt.Fprintf(os.Stderr, "Searching for events within %s miles of %s...\n", cfg.RadiusMiles, cfg.Zipcode)
	fmt.Fprintf(os.Stderr, "Date range: %s to %s\n", begin, end)

	client := kcbs.New(cfg)
	payload, err := client.SearchByRadius(cfg.Zipcode, cfg.RadiusMiles)
	if err != nil {
		// Transport and decode failures degrade to "no data": the empty
		// report is still written and the exit code signals no results.
		logger.Error("event search failed", logger.Fields{
			"zipcode": cfg.Zipcode,
			"radius":  cfg.RadiusMiles,
		}, err)
		payload = nil
	}

	records := extract.Records(payload)
	fmt.Fprintf(os.Stderr, "Found %d events\n", len(records))

	events := extract.Events(records)
	lines := make([]string, 0, len(events))
	for _, evt := range events {
		lines = append(lines, evt.Line())
	}

	if err := report.Write(cfg.OutputFile, lines); err != nil {
		return err
	}

	result := &Result{
		SearchedAt: time.Now().UTC(),
		Zipcode:    cfg.Zipcode,
		Radius:     cfg.RadiusMiles,
		DateBegin:  begin,
		DateEnd:    end,
		OutputFile: cfg.OutputFile,
		EventCount: len(events),
		Events:     events,
	}
	if err := WriteResult(os.Stdout, result, format); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	// Zero qualifying events still signals non-success to automation.
	if len(events) == 0 {
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)

	return nil
}

// applyFlags overlays explicit flags onto the environment-derived config.
func applyFlags(cfg *config.Config) {
	if flagZipcode != "" {
		cfg.Zipcode = strings.TrimSpace(flagZipcode)
	}
	if flagRadius != "" {
		cfg.RadiusMiles = flagRadius
	}
	if flagOutput != "" {
		cfg.OutputFile = flagOutput
	}
	if flagVerifyTLS {
		cfg.InsecureTLS = false
	}
	cfg.Verbose = flagVerbose
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
