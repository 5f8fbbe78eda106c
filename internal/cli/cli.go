package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkarpinski/stadiums/internal/config"
	"github.com/mkarpinski/stadiums/internal/logger"
	"github.com/mkarpinski/stadiums/internal/scraper"
	"github.com/mkarpinski/stadiums/internal/stadium"
	"github.com/mkarpinski/stadiums/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagExcluded  []string
	flagPrefix    string
	flagFilename  string
	flagOutputDir string
	flagTimestamp bool
	flagFormat    string
)

// NewRootCmd creates the root command with its subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stadiums",
		Short: "Scrape football stadium data from stadiumdb.com",
		Long: `A CLI tool that scrapes football stadium data from stadiumdb.com
and its Polish counterpart stadiony.net, and dumps it as JSON files.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newDumpCmd())
	cmd.AddCommand(newCountriesCmd())

	return cmd
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump [COUNTRIES...]",
		Short: "Scrape stadiums of the given countries and dump them to a JSON file",
		Long: `Scrape stadiums of the given countries and dump them to a JSON file.

Countries can be given as two-letter IDs (e.g. 'pl'), full names
(e.g. 'Poland') or confederations (e.g. 'UEFA'). With no arguments all
countries are scraped.`,
		RunE: runDump,
	}

	cmd.Flags().StringArrayVarP(&flagExcluded, "excluded", "e", nil, "Countries to exclude (repeatable)")
	cmd.Flags().StringVarP(&flagPrefix, "prefix", "p", "", "Prefix for the dump file name")
	cmd.Flags().StringVarP(&flagFilename, "filename", "f", "", "Dump file name (overrides prefix and timestamp)")
	cmd.Flags().StringVarP(&flagOutputDir, "output-dir", "o", "", "Output directory (defaults to configured dir)")
	cmd.Flags().BoolVarP(&flagTimestamp, "timestamp", "t", true, "Append a timestamp to the dump file name")

	return cmd
}

func newCountriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List the countries available for scraping",
		RunE:  runCountries,
	}

	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")

	return cmd
}

func newScraper(cfg *config.Config) *scraper.Scraper {
	fetcher := scraper.NewHTTPFetcher(cfg.Timeout, cfg.RateLimitRPS)
	throttle := scraper.Throttle{Min: cfg.ThrottleMin, Max: cfg.ThrottleMax}
	return scraper.New(fetcher, scraper.NewDiagnostics(), throttle)
}

func runDump(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	logger.SetDefault(logger.New(logger.ParseLevel(cfg.LogLevel), os.Stderr))

	outputDir := cfg.OutputDir
	if flagOutputDir != "" {
		outputDir = flagOutputDir
	}
	store, err := storage.New(outputDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	sc := newScraper(cfg)

	all, err := sc.Countries()
	if err != nil {
		return fmt.Errorf("fetching country list: %w", err)
	}
	countries, err := scraper.ResolveCountries(all, args, flagExcluded)
	if err != nil {
		return err
	}

	logger.Info("starting dump", logger.Fields{
		"countries": len(countries),
		"output":    store.OutputDir(),
	})

	start := time.Now()
	var data []*stadium.CountryStadiumsData
	for _, country := range countries {
		countryData, err := sc.CountryStadiums(country)
		if err != nil {
			logger.Error("country scrape failed", logger.Fields{"country": country.Name}, err)
			continue
		}
		if countryData == nil {
			continue
		}
		data = append(data, countryData)
	}
	if len(data) == 0 {
		return fmt.Errorf("no stadium data scraped")
	}

	path, err := store.SaveDump(data, storage.Options{
		Prefix:    flagPrefix,
		Filename:  flagFilename,
		Timestamp: flagTimestamp,
	})
	if err != nil {
		return fmt.Errorf("saving dump: %w", err)
	}

	if !sc.Diagnostics().Empty() {
		diagPath, err := store.SaveDiagnostics(sc.Diagnostics().Unknown())
		if err != nil {
			logger.Warn("unable to save diagnostics", logger.Fields{"error": err.Error()})
		} else {
			logger.Info("unrecognized headers recorded", logger.Fields{"path": diagPath})
		}
	}

	WriteDumpSummary(os.Stdout, &DumpSummary{
		Path:      path,
		Countries: data,
		Elapsed:   time.Since(start),
	})
	return nil
}

func runCountries(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	logger.SetDefault(logger.New(logger.ParseLevel(cfg.LogLevel), os.Stderr))

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	sc := newScraper(cfg)
	countries, err := sc.Countries()
	if err != nil {
		return fmt.Errorf("fetching country list: %w", err)
	}

	return WriteCountries(os.Stdout, countries, format)
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
