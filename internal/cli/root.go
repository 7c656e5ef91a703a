// Package cli implements the ociwho command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/malund/ociwho/internal/analysis"
	"github.com/malund/ociwho/internal/config"
	"github.com/malund/ociwho/internal/namefilter"
	"github.com/malund/ociwho/internal/oci"
)

// domainScanDelay is the pause between identity-domain scans
const domainScanDelay = 500 * time.Millisecond

var (
	versionStr string
	commitStr  string
	dateStr    string
)

// Global flags
var (
	configFlag  string
	profileFlag string
	formatFlag  string
	outputFlag  string
	colorFlag   string
	quietFlag   bool
	verboseFlag bool
)

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	versionStr = version
	commitStr = commit
	dateStr = date
}

var rootCmd = &cobra.Command{
	Use:   "ociwho",
	Short: "OCI identity reporting tool",
	Long: `ociwho reports who exists and who can do what in an OCI tenancy.

It lists identity domains, users, and compartments, and analyzes which
policy statements apply to a user through their group memberships, across
both legacy IAM and identity domains.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to .ociwho.hcl config file")
	rootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "OCI config profile to use")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "", "Output format: table, csv, json")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "Write output to file instead of stdout")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "", "Color mode: auto, always, never")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose logging")
}

// options is the effective configuration after merging flags over the
// config file. Flags win.
type options struct {
	profile   string
	ociConfig string
	format    string
	color     string
	scan      *config.ScanConfig
}

// loadOptions loads the config file and applies flag overrides
func loadOptions() (*options, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}

	opts := &options{
		profile:   cfg.Profile,
		ociConfig: cfg.OCIConfig,
		format:    cfg.Output.Format,
		color:     cfg.Output.Color,
		scan:      cfg.Scan,
	}

	if profileFlag != "" {
		opts.profile = profileFlag
	}
	if formatFlag != "" {
		opts.format = formatFlag
	}
	if colorFlag != "" {
		opts.color = colorFlag
	}

	if !config.ValidFormat(opts.format) {
		return nil, fmt.Errorf("invalid output format: %s (must be 'table', 'csv', or 'json')", opts.format)
	}
	if !config.ValidColor(opts.color) {
		return nil, fmt.Errorf("invalid color mode: %s (must be 'auto', 'always', or 'never')", opts.color)
	}

	return opts, nil
}

// newLogger creates the CLI logger, writing to stderr so reports on stdout
// stay machine-readable
func newLogger() hclog.Logger {
	level := hclog.Info
	if verboseFlag {
		level = hclog.Debug
	}
	if quietFlag {
		level = hclog.Error
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "ociwho",
		Level:  level,
		Output: os.Stderr,
	})
}

// newAnalyzer connects to OCI and builds an analyzer with the configured
// scan filters
func newAnalyzer(opts *options, logger hclog.Logger) (*analysis.Analyzer, error) {
	client, err := oci.NewClient(opts.ociConfig, opts.profile, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create OCI client: %w", err)
	}

	analyzer := analysis.NewAnalyzer(client, client, logger)
	analyzer.DomainDelay = domainScanDelay

	if len(opts.scan.IncludeCompartments) > 0 || len(opts.scan.ExcludeCompartments) > 0 {
		filter := namefilter.New(opts.scan.IncludeCompartments, opts.scan.ExcludeCompartments)
		if err := filter.Validate(); err != nil {
			return nil, err
		}
		analyzer.CompartmentFilter = filter
	}
	if len(opts.scan.Domains) > 0 {
		filter := namefilter.New(opts.scan.Domains, nil)
		if err := filter.Validate(); err != nil {
			return nil, err
		}
		analyzer.DomainFilter = filter
	}

	return analyzer, nil
}

// openOutput returns the report writer, creating the --output file when set
func openOutput() (io.Writer, func() error, error) {
	if outputFlag == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outputFlag)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// shouldUseColor decides whether table output is colorized. Files and pipes
// never get color in auto mode.
func shouldUseColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // auto
		f, ok := w.(*os.File)
		if !ok {
			return false
		}
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
}
