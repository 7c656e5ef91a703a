package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/malund/ociwho/internal/output"
)

// domainGlobFlag narrows the scan to domains matching a glob. Shared by the
// domains and users commands.
var domainGlobFlag string

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List identity domains",
	Long: `List the identity domains of the tenancy, including a synthetic entry
for the legacy IAM realm rooted at the tenancy.`,
	RunE: runDomains,
}

func init() {
	rootCmd.AddCommand(domainsCmd)

	domainsCmd.Flags().StringVar(&domainGlobFlag, "domain", "", "Only show domains matching this glob")
}

// applyDomainGlob lets --domain override the config file's domain patterns
func applyDomainGlob(opts *options) {
	if domainGlobFlag != "" {
		opts.scan.Domains = []string{domainGlobFlag}
	}
}

func runDomains(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	applyDomainGlob(opts)

	logger := newLogger()
	analyzer, err := newAnalyzer(opts, logger)
	if err != nil {
		return err
	}

	rep, err := analyzer.ListDomains(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list domains: %w", err)
	}

	writer, closeOutput, err := openOutput()
	if err != nil {
		return err
	}
	defer closeOutput()

	renderer := output.NewRenderer(output.Format(opts.format), shouldUseColor(opts.color, writer))
	return renderer.RenderDomains(writer, rep)
}
