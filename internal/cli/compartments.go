package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/malund/ociwho/internal/output"
)

var (
	compartmentFlags        []string
	excludeCompartmentFlags []string
)

var compartmentsCmd = &cobra.Command{
	Use:   "compartments",
	Short: "List active compartments",
	Long: `List the active compartments of the tenancy with their hierarchical
paths, the tenancy root first.`,
	RunE: runCompartments,
}

func init() {
	rootCmd.AddCommand(compartmentsCmd)

	compartmentsCmd.Flags().StringArrayVar(&compartmentFlags, "compartment", nil, "Only show compartments whose path matches this glob (repeatable)")
	compartmentsCmd.Flags().StringArrayVar(&excludeCompartmentFlags, "exclude-compartment", nil, "Hide compartments whose path matches this glob (repeatable)")
}

// applyCompartmentGlobs lets the compartment flags override the config
// file's patterns
func applyCompartmentGlobs(opts *options) {
	if len(compartmentFlags) > 0 {
		opts.scan.IncludeCompartments = compartmentFlags
	}
	if len(excludeCompartmentFlags) > 0 {
		opts.scan.ExcludeCompartments = excludeCompartmentFlags
	}
}

func runCompartments(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	applyCompartmentGlobs(opts)

	logger := newLogger()
	analyzer, err := newAnalyzer(opts, logger)
	if err != nil {
		return err
	}

	rep, err := analyzer.ListCompartments(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list compartments: %w", err)
	}

	writer, closeOutput, err := openOutput()
	if err != nil {
		return err
	}
	defer closeOutput()

	renderer := output.NewRenderer(output.Format(opts.format), shouldUseColor(opts.color, writer))
	return renderer.RenderCompartments(writer, rep)
}
