package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/malund/ociwho/internal/output"
)

var policiesCmd = &cobra.Command{
	Use:   "policies <user_id>",
	Short: "Show policy statements that apply to a user",
	Long: `Analyze which policy statements apply to a user through their group
memberships. The user id is either a legacy IAM OCID (ocid1.user....)
or an identity domain user id; domain users are located by probing each
active domain in order.

Compartment OCIDs inside matching statements are translated to
compartment names.`,
	Example: `  ociwho policies ocid1.user.oc1..aaaaexample
  ociwho policies 81a9295fd751480daec690c975029513`,
	Args: cobra.ExactArgs(1),
	RunE: runPolicies,
}

func init() {
	rootCmd.AddCommand(policiesCmd)

	policiesCmd.Flags().StringArrayVar(&compartmentFlags, "compartment", nil, "Only scan compartments whose path matches this glob (repeatable)")
	policiesCmd.Flags().StringArrayVar(&excludeCompartmentFlags, "exclude-compartment", nil, "Skip compartments whose path matches this glob (repeatable)")
	policiesCmd.Flags().StringVar(&domainGlobFlag, "domain", "", "Only probe domains matching this glob")
}

// validateUserID rejects ids that cannot possibly name a user
func validateUserID(userID string) error {
	if len(userID) < 10 {
		return fmt.Errorf("invalid user id: %s", userID)
	}
	return nil
}

func runPolicies(cmd *cobra.Command, args []string) error {
	userID := args[0]
	if err := validateUserID(userID); err != nil {
		return err
	}

	opts, err := loadOptions()
	if err != nil {
		return err
	}
	applyCompartmentGlobs(opts)
	applyDomainGlob(opts)

	logger := newLogger()
	analyzer, err := newAnalyzer(opts, logger)
	if err != nil {
		return err
	}

	rep, err := analyzer.AnalyzeUser(cmd.Context(), userID)
	if err != nil {
		return fmt.Errorf("failed to analyze user: %w", err)
	}

	writer, closeOutput, err := openOutput()
	if err != nil {
		return err
	}
	defer closeOutput()

	renderer := output.NewRenderer(output.Format(opts.format), shouldUseColor(opts.color, writer))
	return renderer.RenderPolicies(writer, rep)
}
