package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/malund/ociwho/internal/output"
)

var (
	nameFlag        string
	summaryOnlyFlag bool
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users across all identity domains",
	Long: `List the users of every identity domain and of legacy IAM. With --name,
only users whose username or email contains the query are shown, and
domains without matches are hidden from table output.`,
	RunE: runUsers,
}

func init() {
	rootCmd.AddCommand(usersCmd)

	usersCmd.Flags().StringVar(&nameFlag, "name", "", "Only show users whose username or email contains this text")
	usersCmd.Flags().BoolVar(&summaryOnlyFlag, "summary-only", false, "Only show the per-domain summary table")
	usersCmd.Flags().StringVar(&domainGlobFlag, "domain", "", "Only scan domains matching this glob")
}

func runUsers(cmd *cobra.Command, args []string) error {
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

	rep, err := analyzer.ListUsers(cmd.Context(), nameFlag)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	rep.SummaryOnly = summaryOnlyFlag

	writer, closeOutput, err := openOutput()
	if err != nil {
		return err
	}
	defer closeOutput()

	renderer := output.NewRenderer(output.Format(opts.format), shouldUseColor(opts.color, writer))
	return renderer.RenderUsers(writer, rep)
}
