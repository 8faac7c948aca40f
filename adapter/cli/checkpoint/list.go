package checkpoint

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/turnout/adapter/cli"
	"github.com/felixgeelhaar/turnout/internal/attendance/application/queries"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/spf13/cobra"
)

var listDate string

var listCmd = &cobra.Command{
	Use:     "list [qr-code]",
	Short:   "List the checkpoints in effect for an event",
	Aliases: []string{"ls"},
	Long: `List the checkpoints in effect for an event on a given date.

Event-level checkpoints are combined with that date's session
checkpoints, filtered by day applicability, and sorted by order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListCheckpointsHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		query := queries.ListCheckpointsQuery{QRCode: args[0]}
		if listDate != "" {
			parsed, err := sharedDomain.ParseDate(listDate)
			if err != nil {
				return fmt.Errorf("invalid --date format, use YYYY-MM-DD: %w", err)
			}
			query.Date = parsed
		} else {
			query.Date = sharedDomain.DateOf(time.Now().UTC())
		}

		ctx := cmd.Context()
		checkpoints, err := app.ListCheckpointsHandler.Handle(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to list checkpoints: %w", err)
		}

		if len(checkpoints) == 0 {
			fmt.Println("No checkpoints in effect.")
			return nil
		}

		fmt.Printf("Checkpoints (%d):\n", len(checkpoints))
		for _, c := range checkpoints {
			required := ""
			if !c.IsRequired {
				required = " (optional)"
			}
			fmt.Printf("  %-10s %s%s\n", c.Type, c.Name, required)
			fmt.Printf("     code:   %s\n", c.Code)
			fmt.Printf("     window: %s-%s\n", c.WindowStart, c.WindowEnd)
		}

		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listDate, "date", "", "date to evaluate applicability on (YYYY-MM-DD, defaults to today)")
}
