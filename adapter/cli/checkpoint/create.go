package checkpoint

import (
	"fmt"

	"github.com/felixgeelhaar/turnout/adapter/cli"
	"github.com/felixgeelhaar/turnout/internal/attendance/application/commands"
	"github.com/felixgeelhaar/turnout/internal/attendance/domain"
	sharedDomain "github.com/felixgeelhaar/turnout/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	ownerKind      string
	checkpointType string
	description    string
	requiredTime   string
	graceMinutes   int
	appliesTo      string
	specificDate   string
	notRequired    bool
	order          int
)

var createCmd = &cobra.Command{
	Use:   "create [owner-id] [name]",
	Short: "Create a checkpoint",
	Long: `Create a checkpoint on an event or session.

The checkpoint's attendance window runs from the required time minus
the grace period to the required time plus the grace period. Scans
inside the window are on_time, after it late, before it early.

Examples:
  turnout checkpoint create 4e2f... "Morning entrance" --time 09:00 --grace 15
  turnout checkpoint create 4e2f... "Day 2 workshop" --owner-kind session --type activity --time 14:00
  turnout checkpoint create 4e2f... "Final exam" --applies-to specific_day --date 2026-09-18 --time 10:00`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateCheckpointHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ownerID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid owner ID: %w", err)
		}

		create := commands.CreateCheckpointCommand{
			OwnerKind:    domain.OwnerKind(ownerKind),
			OwnerID:      ownerID,
			Type:         domain.CheckpointType(checkpointType),
			Name:         args[1],
			Description:  description,
			GraceMinutes: graceMinutes,
			AppliesTo:    domain.AppliesTo(appliesTo),
			IsRequired:   !notRequired,
			Order:        order,
		}
		if create.RequiredTime, err = sharedDomain.ParseTimeOfDay(requiredTime); err != nil {
			return fmt.Errorf("invalid --time format, use HH:MM: %w", err)
		}
		if specificDate != "" {
			if create.SpecificDate, err = sharedDomain.ParseDate(specificDate); err != nil {
				return fmt.Errorf("invalid --date format, use YYYY-MM-DD: %w", err)
			}
		}

		ctx := cmd.Context()
		result, err := app.CreateCheckpointHandler.Handle(ctx, create)
		if err != nil {
			return fmt.Errorf("failed to create checkpoint: %w", err)
		}

		fmt.Printf("Checkpoint created: %s\n", result.CheckpointID)
		fmt.Printf("  code:   %s\n", result.Code)
		fmt.Printf("  window: %s-%s\n", result.WindowStart, result.WindowEnd)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&ownerKind, "owner-kind", "event", "checkpoint owner kind (event, session)")
	createCmd.Flags().StringVarP(&checkpointType, "type", "t", "entrance", "checkpoint type (entrance, hourly, break, lunch, activity, exit, custom)")
	createCmd.Flags().StringVar(&description, "description", "", "checkpoint description")
	createCmd.Flags().StringVar(&requiredTime, "time", "", "required time (HH:MM)")
	createCmd.Flags().IntVarP(&graceMinutes, "grace", "g", 10, "grace period in minutes")
	createCmd.Flags().StringVar(&appliesTo, "applies-to", "", "days the checkpoint applies on (all_days, specific_day, weekdays, weekends)")
	createCmd.Flags().StringVar(&specificDate, "date", "", "date for specific_day checkpoints (YYYY-MM-DD)")
	createCmd.Flags().BoolVar(&notRequired, "optional", false, "mark the checkpoint as optional")
	createCmd.Flags().IntVar(&order, "order", 0, "display order")
	_ = createCmd.MarkFlagRequired("time")
}
