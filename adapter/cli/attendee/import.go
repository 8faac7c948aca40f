package attendee

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/felixgeelhaar/turnout/adapter/cli"
	"github.com/felixgeelhaar/turnout/internal/attendees/application/commands"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import attendees from a CSV file",
	Long: `Import attendees in bulk from a CSV file.

Each row is first_name,last_name,email,phone. Email and phone may be
empty. A header row starting with "first_name" is skipped. Rows that
fail validation are reported and skipped; the rest are committed.

Examples:
  turnout attendee import roster.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ImportAttendeesHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()

		reader := csv.NewReader(f)
		reader.FieldsPerRecord = -1
		rows, err := reader.ReadAll()
		if err != nil {
			return fmt.Errorf("failed to parse CSV: %w", err)
		}

		imp := commands.ImportAttendeesCommand{}
		for i, row := range rows {
			if i == 0 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "first_name") {
				continue
			}
			if len(row) < 2 {
				return fmt.Errorf("row %d: expected at least first and last name", i+1)
			}
			ir := commands.ImportRow{
				FirstName: strings.TrimSpace(row[0]),
				LastName:  strings.TrimSpace(row[1]),
			}
			if len(row) > 2 {
				ir.Email = strings.TrimSpace(row[2])
			}
			if len(row) > 3 {
				ir.Phone = strings.TrimSpace(row[3])
			}
			imp.Rows = append(imp.Rows, ir)
		}

		if len(imp.Rows) == 0 {
			fmt.Println("No rows to import.")
			return nil
		}

		ctx := cmd.Context()
		result, err := app.ImportAttendeesHandler.Handle(ctx, imp)
		if err != nil {
			return fmt.Errorf("failed to import attendees: %w", err)
		}

		fmt.Printf("Imported %d of %d attendees\n", result.Imported, len(imp.Rows))
		for _, failure := range result.Failures {
			fmt.Printf("  row %d skipped: %s\n", failure.Row, failure.Error)
		}
		return nil
	},
}
