package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/alexanderramin/punchclock/internal/stats"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	var period, start, end, userID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show attendance, activity and productivity statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if userID == "" {
				p, err := app.Profiles.Current(ctx)
				if err != nil {
					return err
				}
				userID = p.ID
			}

			res, err := app.Stats.GetUserStats(ctx, userID, service.PeriodRequest{
				Period: stats.Period(period),
				Start:  start,
				End:    end,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			fmt.Fprint(out, formatter.FormatUserStats(res))
			return nil
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", string(stats.PeriodWeek), "Period: week, month, year or custom")
	cmd.Flags().StringVar(&start, "from", "", "Start date for a custom period, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "to", "", "End date for a custom period, YYYY-MM-DD")
	cmd.Flags().StringVar(&userID, "user", "", "User ID (default: the current profile)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	return cmd
}
