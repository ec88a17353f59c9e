package cli

import (
	"fmt"

	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/spf13/cobra"
)

func newAttendanceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "attendance",
		Aliases: []string{"att"},
		Short:   "Inspect attendance records",
	}

	cmd.AddCommand(
		newAttendanceListCmd(app),
		newAttendanceRemoveCmd(app),
	)

	return cmd
}

func newAttendanceListCmd(app *App) *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List attendance records, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := app.Records.QueryAttendance(cmd.Context(), ff.filter())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAttendanceList(recs, app.now()))
			return nil
		},
	}

	cmd.Flags().AddFlagSet(ff.flagSet(false))
	return cmd
}

func newAttendanceRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete an attendance record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveID(ctx, app, domain.DomainAttendance, args[0])
			if err != nil {
				return err
			}
			removed, err := app.Records.Delete(ctx, domain.DomainAttendance, id)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Attendance record %s was already gone.\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed attendance record %s\n", id)
			return nil
		},
	}
}
