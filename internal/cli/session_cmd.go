package cli

import (
	"fmt"

	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newInCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "in",
		Short: "Start a work session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := app.Tracker.TimeIn(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !tr.Changed() {
				fmt.Fprintf(out, "%s Already timed in since %s\n",
					formatter.StyleYellow.Render("!"), formatter.ClockTime(tr.Since))
				return nil
			}
			fmt.Fprintf(out, "%s Timed in at %s\n", formatter.StatePill(tr.State), formatter.ClockTime(tr.Since))
			return nil
		},
	}
}

func newOutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "out",
		Short: "End the current work session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := app.Tracker.TimeOut(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !tr.Changed() {
				fmt.Fprintf(out, "%s Not timed in\n", formatter.StyleYellow.Render("!"))
				return nil
			}
			fmt.Fprintf(out, "%s Timed out at %s, worked %s\n",
				formatter.StatePill(tr.State),
				formatter.ClockTime(tr.Record.TimeOut),
				formatter.Bold(formatter.FormatHours(tr.Record.TotalHours)))
			return nil
		},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session and today's totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context(), app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStatus(snap.session, snap.elapsed, snap.dashboard))
			return nil
		},
	}
}
