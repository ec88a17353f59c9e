package cli

import (
	"fmt"

	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change the current user",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the current user profile",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := app.Profiles.Current(cmd.Context())
				if err != nil {
					return err
				}
				printProfile(cmd, p)
				return nil
			},
		},
		newProfileSetCmd(app),
	)

	return cmd
}

func newProfileSetCmd(app *App) *cobra.Command {
	var p domain.UserProfile

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update the current user profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().NFlag() == 0 {
				return fmt.Errorf("nothing to change: pass --id, --name or --target")
			}
			saved, err := app.Profiles.Update(cmd.Context(), p)
			if err != nil {
				return err
			}
			printProfile(cmd, saved)
			return nil
		},
	}

	cmd.Flags().StringVar(&p.ID, "id", "", "User ID recorded on new records")
	cmd.Flags().StringVar(&p.Name, "name", "", "Display name")
	cmd.Flags().Float64Var(&p.WeeklyTargetHours, "target", 0, "Weekly target in hours")

	return cmd
}

func printProfile(cmd *cobra.Command, p domain.UserProfile) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", formatter.Dim("ID:    "), p.ID)
	fmt.Fprintf(out, "%s %s\n", formatter.Dim("Name:  "), p.Name)
	fmt.Fprintf(out, "%s %s\n", formatter.Dim("Target:"), formatter.FormatHours(p.WeeklyTarget()))
}
