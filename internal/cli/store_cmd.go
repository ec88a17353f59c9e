package cli

import (
	"fmt"
	"slices"

	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStoreCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Maintain the underlying key-value store",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "keys",
			Short: "List stored keys",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				keys, err := app.Maintenance.Keys(cmd.Context())
				if err != nil {
					return err
				}
				if len(keys) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Store is empty."))
					return nil
				}
				slices.Sort(keys)
				for _, k := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "sweep",
			Short: "Remove expired entries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := app.Maintenance.Sweep(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired entries\n", n)
				return nil
			},
		},
		newStoreClearCmd(app),
	)

	return cmd
}

func newStoreClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every punchclock key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := confirm(app, "Delete all punchclock data?")
				if err != nil {
					return err
				}
				if !ok {
					return errNotConfirmed
				}
			}
			if err := app.Maintenance.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Store cleared")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
