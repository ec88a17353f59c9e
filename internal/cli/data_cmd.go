package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/spf13/cobra"
)

var errNotConfirmed = errors.New("not confirmed: pass --yes to proceed")

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export [FILE]",
		Short: "Export all stored data as JSON (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 0 {
				return app.Data.WriteExport(ctx, cmd.OutOrStdout())
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			if err := app.Data.WriteExport(ctx, f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", args[0])
			return nil
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	var mode string
	var yes bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a JSON export",
		Long: `Import a JSON export produced by "punchclock export".

In merge mode records are combined by ID and imported records win.
In overwrite mode the stored data is replaced by the file's contents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := service.ImportMode(strings.ToLower(mode))
			if m == service.ImportOverwrite && !yes {
				ok, err := confirm(app, "Replace all stored data with "+args[0]+"?")
				if err != nil {
					return err
				}
				if !ok {
					return errNotConfirmed
				}
			}

			res, err := app.Data.ImportFile(cmd.Context(), args[0], m)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (%s): %d attendance records, %d activities, %d keys\n",
				args[0], res.Mode, res.Attendance, res.Activities, len(res.Keys))
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(service.ImportMerge), "Import mode: merge or overwrite")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask before overwriting")

	return cmd
}
