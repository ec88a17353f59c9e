package cli

import (
	"time"

	"github.com/alexanderramin/punchclock/internal/repository"
	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Tracker     service.TimeTrackingService
	Records     repository.RecordRepo
	Activities  service.ActivityService
	Stats       service.StatsService
	Data        service.DataService
	Profiles    service.ProfileService
	Maintenance service.MaintenanceService

	// Now is the clock used for relative dates. Nil means time.Now.
	Now func() time.Time

	// IsInteractive reports whether forms and confirmations may prompt.
	// Nil means never.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "punchclock" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "punchclock",
		Short:         "Personal attendance and activity tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newInCmd(app),
		newOutCmd(app),
		newStatusCmd(app),
		newClockCmd(app),
		newAttendanceCmd(app),
		newActivityCmd(app),
		newStatsCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newStoreCmd(app),
		newProfileCmd(app),
	)

	return root
}
