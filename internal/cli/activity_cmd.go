package cli

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/spf13/cobra"
)

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"act"},
		Short:   "Log and manage activities",
	}

	cmd.AddCommand(
		newActivityAddCmd(app),
		newActivityEditCmd(app),
		newActivityDoneCmd(app),
		newActivityListCmd(app),
		newActivityShowCmd(app),
		newActivityRemoveCmd(app),
	)

	return cmd
}

// activityFlags are the writable activity fields shared by add and edit.
type activityFlags struct {
	title       string
	description string
	tags        []string
	status      string
	date        string
	assignedBy  string
	photos      []string

	loaded []domain.Photo
}

func (f *activityFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "Activity title")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "What was done")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Tag (repeatable or comma separated)")
	cmd.Flags().StringVar(&f.status, "status", "", "Status (in-progress, completed)")
	cmd.Flags().StringVar(&f.date, "date", "", "Calendar date, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&f.assignedBy, "assigned-by", "", "Who assigned the activity")
	cmd.Flags().StringSliceVar(&f.photos, "photo", nil, "Attach an image file (repeatable)")
}

// prepare parses the flags that can fail, before anything is changed.
func (f *activityFlags) prepare(cmd *cobra.Command) error {
	if cmd.Flags().Changed("date") {
		d, err := domain.ParseDate(f.date)
		if err != nil {
			return fmt.Errorf("--date: %w", err)
		}
		f.date = d
	}
	f.loaded = f.loaded[:0]
	for _, path := range f.photos {
		p, err := readPhoto(path)
		if err != nil {
			return err
		}
		f.loaded = append(f.loaded, p)
	}
	return nil
}

// apply copies every flag the user set onto a. Call prepare first.
func (f *activityFlags) apply(cmd *cobra.Command, a *domain.ActivityRecord) {
	flags := cmd.Flags()
	if flags.Changed("title") {
		a.Title = f.title
	}
	if flags.Changed("description") {
		a.Description = f.description
	}
	if flags.Changed("tag") {
		a.Tags = domain.NormalizeTags(f.tags)
	}
	if flags.Changed("status") {
		a.Status = domain.ActivityStatus(f.status)
	}
	if flags.Changed("date") {
		a.Date = f.date
	}
	if flags.Changed("assigned-by") {
		if f.assignedBy == "" {
			a.AssignedBy = nil
		} else {
			by := f.assignedBy
			a.AssignedBy = &by
		}
	}
	a.Photos = append(a.Photos, f.loaded...)
}

// readPhoto loads an image file as a data URL attachment.
func readPhoto(path string) (domain.Photo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("reading photo: %w", err)
	}
	mt := mime.TypeByExtension(filepath.Ext(path))
	if mt == "" {
		mt = http.DetectContentType(data)
	}
	return domain.Photo{
		Name:     filepath.Base(path),
		MimeType: mt,
		DataURL:  "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(data),
		Size:     int64(len(data)),
	}, nil
}

func newActivityAddCmd(app *App) *cobra.Command {
	var af activityFlags

	cmd := &cobra.Command{
		Use:   "add [TITLE]",
		Short: "Log a new activity",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var a domain.ActivityRecord
			if len(args) == 1 {
				a.Title = args[0]
			}
			if err := af.prepare(cmd); err != nil {
				return err
			}
			af.apply(cmd, &a)

			if (a.Title == "" || a.Description == "") && app.interactive() {
				d := draftFrom(a)
				if err := wizardActivity("New activity", &d).Run(); err != nil {
					return err
				}
				d.applyTo(&a)
			}

			saved, err := app.Activities.Add(cmd.Context(), a)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged activity %s %s\n", formatter.TruncID(saved.ID), formatter.Bold(saved.Title))
			return nil
		},
	}

	af.register(cmd)
	return cmd
}

func newActivityEditCmd(app *App) *cobra.Command {
	var af activityFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveID(ctx, app, domain.DomainActivities, args[0])
			if err != nil {
				return err
			}

			// Without flags, edit interactively.
			if cmd.Flags().NFlag() == 0 {
				if !app.interactive() {
					return fmt.Errorf("nothing to change: pass at least one flag")
				}
				cur, err := app.Records.GetActivity(ctx, id)
				if err != nil {
					return err
				}
				d := draftFrom(cur)
				if err := wizardActivity("Edit activity", &d).Run(); err != nil {
					return err
				}
				saved, err := app.Activities.Edit(ctx, id, d.applyTo)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated activity %s\n", formatter.TruncID(saved.ID))
				return nil
			}

			if err := af.prepare(cmd); err != nil {
				return err
			}
			saved, err := app.Activities.Edit(ctx, id, func(a *domain.ActivityRecord) {
				af.apply(cmd, a)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated activity %s\n", formatter.TruncID(saved.ID))
			return nil
		},
	}

	af.register(cmd)
	return cmd
}

func newActivityDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Mark an activity completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveID(ctx, app, domain.DomainActivities, args[0])
			if err != nil {
				return err
			}
			saved, err := app.Activities.Complete(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.ActivityStatusPill(saved.Status), saved.Title)
			return nil
		},
	}
}

func newActivityListCmd(app *App) *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List activities, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acts, err := app.Activities.List(cmd.Context(), ff.filter())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActivityList(acts, app.now()))
			return nil
		},
	}

	cmd.Flags().AddFlagSet(ff.flagSet(true))
	return cmd
}

func newActivityShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one activity in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveID(ctx, app, domain.DomainActivities, args[0])
			if err != nil {
				return err
			}
			a, err := app.Records.GetActivity(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActivity(a))
			return nil
		},
	}
}

func newActivityRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete an activity",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveID(ctx, app, domain.DomainActivities, args[0])
			if err != nil {
				return err
			}
			removed, err := app.Activities.Remove(ctx, id)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Activity %s was already gone.\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed activity %s\n", id)
			return nil
		},
	}
}
