package cli

import (
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/spf13/pflag"
)

// filterFlags are the record filter flags shared by the list commands.
type filterFlags struct {
	user   string
	start  string
	end    string
	status string
	tags   []string
	search string
}

// flagSet returns the filter flags bound to f. withActivity adds the flags
// that only make sense for activities.
func (f *filterFlags) flagSet(withActivity bool) *pflag.FlagSet {
	fs := pflag.NewFlagSet("filter", pflag.ContinueOnError)
	fs.StringVar(&f.user, "user", "", "Only records of this user ID")
	fs.StringVar(&f.start, "from", "", "Earliest date, YYYY-MM-DD")
	fs.StringVar(&f.end, "to", "", "Latest date, YYYY-MM-DD")
	if withActivity {
		fs.StringVar(&f.status, "status", "", "Only activities with this status (in-progress, completed)")
		fs.StringSliceVar(&f.tags, "tag", nil, "Only activities carrying any of these tags")
		fs.StringVarP(&f.search, "search", "s", "", "Case-insensitive text search")
	}
	return fs
}

func (f *filterFlags) filter() domain.Filter {
	return domain.Filter{
		UserID:    f.user,
		StartDate: f.start,
		EndDate:   f.end,
		Status:    f.status,
		Tags:      f.tags,
		Search:    f.search,
	}
}
