package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
)

// resolveID expands a (possibly truncated) ID to the one record ID it
// prefixes. An exact match always wins.
func resolveID(ctx context.Context, app *App, d domain.Domain, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("an ID is required")
	}

	var ids []string
	switch d {
	case domain.DomainAttendance:
		recs, err := app.Records.QueryAttendance(ctx, domain.Filter{})
		if err != nil {
			return "", err
		}
		for _, r := range recs {
			ids = append(ids, r.ID)
		}
	case domain.DomainActivities:
		recs, err := app.Records.QueryActivities(ctx, domain.Filter{})
		if err != nil {
			return "", err
		}
		for _, r := range recs {
			ids = append(ids, r.ID)
		}
	default:
		return "", fmt.Errorf("%q: %w", d, repository.ErrUnknownDomain)
	}

	var matches []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s record matches %q: %w", d, prefix, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("%q is ambiguous: matches %d %s records", prefix, len(matches), d)
}
