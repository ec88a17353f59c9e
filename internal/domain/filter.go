package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Filter narrows a record query. Zero fields do not filter.
type Filter struct {
	UserID    string   `json:"userId,omitempty"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	Status    string   `json:"status,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Search    string   `json:"search,omitempty"`
}

// Normalize canonicalizes the filter so equal queries share a signature:
// dates become UTC calendar dates, tags are deduplicated and sorted, and the
// search text is trimmed.
func (f Filter) Normalize() (Filter, error) {
	out := Filter{
		UserID: strings.TrimSpace(f.UserID),
		Status: strings.TrimSpace(f.Status),
		Search: strings.TrimSpace(f.Search),
	}
	var err error
	if f.StartDate != "" {
		if out.StartDate, err = ParseDate(f.StartDate); err != nil {
			return Filter{}, fmt.Errorf("start date: %w", err)
		}
	}
	if f.EndDate != "" {
		if out.EndDate, err = ParseDate(f.EndDate); err != nil {
			return Filter{}, fmt.Errorf("end date: %w", err)
		}
	}
	if tags := NormalizeTags(f.Tags); len(tags) > 0 {
		sort.Strings(tags)
		out.Tags = tags
	}
	return out, nil
}
