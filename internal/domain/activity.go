package domain

import (
	"strings"
	"time"
)

// Photo is an image attached to an activity.
type Photo struct {
	Name     string `json:"name"`
	MimeType string `json:"type"`
	DataURL  string `json:"dataUrl"`
	Size     int64  `json:"size,omitempty"`
}

// ActivityRecord is a unit of work logged for a day. It is replaced whole
// on every edit.
type ActivityRecord struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Date        string         `json:"date"`
	Status      ActivityStatus `json:"status"`
	Tags        []string       `json:"tags"`
	Photos      []Photo        `json:"photos"`
	UserID      string         `json:"userId"`
	UserName    string         `json:"userName"`
	AssignedBy  *string        `json:"assignedBy,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

func (a ActivityRecord) RecordID() string { return a.ID }

// Clone returns a deep copy.
func (a ActivityRecord) Clone() ActivityRecord {
	if a.Tags != nil {
		a.Tags = append([]string(nil), a.Tags...)
	}
	if a.Photos != nil {
		a.Photos = append([]Photo(nil), a.Photos...)
	}
	if a.AssignedBy != nil {
		by := *a.AssignedBy
		a.AssignedBy = &by
	}
	return a
}

// Completed reports whether the activity is done.
func (a ActivityRecord) Completed() bool { return a.Status == ActivityCompleted }

// HasAnyTag reports whether the activity carries at least one of tags.
func (a ActivityRecord) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range a.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Matches reports whether needle occurs, case-insensitively, in the title,
// description or any tag.
func (a ActivityRecord) Matches(needle string) bool {
	needle = strings.ToLower(needle)
	if strings.Contains(strings.ToLower(a.Title), needle) ||
		strings.Contains(strings.ToLower(a.Description), needle) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// NormalizeTags trims tags, drops empties and duplicates, and keeps the
// first-seen order.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
