package entry

import (
	"slices"
	"sort"
)

// FilterByTags keeps entries that carry at least one of tags.
// No tags keeps everything.
func FilterByTags(entries []*Entry, tags []string) []*Entry {
	if len(tags) == 0 {
		return entries
	}

	var result []*Entry
	for _, e := range entries {
		if HasAnyTag(e, tags) {
			result = append(result, e)
		}
	}
	return result
}

// HasAnyTag checks if the entry has any of the specified tags.
func HasAnyTag(e *Entry, tags []string) bool {
	for _, tag := range e.Tags {
		if slices.Contains(tags, tag) {
			return true
		}
	}
	return false
}

// FilterByDateRange keeps entries dated within [since, until]. Dates compare
// as YYYY-MM-DD strings; an empty bound is open. Undated entries are kept
// only when both bounds are open.
func FilterByDateRange(entries []*Entry, since, until string) []*Entry {
	if since == "" && until == "" {
		return entries
	}

	var result []*Entry
	for _, e := range entries {
		if e.Date == "" {
			continue
		}
		if since != "" && e.Date < since {
			continue
		}
		if until != "" && e.Date > until {
			continue
		}
		result = append(result, e)
	}
	return result
}

// SortByDate sorts entries by date, most recent first. Entries on the same
// date keep their relative order.
func SortByDate(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}
