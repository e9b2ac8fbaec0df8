package todo

import "time"

// UnfiledLabel is shown for items whose folder is unknown.
const UnfiledLabel = "Unfiled"

// weekSpan is the number of days after today included in the week view.
const weekSpan = 7

// Filter returns the items visible under scope, in input order. The
// result is always a new slice; items is never modified.
//
// today is truncated to its local calendar date. Items without a date, or
// with a date that does not parse, never appear in the Today or Week views.
func Filter(items []Item, scope Scope, today time.Time) []Item {
	out := make([]Item, 0, len(items))

	switch scope.kind {
	case ScopeFolder:
		for _, it := range items {
			if it.FolderID == scope.folderID {
				out = append(out, it)
			}
		}

	case ScopeSmart:
		start := startOfDay(today)
		end := start.AddDate(0, 0, weekSpan)
		for _, it := range items {
			if scope.view == SmartAll {
				out = append(out, it)
				continue
			}
			d, ok := it.DateIn(start.Location())
			if !ok {
				continue
			}
			switch scope.view {
			case SmartToday:
				if d.Equal(start) {
					out = append(out, it)
				}
			case SmartWeek:
				if !d.Before(start) && !d.After(end) {
					out = append(out, it)
				}
			}
		}
	}

	return out
}

// LabelFor returns the display name of scope.
func LabelFor(scope Scope, folders []Folder) string {
	switch scope.kind {
	case ScopeFolder:
		for _, f := range folders {
			if f.ID == scope.folderID {
				return f.Name
			}
		}
		return UnfiledLabel
	case ScopeSmart:
		return scope.view.Label()
	}
	return ""
}

// FolderName returns the name of the folder with the given ID, or
// UnfiledLabel for a dangling reference.
func FolderName(folders []Folder, id int64) string {
	for _, f := range folders {
		if f.ID == id {
			return f.Name
		}
	}
	return UnfiledLabel
}

// CountDueToday returns the number of undone items dated today.
func CountDueToday(items []Item, today time.Time) int {
	n := 0
	for _, it := range Filter(items, SmartScope(SmartToday), today) {
		if !it.IsDone {
			n++
		}
	}
	return n
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
