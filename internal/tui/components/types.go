package components

import "github.com/hy4ri/taskdex/internal/todo"

// SidebarEntry is one row of the sidebar: a smart view, a folder or a
// separator between the two groups.
type SidebarEntry struct {
	Scope     todo.Scope
	Icon      string
	Label     string
	Count     int // undone items in scope
	Separator bool
}

// BuildSidebarEntries lists the smart views, a separator and the folders,
// with undone counts computed from items.
func BuildSidebarEntries(folders []todo.Folder, counts func(todo.Scope) int) []SidebarEntry {
	entries := make([]SidebarEntry, 0, len(folders)+4)
	for _, v := range todo.SmartViews() {
		scope := todo.SmartScope(v.View)
		entries = append(entries, SidebarEntry{
			Scope: scope,
			Icon:  v.Icon,
			Label: v.Label,
			Count: counts(scope),
		})
	}

	entries = append(entries, SidebarEntry{Separator: true})

	for _, f := range folders {
		scope := todo.FolderScope(f.ID)
		icon := f.Icon
		if icon == "" {
			icon = "•"
		}
		entries = append(entries, SidebarEntry{
			Scope: scope,
			Icon:  icon,
			Label: f.Name,
			Count: counts(scope),
		})
	}
	return entries
}
