package todo

import (
	"fmt"
	"strconv"
	"strings"
)

// SmartView is a date-derived view that is not tied to a folder.
type SmartView int

const (
	SmartToday SmartView = iota + 1
	SmartWeek
	SmartAll
)

// SmartViewInfo holds display metadata for a smart view.
type SmartViewInfo struct {
	View  SmartView
	Icon  string
	Label string
}

// SmartViews returns the smart views in display order.
func SmartViews() []SmartViewInfo {
	return []SmartViewInfo{
		{SmartToday, "☀", "Today"},
		{SmartWeek, "📅", "This Week"},
		{SmartAll, "📂", "All"},
	}
}

// Label returns the fixed display label for v.
func (v SmartView) Label() string {
	for _, info := range SmartViews() {
		if info.View == v {
			return info.Label
		}
	}
	return ""
}

// String returns the short identifier for v.
func (v SmartView) String() string {
	switch v {
	case SmartToday:
		return "today"
	case SmartWeek:
		return "week"
	case SmartAll:
		return "all"
	}
	return "unknown"
}

// ScopeKind distinguishes the cases of Scope.
type ScopeKind int

const (
	ScopeNone ScopeKind = iota
	ScopeFolder
	ScopeSmart
)

// Scope is the current filter selection: nothing, a single folder, or a
// smart view. The zero value selects nothing. Fields are unexported so a
// Scope can only hold one case at a time.
type Scope struct {
	kind     ScopeKind
	folderID int64
	view     SmartView
}

// NoScope returns the empty selection.
func NoScope() Scope { return Scope{} }

// FolderScope selects a single folder.
func FolderScope(id int64) Scope { return Scope{kind: ScopeFolder, folderID: id} }

// SmartScope selects a smart view.
func SmartScope(v SmartView) Scope { return Scope{kind: ScopeSmart, view: v} }

// Kind returns which case s holds.
func (s Scope) Kind() ScopeKind { return s.kind }

// FolderID returns the folder ID when s is a folder scope.
func (s Scope) FolderID() (int64, bool) {
	return s.folderID, s.kind == ScopeFolder
}

// SmartView returns the view when s is a smart view scope.
func (s Scope) SmartView() (SmartView, bool) {
	return s.view, s.kind == ScopeSmart
}

// IsSmart returns true for smart view scopes. Smart views aggregate
// items across folders.
func (s Scope) IsSmart() bool { return s.kind == ScopeSmart }

func (s Scope) String() string {
	switch s.kind {
	case ScopeFolder:
		return fmt.Sprintf("folder:%d", s.folderID)
	case ScopeSmart:
		return s.view.String()
	}
	return "none"
}

// ParseScope resolves a smart view name, a folder ID, or a folder name
// (case-insensitive) into a Scope.
func ParseScope(s string, folders []Folder) (Scope, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "today", "t":
		return SmartScope(SmartToday), nil
	case "week", "this-week", "w":
		return SmartScope(SmartWeek), nil
	case "all", "a":
		return SmartScope(SmartAll), nil
	}

	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		for _, f := range folders {
			if f.ID == id {
				return FolderScope(id), nil
			}
		}
		return NoScope(), fmt.Errorf("unknown folder id %d", id)
	}

	for _, f := range folders {
		if strings.EqualFold(f.Name, s) {
			return FolderScope(f.ID), nil
		}
	}
	return NoScope(), fmt.Errorf("unknown scope %q", s)
}

// Selection is the user's current scope and item choice.
type Selection struct {
	Scope  Scope
	ItemID int64 // 0 when no item is selected

	// LastFolderID is the last folder explicitly selected. Items added
	// while a smart view is active are filed here.
	LastFolderID int64
}

// NewSelection selects the first folder, or nothing if there are none.
func NewSelection(folders []Folder) Selection {
	if len(folders) == 0 {
		return Selection{}
	}
	return Selection{
		Scope:        FolderScope(folders[0].ID),
		LastFolderID: folders[0].ID,
	}
}

// SelectFolder switches to a folder scope and clears the item selection.
func (s *Selection) SelectFolder(id int64) {
	s.Scope = FolderScope(id)
	s.LastFolderID = id
	s.ItemID = 0
}

// SelectSmart switches to a smart view and clears the item selection.
func (s *Selection) SelectSmart(v SmartView) {
	s.Scope = SmartScope(v)
	s.ItemID = 0
}

// Select applies an arbitrary scope.
func (s *Selection) Select(scope Scope) {
	if id, ok := scope.FolderID(); ok {
		s.SelectFolder(id)
		return
	}
	if v, ok := scope.SmartView(); ok {
		s.SelectSmart(v)
		return
	}
	s.Scope = NoScope()
	s.ItemID = 0
}

// TargetFolder returns the folder new items are filed into.
func (s Selection) TargetFolder() int64 {
	if id, ok := s.Scope.FolderID(); ok {
		return id
	}
	return s.LastFolderID
}
