// Package layout manages the three-panel split: the scope sidebar, the
// item list and the detail pane.
//
// The sidebar width is an absolute number of cells. The list/detail split
// is a ratio of whatever space is left, so it tracks terminal resizes.
package layout

import (
	"math"

	"github.com/charmbracelet/log"
)

// Geometry constants, in terminal cells.
const (
	HandleWidth    = 1
	CollapsedWidth = 6

	DefaultLeftWidth = 28
	MinLeftWidth     = 20
	MaxLeftWidth     = 48

	DefaultMidRatio = 0.40
	MinMidRatio     = 0.15
	MaxMidRatio     = 0.80

	// DefaultWideMinWidth is the narrowest terminal that still shows all
	// three panels side by side.
	DefaultWideMinWidth = 100

	leftStep      = 2
	leftStepLarge = 8
	midStep       = 0.02
	midStepLarge  = 0.08
)

// Boundary identifies one of the two draggable panel boundaries.
type Boundary int

const (
	LeftMid Boundary = iota
	MidRight
)

func (b Boundary) String() string {
	if b == LeftMid {
		return "left-mid"
	}
	return "mid-right"
}

// Direction is the sign of a keyboard resize step.
type Direction int

const (
	Shrink Direction = -1
	Grow   Direction = 1
)

// Widths is the rendered size of each region. In compact mode only one pane
// is visible and every pane width equals the full container width.
type Widths struct {
	Lead   int
	Mid    int
	Detail int
	Handle int
	Wide   bool
}

// Manager owns the panel geometry, the active drag and persistence.
type Manager struct {
	prefs Preferences

	width, height int
	wideMin       int
	wide          bool

	dragging bool
	drag     Boundary

	kv     KV
	logger *log.Logger
}

// New creates a manager starting from prefs. Committed changes are written
// through to kv; save failures are logged to logger.
func New(prefs Preferences, kv KV, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		prefs:   prefs.Clamp(),
		wideMin: DefaultWideMinWidth,
		wide:    true,
		kv:      kv,
		logger:  logger,
	}
}

// SetWideMinWidth overrides the wide threshold. Non-positive values are
// ignored.
func (m *Manager) SetWideMinWidth(n int) {
	if n <= 0 {
		return
	}
	m.wideMin = n
	if m.width > 0 {
		m.Resize(m.width, m.height)
	}
}

// Preferences returns the current persisted values.
func (m *Manager) Preferences() Preferences { return m.prefs }

// IsWide reports whether all three panels are shown.
func (m *Manager) IsWide() bool { return m.wide }

// Collapsed reports whether the sidebar is reduced to its icon rail.
func (m *Manager) Collapsed() bool { return m.prefs.LeftCollapsed }

// Resizing reports whether a drag is in progress.
func (m *Manager) Resizing() bool { return m.dragging }

// ActiveBoundary returns the boundary being dragged.
func (m *Manager) ActiveBoundary() (Boundary, bool) { return m.drag, m.dragging }

// Size returns the container size last passed to Resize.
func (m *Manager) Size() (int, int) { return m.width, m.height }

// Resize records the container size and recomputes wide mode. Dropping into
// compact mode cancels any drag.
func (m *Manager) Resize(width, height int) {
	m.width = width
	m.height = height
	m.wide = width >= m.wideMin
	if !m.wide {
		m.dragging = false
	}
}

// BeginDrag starts dragging b. It is ignored in compact mode and for the
// sidebar boundary while the sidebar is collapsed.
func (m *Manager) BeginDrag(b Boundary) {
	if !m.wide {
		return
	}
	if b == LeftMid && m.prefs.LeftCollapsed {
		return
	}
	m.dragging = true
	m.drag = b
}

// UpdateDrag moves the active boundary to column x, measured from the
// container's left edge. Geometry is read fresh on every call.
func (m *Manager) UpdateDrag(x int) {
	if !m.dragging {
		return
	}

	next := m.prefs
	switch m.drag {
	case LeftMid:
		next.LeftWidth = clampInt(x, MinLeftWidth, MaxLeftWidth)
	case MidRight:
		avail := m.available()
		if avail <= 0 {
			return
		}
		ratio := float64(x-m.leadWidth()-HandleWidth) / float64(avail)
		next.MidRatio = clampFloat(ratio, MinMidRatio, MaxMidRatio)
	}
	m.commit(next)
}

// EndDrag finishes any drag.
func (m *Manager) EndDrag() {
	m.dragging = false
}

// Step nudges b by one keyboard increment in dir. large selects the bigger
// increment. It does nothing in compact mode.
func (m *Manager) Step(b Boundary, dir Direction, large bool) {
	if !m.wide {
		return
	}
	next := m.prefs
	switch b {
	case LeftMid:
		if m.prefs.LeftCollapsed {
			return
		}
		step := leftStep
		if large {
			step = leftStepLarge
		}
		next.LeftWidth = clampInt(next.LeftWidth+int(dir)*step, MinLeftWidth, MaxLeftWidth)
	case MidRight:
		step := midStep
		if large {
			step = midStepLarge
		}
		r := next.MidRatio + float64(dir)*step
		// Keep ratios on a clean grid so repeated steps do not drift.
		r = math.Round(r*1000) / 1000
		next.MidRatio = clampFloat(r, MinMidRatio, MaxMidRatio)
	}
	m.commit(next)
}

// ToggleCollapse flips the sidebar between its icon rail and its stored
// width. The stored width is untouched. It does nothing in compact mode.
func (m *Manager) ToggleCollapse() {
	if !m.wide {
		return
	}
	next := m.prefs
	next.LeftCollapsed = !next.LeftCollapsed
	if next.LeftCollapsed && m.dragging && m.drag == LeftMid {
		m.dragging = false
	}
	m.commit(next)
}

// Widths returns the rendered size of each region.
func (m *Manager) Widths() Widths {
	if !m.wide {
		return Widths{Lead: m.width, Mid: m.width, Detail: m.width}
	}

	lead := m.leadWidth()
	avail := m.available()
	mid := int(math.Round(float64(avail) * m.prefs.MidRatio))
	return Widths{
		Lead:   lead,
		Mid:    mid,
		Detail: avail - mid,
		Handle: HandleWidth,
		Wide:   true,
	}
}

// HandleAt reports which boundary handle, if any, occupies column x.
func (m *Manager) HandleAt(x int) (Boundary, bool) {
	if !m.wide {
		return 0, false
	}
	w := m.Widths()
	first := w.Lead
	second := w.Lead + HandleWidth + w.Mid
	switch {
	case x >= first && x < first+HandleWidth:
		return LeftMid, true
	case x >= second && x < second+HandleWidth:
		return MidRight, true
	}
	return 0, false
}

func (m *Manager) leadWidth() int {
	if m.prefs.LeftCollapsed {
		return CollapsedWidth
	}
	return m.prefs.LeftWidth
}

func (m *Manager) available() int {
	avail := m.width - m.leadWidth() - 2*HandleWidth
	if avail < 0 {
		return 0
	}
	return avail
}

func (m *Manager) commit(next Preferences) {
	if next == m.prefs {
		return
	}
	m.prefs = next
	if err := Save(m.kv, next); err != nil {
		m.logger.Warn("failed to save layout preferences", "err", err)
	}
}
