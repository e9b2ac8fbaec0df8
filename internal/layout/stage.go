package layout

// Stage is the single pane shown in compact mode.
type Stage int

const (
	StageFolders Stage = iota
	StageItems
	StageDetail
)

func (s Stage) String() string {
	switch s {
	case StageItems:
		return "items"
	case StageDetail:
		return "detail"
	}
	return "folders"
}

// Back returns the stage one step closer to the folder list.
func (s Stage) Back() Stage {
	if s == StageFolders {
		return StageFolders
	}
	return s - 1
}
