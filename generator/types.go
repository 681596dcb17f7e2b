package generator

// ProjectFile is a snapshot of one collected file handed to the architect prompt.
type ProjectFile struct {
	Path    string
	Content string
}

// ProjectMetadata: Ecosystem is "npm", "go" or empty.
type ProjectMetadata struct {
	Name        string
	Description string
	Ecosystem   string
}

// Stage identifies one pass of the generation pipeline.
type Stage int

const (
	// StageArchitect produces the factual, structurally complete draft.
	StageArchitect Stage = iota
	// StageStylist rewrites tone and presentation of the factual draft.
	StageStylist
)

func (s Stage) String() string {
	switch s {
	case StageArchitect:
		return "architect"
	case StageStylist:
		return "stylist"
	default:
		return "unknown"
	}
}
