package diff

// Status describes what happened to a file in a diff
type Status string

const (
	StatusAdded    Status = "added"
	StatusModified Status = "modified"
	StatusDeleted  Status = "deleted"
	StatusRenamed  Status = "renamed"
)

// LineKind identifies the role of a hunk line
type LineKind int

const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

func (k LineKind) String() string {
	switch k {
	case LineAdded:
		return "added"
	case LineRemoved:
		return "removed"
	default:
		return "context"
	}
}

// Line represents a single hunk line with its resolved line numbers.
// OldLine is set for removed and context lines, NewLine for added and context lines.
type Line struct {
	Kind    LineKind
	Content string
	OldLine int
	NewLine int
}

// Hunk represents a contiguous block of changes
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []*Line
}

// Added returns number of added lines
func (h *Hunk) Added() int {
	return h.count(LineAdded)
}

// Removed returns number of removed lines
func (h *Hunk) Removed() int {
	return h.count(LineRemoved)
}

func (h *Hunk) count(kind LineKind) int {
	result := 0
	for _, line := range h.Lines {
		if line.Kind == kind {
			result++
		}
	}
	return result
}

// FileDiff represents all hunks for a single file
type FileDiff struct {
	OldPath string
	NewPath string
	Status  Status
	Binary  bool
	Hunks   []*Hunk
}

// Path returns the path the file has after the change, or its old path when deleted
func (f *FileDiff) Path() string {
	if f.Status == StatusDeleted || f.NewPath == "" {
		return f.OldPath
	}
	return f.NewPath
}

// Added returns total number of added lines
func (f *FileDiff) Added() int {
	result := 0
	for _, hunk := range f.Hunks {
		result += hunk.Added()
	}
	return result
}

// Removed returns total number of removed lines
func (f *FileDiff) Removed() int {
	result := 0
	for _, hunk := range f.Hunks {
		result += hunk.Removed()
	}
	return result
}
