package change

// SkipReason explains why a file contributed no units
type SkipReason string

const (
	SkipBinary      SkipReason = "binary"
	SkipIgnored     SkipReason = "ignored"
	SkipUnsupported SkipReason = "unsupported language"
	SkipAccessError SkipReason = "access error"
	SkipParseFailed SkipReason = "parse failed"
)

// SkippedFile records a file excluded from unit mapping; line counts are kept so totals add up
type SkippedFile struct {
	Path         string     `json:"path"`
	Reason       SkipReason `json:"reason"`
	Detail       string     `json:"detail,omitempty"`
	LinesAdded   int        `json:"linesAdded"`
	LinesRemoved int        `json:"linesRemoved"`
}

// FileRecord holds per file line accounting of an analyzed file
type FileRecord struct {
	Path    string `json:"path"`
	Deleted bool   `json:"deleted,omitempty"`
	Units   int    `json:"units"`
	// Untracked lines matched no unit, e.g. use declarations or a deleted file
	UntrackedAdded   int `json:"untrackedAdded"`
	UntrackedRemoved int `json:"untrackedRemoved"`
}

// Scope describes which files were analyzed and which were skipped
type Scope struct {
	AnalyzedFiles   []string       `json:"analyzedFiles"`
	SkippedFiles    []*SkippedFile `json:"skippedFiles"`
	IgnoredPatterns []string       `json:"ignoredPatterns"`
	Files           []*FileRecord  `json:"files"`
}

// AddIgnoredPattern records pattern once, keeping first match order
func (s *Scope) AddIgnoredPattern(pattern string) {
	for _, candidate := range s.IgnoredPatterns {
		if candidate == pattern {
			return
		}
	}
	s.IgnoredPatterns = append(s.IgnoredPatterns, pattern)
}

// Skipped returns the skipped file with path, or nil
func (s *Scope) Skipped(path string) *SkippedFile {
	for _, skipped := range s.SkippedFiles {
		if skipped.Path == path {
			return skipped
		}
	}
	return nil
}

// Untracked returns added and removed lines that matched no unit, including skipped files
func (s *Scope) Untracked() (added, removed int) {
	for _, record := range s.Files {
		added += record.UntrackedAdded
		removed += record.UntrackedRemoved
	}
	for _, skipped := range s.SkippedFiles {
		added += skipped.LinesAdded
		removed += skipped.LinesRemoved
	}
	return added, removed
}
