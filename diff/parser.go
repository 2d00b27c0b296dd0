package diff

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const devNull = "/dev/null"

var (
	hunkHeaderRe   = regexp.MustCompile(`^@@ -([^ ,]*)(,[^ ]*)? \+([^ ,]*)(,[^ ]*)? @@`)
	binaryNoticeRe = regexp.MustCompile(`^Binary files (.+) and (.+) differ$`)
)

// parser holds the state of a single Parse call
type parser struct {
	lines   []string
	index   int
	files   []*FileDiff
	current *FileDiff
	// awaitingPaths is set after a git header until ---/+++ lines were seen
	awaitingPaths bool
	newFile       bool
	deletedFile   bool
}

// Parse parses unified diff text into file diffs, preserving diff order.
// Empty input yields an empty result.
func Parse(text string) ([]*FileDiff, error) {
	p := &parser{lines: splitLines(text)}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.files, nil
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func (p *parser) parse() error {
	for p.index < len(p.lines) {
		line := p.lines[p.index]
		switch {
		case strings.HasPrefix(line, "diff --git "):
			p.startGitFile(line)
		case strings.HasPrefix(line, "--- ") && p.hasNext("+++ "):
			p.fileHeader(line, p.lines[p.index+1])
			p.index++
		case strings.HasPrefix(line, "@@"):
			if p.current == nil {
				return &ParseError{Line: p.index + 1, Message: "hunk header outside of a file diff"}
			}
			if err := p.readHunk(); err != nil {
				return err
			}
			continue
		case line == "-- ":
			// format-patch signature separator
			p.finish()
		case strings.HasPrefix(line, "Binary files ") && (p.current == nil || len(p.current.Hunks) > 0):
			p.finish()
			p.current = &FileDiff{}
			p.binaryNotice(line)
		case p.current == nil:
			// preamble such as a commit message
		default:
			if err := p.extendedHeader(line); err != nil {
				return err
			}
		}
		p.index++
	}
	p.finish()
	return nil
}

func (p *parser) hasNext(prefix string) bool {
	return p.index+1 < len(p.lines) && strings.HasPrefix(p.lines[p.index+1], prefix)
}

func (p *parser) startGitFile(line string) {
	p.finish()
	rest := strings.TrimPrefix(line, "diff --git ")
	oldPath, newPath := rest, rest
	if idx := strings.LastIndex(rest, " b/"); idx != -1 {
		oldPath, newPath = rest[:idx], rest[idx+1:]
	} else if fields := strings.Fields(rest); len(fields) == 2 {
		oldPath, newPath = fields[0], fields[1]
	}
	p.current = &FileDiff{OldPath: trimPathPrefix(oldPath, "a/"), NewPath: trimPathPrefix(newPath, "b/")}
	p.awaitingPaths = true
}

func (p *parser) fileHeader(oldLine, newLine string) {
	if p.current == nil || !p.awaitingPaths {
		p.finish()
		p.current = &FileDiff{}
	}
	p.awaitingPaths = false
	oldPath := headerPath(strings.TrimPrefix(oldLine, "--- "))
	newPath := headerPath(strings.TrimPrefix(newLine, "+++ "))
	if oldPath == devNull {
		p.newFile = true
		p.current.OldPath = ""
	} else {
		p.current.OldPath = trimPathPrefix(oldPath, "a/")
	}
	if newPath == devNull {
		p.deletedFile = true
		p.current.NewPath = ""
	} else {
		p.current.NewPath = trimPathPrefix(newPath, "b/")
	}
}

func (p *parser) extendedHeader(line string) error {
	switch {
	case strings.HasPrefix(line, "new file mode"):
		p.newFile = true
	case strings.HasPrefix(line, "deleted file mode"):
		p.deletedFile = true
	case strings.HasPrefix(line, "rename from "):
		p.current.OldPath = strings.TrimPrefix(line, "rename from ")
	case strings.HasPrefix(line, "rename to "):
		p.current.NewPath = strings.TrimPrefix(line, "rename to ")
	case strings.HasPrefix(line, "GIT binary patch"):
		p.current.Binary = true
	case strings.HasPrefix(line, "Binary files "):
		p.binaryNotice(line)
	case len(p.current.Hunks) > 0 && len(line) > 0 && strings.ContainsRune("+- ", rune(line[0])):
		return &ParseError{Line: p.index + 1, Message: fmt.Sprintf("line %q exceeds the declared hunk line counts", line)}
	}
	return nil
}

func (p *parser) binaryNotice(line string) {
	p.current.Binary = true
	if p.current.OldPath != "" || p.current.NewPath != "" {
		return
	}
	match := binaryNoticeRe.FindStringSubmatch(line)
	if match == nil {
		return
	}
	if match[1] == devNull {
		p.newFile = true
	} else {
		p.current.OldPath = trimPathPrefix(match[1], "a/")
	}
	if match[2] == devNull {
		p.deletedFile = true
	} else {
		p.current.NewPath = trimPathPrefix(match[2], "b/")
	}
}

// readHunk consumes a hunk header and exactly the number of lines it declares
func (p *parser) readHunk() error {
	headerLine := p.index + 1
	hunk, err := parseHunkHeader(p.lines[p.index])
	if err != nil {
		return &ParseError{Line: headerLine, Message: err.Error()}
	}
	p.awaitingPaths = false
	p.index++
	oldLine, newLine := hunk.OldStart, hunk.NewStart
	oldLeft, newLeft := hunk.OldCount, hunk.NewCount
	mismatch := func(reason string) error {
		return &ParseError{Line: headerLine, Message: fmt.Sprintf("hunk -%d,%d +%d,%d: %s (%d old and %d new lines missing)",
			hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount, reason, oldLeft, newLeft)}
	}
	for oldLeft > 0 || newLeft > 0 {
		if p.index >= len(p.lines) {
			return mismatch("unexpected end of diff")
		}
		line := p.lines[p.index]
		if line == "" {
			line = " "
		}
		switch line[0] {
		case '+':
			if newLeft == 0 {
				return mismatch("too many added lines")
			}
			hunk.Lines = append(hunk.Lines, &Line{Kind: LineAdded, Content: line[1:], NewLine: newLine})
			newLine++
			newLeft--
		case '-':
			if oldLeft == 0 {
				return mismatch("too many removed lines")
			}
			hunk.Lines = append(hunk.Lines, &Line{Kind: LineRemoved, Content: line[1:], OldLine: oldLine})
			oldLine++
			oldLeft--
		case ' ':
			if oldLeft == 0 || newLeft == 0 {
				return mismatch("too many context lines")
			}
			hunk.Lines = append(hunk.Lines, &Line{Kind: LineContext, Content: line[1:], OldLine: oldLine, NewLine: newLine})
			oldLine++
			newLine++
			oldLeft--
			newLeft--
		case '\\':
		default:
			return mismatch(fmt.Sprintf("unexpected line %q", line))
		}
		p.index++
	}
	for p.index < len(p.lines) && strings.HasPrefix(p.lines[p.index], "\\") {
		p.index++
	}
	p.current.Hunks = append(p.current.Hunks, hunk)
	return nil
}

func parseHunkHeader(line string) (*Hunk, error) {
	match := hunkHeaderRe.FindStringSubmatch(line)
	if match == nil {
		return nil, fmt.Errorf("invalid hunk header: %s", line)
	}
	values := make([]int, 4)
	for i, field := range match[1:] {
		if i == 1 || i == 3 {
			// an absent count defaults to 1, a present one must be numeric
			if field == "" {
				values[i] = 1
				continue
			}
			field = field[1:]
		}
		value, err := strconv.Atoi(field)
		if err != nil || value < 0 {
			return nil, fmt.Errorf("invalid number %q in hunk header: %s", field, line)
		}
		values[i] = value
	}
	return &Hunk{OldStart: values[0], OldCount: values[1], NewStart: values[2], NewCount: values[3]}, nil
}

func (p *parser) finish() {
	if p.current == nil {
		return
	}
	file := p.current
	switch {
	case p.newFile:
		file.Status = StatusAdded
		file.OldPath = ""
	case p.deletedFile:
		file.Status = StatusDeleted
		file.NewPath = ""
	case file.OldPath != "" && file.NewPath != "" && file.OldPath != file.NewPath:
		file.Status = StatusRenamed
	default:
		file.Status = StatusModified
	}
	p.files = append(p.files, file)
	p.current = nil
	p.awaitingPaths = false
	p.newFile = false
	p.deletedFile = false
}

// headerPath drops the timestamp suffix plain diff tools append after a tab
func headerPath(value string) string {
	if idx := strings.IndexByte(value, '\t'); idx != -1 {
		value = value[:idx]
	}
	return strings.TrimSpace(value)
}

func trimPathPrefix(path, prefix string) string {
	return strings.TrimPrefix(strings.TrimSpace(path), prefix)
}
