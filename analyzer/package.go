package analyzer

import (
	"context"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/diffgate/analyzer/change"
	"github.com/viant/diffgate/analyzer/classifier"
	"github.com/viant/diffgate/inspector/graph"
)

// excludedDirs are never inspected by InspectDir
var excludedDirs = []string{"target", ".git"}

// FileUnits holds the unit forest of a single source file with the classification of every unit
type FileUnits struct {
	Path            string                  `json:"path"`
	Forest          *graph.Forest           `json:"forest,omitempty"`
	Classifications []change.Classification `json:"classifications,omitempty"`
	Skipped         *change.SkippedFile     `json:"skipped,omitempty"`
}

// InspectDir walks a directory tree and extracts the units of every supported source file.
// Paths are relative to root; results are ordered by path.
func (a *Analyzer) InspectDir(ctx context.Context, root string) ([]*FileUnits, error) {
	var paths []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		filePath := strings.TrimPrefix(path.Join(parent, info.Name()), "/")
		if excluded(filePath) || !a.factory.Supports(filePath) {
			return true, nil
		}
		if _, ok := classifier.Match(filePath, a.config.Classification.IgnorePaths); ok {
			return true, nil
		}
		paths = append(paths, filePath)
		return true, nil
	}
	if err := a.fs.Walk(ctx, root, visitor); err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var result []*FileUnits
	for _, filePath := range paths {
		units, err := a.inspectFile(ctx, url.Join(root, filePath), filePath)
		if err != nil {
			return nil, err
		}
		result = append(result, units)
	}
	return result, nil
}

// InspectFile extracts and classifies the units of the file at URL, reported under filePath
func (a *Analyzer) InspectFile(ctx context.Context, URL, filePath string) (*FileUnits, error) {
	return a.inspectFile(ctx, URL, filePath)
}

func (a *Analyzer) inspectFile(ctx context.Context, URL, filePath string) (*FileUnits, error) {
	inspector, err := a.factory.GetInspector(filePath)
	if err != nil {
		return nil, err
	}
	content, err := a.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, &SourceAccessError{Path: filePath, Err: err}
	}
	ret := &FileUnits{Path: filePath}
	forest, err := inspector.InspectSource(ctx, content)
	if err != nil {
		a.logger.Warn("skipping unparsable file", "path", filePath, "error", err)
		ret.Skipped = &change.SkippedFile{Path: filePath, Reason: change.SkipParseFailed, Detail: err.Error()}
		return ret, nil
	}
	ret.Forest = forest
	ret.Classifications = make([]change.Classification, len(forest.Units))
	for i, unit := range forest.Units {
		ret.Classifications[i] = a.classifier.Classify(filePath, unit)
	}
	return ret, nil
}

func excluded(filePath string) bool {
	segments := strings.Split(filePath, "/")
	for _, segment := range segments[:len(segments)-1] {
		for _, dir := range excludedDirs {
			if segment == dir {
				return true
			}
		}
	}
	return false
}
