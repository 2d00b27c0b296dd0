package repository

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/viant/afs"
)

// ErrNotDetected indicates no git or Cargo root encloses the location
var ErrNotDetected = errors.New("repository not detected")

// cargoManifest holds the Cargo.toml tables used for detection
type cargoManifest struct {
	tables map[string]interface{}
}

// packageName returns the [package] name, or empty
func (m *cargoManifest) packageName() string {
	pkg, ok := m.tables["package"].(map[string]interface{})
	if !ok {
		return ""
	}
	name, _ := pkg["name"].(string)
	return name
}

// isWorkspace returns true if the manifest declares a [workspace] table
func (m *cargoManifest) isWorkspace() bool {
	_, ok := m.tables["workspace"]
	return ok
}

// Detector identifies the repository root of a location
type Detector struct {
	fs afs.Service
}

// New creates a new repository detector instance
func New() *Detector {
	return &Detector{fs: afs.New()}
}

// DetectRepository identifies the repository containing location.
// A git root wins; otherwise the outermost Cargo workspace, or the nearest Cargo package.
func (d *Detector) DetectRepository(ctx context.Context, location string) (*Repository, error) {
	absPath, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	if gitRoot := d.findGitRoot(startDir); gitRoot != "" {
		repo := &Repository{
			Kind:   KindGit,
			Root:   gitRoot,
			Origin: d.extractGitOrigin(gitRoot),
		}
		repo.Name = d.cargoName(ctx, gitRoot)
		if repo.Name == "" {
			repo.Name = gitProjectName(repo.Origin, gitRoot)
		}
		return repo, nil
	}

	if cargoRoot := d.findCargoRoot(ctx, startDir); cargoRoot != "" {
		repo := &Repository{Kind: KindCargo, Root: cargoRoot}
		if repo.Name = d.cargoName(ctx, cargoRoot); repo.Name == "" {
			repo.Name = filepath.Base(cargoRoot)
		}
		return repo, nil
	}
	return nil, ErrNotDetected
}

// findGitRoot finds the root of the git repository containing the given directory
func (d *Detector) findGitRoot(startDir string) string {
	for dir := startDir; ; {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// findCargoRoot returns the outermost directory with a workspace manifest, or the nearest manifest directory
func (d *Detector) findCargoRoot(ctx context.Context, startDir string) string {
	nearest, workspace := "", ""
	for dir := startDir; ; {
		if aManifest := d.manifest(ctx, dir); aManifest != nil {
			if nearest == "" {
				nearest = dir
			}
			if aManifest.isWorkspace() {
				workspace = dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if workspace != "" {
		return workspace
	}
	return nearest
}

// manifest reads and decodes Cargo.toml in dir; a missing or malformed manifest yields nil
func (d *Detector) manifest(ctx context.Context, dir string) *cargoManifest {
	manifestPath := filepath.Join(dir, "Cargo.toml")
	if ok, _ := d.fs.Exists(ctx, manifestPath); !ok {
		return nil
	}
	content, err := d.fs.DownloadWithURL(ctx, manifestPath)
	if err != nil {
		return nil
	}
	result := &cargoManifest{}
	if err := toml.Unmarshal(content, &result.tables); err != nil {
		return nil
	}
	return result
}

// cargoName returns the package name of the manifest in dir
func (d *Detector) cargoName(ctx context.Context, dir string) string {
	if aManifest := d.manifest(ctx, dir); aManifest != nil {
		return aManifest.packageName()
	}
	return ""
}

// extractGitOrigin extracts the origin URL from git config
func (d *Detector) extractGitOrigin(gitRoot string) string {
	data, err := os.ReadFile(filepath.Join(gitRoot, ".git", "config"))
	if err != nil {
		return ""
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			foundRemote = strings.Contains(line, `[remote "origin"]`)
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url") {
			if idx := strings.IndexByte(line, '='); idx != -1 {
				return strings.TrimSpace(line[idx+1:])
			}
		}
	}
	return ""
}

func gitProjectName(origin, gitRoot string) string {
	if origin != "" {
		origin = strings.TrimSuffix(origin, ".git")
		if idx := strings.LastIndexAny(origin, "/:"); idx != -1 && idx+1 < len(origin) {
			return origin[idx+1:]
		}
	}
	return filepath.Base(gitRoot)
}
