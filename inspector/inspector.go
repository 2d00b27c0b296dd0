package inspector

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/diffgate/inspector/graph"
	"github.com/viant/diffgate/inspector/info"
	"github.com/viant/diffgate/inspector/rust"
)

// Inspector provides an interface for extracting code units from source
type Inspector interface {
	// InspectSource parses source code from a byte slice and builds its unit forest
	InspectSource(ctx context.Context, src []byte) (*graph.Forest, error)

	// InspectFile reads a source file and builds its unit forest
	InspectFile(ctx context.Context, URL string) (*graph.Forest, error)
}

// Factory creates appropriate inspectors based on language
type Factory struct {
	config *info.Config
}

// NewFactory creates a new inspector factory with the given config
func NewFactory(config *info.Config) *Factory {
	if config == nil {
		config = info.DefaultConfig()
	}
	return &Factory{
		config: config,
	}
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".rs":
		return rust.NewInspector(f.config), nil
	default:
		return nil, fmt.Errorf("%w: %q", info.ErrUnsupportedLanguage, ext)
	}
}

// Supports returns true if an inspector handles filename
func (f *Factory) Supports(filename string) bool {
	_, err := f.GetInspector(filename)
	return err == nil
}

// InspectFile is a convenience method that gets the appropriate inspector and inspects the file
func (f *Factory) InspectFile(ctx context.Context, filename string) (*graph.Forest, error) {
	inspector, err := f.GetInspector(filename)
	if err != nil {
		return nil, err
	}
	return inspector.InspectFile(ctx, filename)
}
