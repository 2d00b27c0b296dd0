package rust

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/viant/afs"
	"github.com/viant/diffgate/inspector/graph"
	"github.com/viant/diffgate/inspector/info"
)

// Inspector extracts code units from Rust source
type Inspector struct {
	config *info.Config
	fs     afs.Service
}

// NewInspector creates a new Rust Inspector with the provided configuration
func NewInspector(config *info.Config) *Inspector {
	if config == nil {
		config = info.DefaultConfig()
	}
	return &Inspector{
		config: config,
		fs:     afs.New(),
	}
}

// InspectSource parses Rust source code and builds its unit forest
func (i *Inspector) InspectSource(ctx context.Context, src []byte) (*graph.Forest, error) {
	return i.inspect(ctx, src, "")
}

// InspectFile reads a Rust source file from URL and builds its unit forest
func (i *Inspector) InspectFile(ctx context.Context, URL string) (*graph.Forest, error) {
	src, err := i.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", URL, err)
	}
	return i.inspect(ctx, src, URL)
}

func (i *Inspector) inspect(ctx context.Context, src []byte, location string) (*graph.Forest, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, &info.ParseError{FilePath: location, Message: "failed to parse source", Cause: err}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, &info.ParseError{FilePath: location, Line: firstSyntaxError(root), Message: "syntax error"}
	}
	v := &visitor{source: src, config: i.config}
	return graph.NewForest(v.items(root, nil)), nil
}

// firstSyntaxError returns the 1-based line of the first ERROR or MISSING node
func firstSyntaxError(node *sitter.Node) int {
	if node.IsError() || node.IsMissing() {
		return int(node.StartPoint().Row) + 1
	}
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if line := firstSyntaxError(child); line > 0 {
			return line
		}
	}
	return 0
}
