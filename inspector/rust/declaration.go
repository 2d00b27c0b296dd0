package rust

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/diffgate/inspector/graph"
	"github.com/viant/diffgate/inspector/info"
)

// itemKinds maps tree-sitter item nodes to unit kinds
var itemKinds = map[string]graph.Kind{
	"function_item":           graph.KindFunction,
	"function_signature_item": graph.KindFunction,
	"struct_item":             graph.KindStruct,
	"union_item":              graph.KindStruct,
	"enum_item":               graph.KindEnum,
	"trait_item":              graph.KindTrait,
	"impl_item":               graph.KindImpl,
	"const_item":              graph.KindConst,
	"static_item":             graph.KindStatic,
	"type_item":               graph.KindTypeAlias,
	"associated_type":         graph.KindTypeAlias,
	"macro_definition":        graph.KindMacro,
	"mod_item":                graph.KindModule,
}

// opaque nodes never contain items worth descending into
var opaque = map[string]bool{
	"attribute_item":       true,
	"inner_attribute_item": true,
	"line_comment":         true,
	"block_comment":        true,
	"token_tree":           true,
	"use_declaration":      true,
	"string_literal":       true,
}

// scope describes the declaration enclosing the items being visited
type scope struct {
	names   []string
	modules []graph.Module
	trait   bool
}

type visitor struct {
	source []byte
	config *info.Config
}

// items collects declarations under container, descending through nodes that are not items
func (v *visitor) items(container *sitter.Node, parent *scope) []*graph.Declaration {
	if parent == nil {
		parent = &scope{}
	}
	var result []*graph.Declaration
	for j := 0; j < int(container.NamedChildCount()); j++ {
		child := container.NamedChild(j)
		if child == nil || opaque[child.Type()] {
			continue
		}
		kind, ok := itemKinds[child.Type()]
		if !ok {
			result = append(result, v.items(child, parent)...)
			continue
		}
		result = append(result, v.declaration(child, kind, parent))
	}
	return result
}

func (v *visitor) declaration(node *sitter.Node, kind graph.Kind, parent *scope) *graph.Declaration {
	start, tokens := v.leading(node)
	unit := &graph.Unit{
		Kind:       kind,
		Name:       v.name(node, kind),
		Visibility: v.visibility(node, kind, parent),
		Span:       graph.Span{Start: start, End: int(node.EndPoint().Row) + 1},
		Attributes: attributes(tokens),
		ModulePath: parent.modules,
		Parent:     -1,
	}
	names := append(append(make([]string, 0, len(parent.names)+1), parent.names...), unit.Name)
	unit.QualifiedName = strings.Join(names, "::")
	if kind == graph.KindModule {
		unit.ModulePath = append(append(make([]graph.Module, 0, len(parent.modules)+1), parent.modules...),
			graph.Module{Name: unit.Name, Attributes: unit.Attributes})
	}

	result := &graph.Declaration{Unit: unit}
	inner := &scope{names: names, modules: unit.ModulePath}
	if kind == graph.KindImpl {
		// members of Trait for Type are qualified by Type
		inner.names = append(append(make([]string, 0, len(parent.names)+1), parent.names...), v.implType(node))
	}
	switch node.Type() {
	case "mod_item", "impl_item", "trait_item":
		inner.trait = node.Type() == "trait_item"
		if body := node.ChildByFieldName("body"); body != nil {
			result.Nested = v.items(body, inner)
		}
	case "function_item":
		if !v.config.NestedItems {
			break
		}
		if body := node.ChildByFieldName("body"); body != nil {
			result.Nested = v.items(body, inner)
		}
	}
	return result
}

// leading returns the first line of the attribute and doc comment block preceding node, with attribute tokens.
// Plain comments inside the block are skipped, any other node ends it.
func (v *visitor) leading(node *sitter.Node) (int, []string) {
	start := int(node.StartPoint().Row) + 1
	var tokens []string
	for prev := node.PrevNamedSibling(); prev != nil; prev = prev.PrevNamedSibling() {
		switch prev.Type() {
		case "attribute_item":
			tokens = append(tokens, normalizeAttribute(prev.Content(v.source)))
			start = int(prev.StartPoint().Row) + 1
		case "line_comment", "block_comment":
			if isDocComment(prev.Content(v.source)) {
				start = int(prev.StartPoint().Row) + 1
			}
		default:
			return start, tokens
		}
	}
	return start, tokens
}

func (v *visitor) name(node *sitter.Node, kind graph.Kind) string {
	if kind == graph.KindImpl {
		return v.implName(node)
	}
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		return nameNode.Content(v.source)
	}
	return "_"
}

// implName returns Type, or Trait for Type, using the last path segment without generic arguments
func (v *visitor) implName(node *sitter.Node) string {
	name := v.implType(node)
	if traitNode := node.ChildByFieldName("trait"); traitNode != nil {
		name = typeName(traitNode.Content(v.source)) + " for " + name
	}
	return name
}

// implType returns the implementing type of an impl block
func (v *visitor) implType(node *sitter.Node) string {
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		return typeName(typeNode.Content(v.source))
	}
	return "_"
}

func typeName(text string) string {
	if idx := strings.IndexByte(text, '<'); idx != -1 {
		text = text[:idx]
	}
	if fields := strings.Fields(text); len(fields) > 0 {
		text = fields[len(fields)-1]
	}
	if idx := strings.LastIndex(text, "::"); idx != -1 {
		text = text[idx+2:]
	}
	return strings.TrimLeft(text, "&!")
}

// visibility returns Public only for a bare pub modifier; trait members are always public
func (v *visitor) visibility(node *sitter.Node, kind graph.Kind, parent *scope) graph.Visibility {
	if parent.trait {
		return graph.Public
	}
	if kind == graph.KindImpl || kind == graph.KindMacro {
		return graph.Private
	}
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		if child != nil && child.Type() == "visibility_modifier" {
			if strings.TrimSpace(child.Content(v.source)) == "pub" {
				return graph.Public
			}
			return graph.Private
		}
	}
	return graph.Private
}

func isDocComment(text string) bool {
	switch {
	case strings.HasPrefix(text, "///"):
		return !strings.HasPrefix(text, "////")
	case strings.HasPrefix(text, "/**"):
		return !strings.HasPrefix(text, "/***") && !strings.HasPrefix(text, "/**/")
	}
	return false
}
