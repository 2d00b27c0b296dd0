package graph

import (
	"sort"
	"strings"
)

// Kind indicates the syntactic category of a code unit
type Kind string

const (
	KindFunction  Kind = "function"
	KindStruct    Kind = "struct"
	KindEnum      Kind = "enum"
	KindTrait     Kind = "trait"
	KindImpl      Kind = "impl"
	KindConst     Kind = "const"
	KindStatic    Kind = "static"
	KindTypeAlias Kind = "type_alias"
	KindMacro     Kind = "macro"
	KindModule    Kind = "module"
)

// Kinds lists every unit kind in declaration order
var Kinds = []Kind{KindFunction, KindStruct, KindEnum, KindTrait, KindImpl, KindConst, KindStatic, KindTypeAlias, KindMacro, KindModule}

// ParseKind returns the kind named by value
func ParseKind(value string) (Kind, bool) {
	for _, kind := range Kinds {
		if string(kind) == value {
			return kind, true
		}
	}
	return "", false
}

// Visibility is the declared visibility of a unit
type Visibility string

const (
	Public  Visibility = "public"
	Private Visibility = "private"
)

// Visibilities lists every visibility in declaration order
var Visibilities = []Visibility{Public, Private}

// ParseVisibility returns the visibility named by value
func ParseVisibility(value string) (Visibility, bool) {
	for _, visibility := range Visibilities {
		if string(visibility) == value {
			return visibility, true
		}
	}
	return "", false
}

// Attribute markers recognised by classification
const (
	MarkerTest    = "test"
	MarkerBench   = "bench"
	MarkerCfgTest = "cfg(test)"
)

// Span is an inclusive 1-based line range
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains returns true if line falls within the span
func (s Span) Contains(line int) bool {
	return line >= s.Start && line <= s.End
}

// Lines returns the number of lines covered by the span
func (s Span) Lines() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start + 1
}

// Attributes is a sorted set of normalized attribute tokens
type Attributes []string

// NewAttributes creates a set from tokens, dropping duplicates and empty tokens
func NewAttributes(tokens ...string) Attributes {
	var result Attributes
	for _, token := range tokens {
		if token == "" {
			continue
		}
		result = result.With(token)
	}
	return result
}

// Has returns true if the set contains token
func (a Attributes) Has(token string) bool {
	idx := sort.SearchStrings(a, token)
	return idx < len(a) && a[idx] == token
}

// With returns the set extended with token
func (a Attributes) With(token string) Attributes {
	idx := sort.SearchStrings(a, token)
	if idx < len(a) && a[idx] == token {
		return a
	}
	result := make(Attributes, 0, len(a)+1)
	result = append(result, a[:idx]...)
	result = append(result, token)
	return append(result, a[idx:]...)
}

// Module is an enclosing module entry of a unit
type Module struct {
	Name       string     `json:"name"`
	Attributes Attributes `json:"attributes,omitempty"`
}

// Unit represents a syntactic declaration of a source file
type Unit struct {
	Kind          Kind       `json:"kind"`
	Visibility    Visibility `json:"visibility"`
	Name          string     `json:"name"`
	QualifiedName string     `json:"qualifiedName"`
	Span          Span       `json:"span"`
	Attributes    Attributes `json:"attributes,omitempty"`
	// ModulePath holds enclosing modules from the outermost; a module unit ends with itself
	ModulePath []Module `json:"modulePath,omitempty"`
	// Parent is the forest index of the enclosing unit, -1 for roots
	Parent   int   `json:"-"`
	Children []int `json:"-"`
}

// IsTestModule returns true if any module path entry has one of the supplied names
// or is compiled only under cfg(test)
func (u *Unit) IsTestModule(names ...string) bool {
	for _, module := range u.ModulePath {
		if module.Attributes.Has(MarkerCfgTest) {
			return true
		}
		for _, name := range names {
			if module.Name == name {
				return true
			}
		}
	}
	return false
}

// ModuleNames returns the module path joined with ::
func (u *Unit) ModuleNames() string {
	names := make([]string, 0, len(u.ModulePath))
	for _, module := range u.ModulePath {
		names = append(names, module.Name)
	}
	return strings.Join(names, "::")
}
