package graph

import "sort"

// Declaration is a unit as discovered by an inspector, with the declarations nested in it.
// Spans are raw; NewForest normalizes them.
type Declaration struct {
	Unit   *Unit
	Nested []*Declaration
}

// Forest holds units of a single file in pre-order.
// A child span lies within its parent span, sibling spans never overlap
// and siblings ascend by start line.
type Forest struct {
	Units []*Unit `json:"units"`
	Roots []int   `json:"roots"`
}

// NewForest builds a forest out of declarations.
// A unit is clipped to its parent span and to the lines following its previous sibling;
// a unit left without lines is dropped together with its nested declarations.
func NewForest(declarations []*Declaration) *Forest {
	forest := &Forest{}
	forest.Roots = forest.add(-1, nil, declarations)
	return forest
}

func (f *Forest) add(parent int, bound *Span, declarations []*Declaration) []int {
	ordered := make([]*Declaration, 0, len(declarations))
	for _, declaration := range declarations {
		if declaration != nil && declaration.Unit != nil {
			ordered = append(ordered, declaration)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Unit.Span.Start < ordered[j].Unit.Span.Start
	})
	var indexes []int
	prevEnd := 0
	for _, declaration := range ordered {
		unit := declaration.Unit
		span := unit.Span
		if bound != nil {
			if span.Start < bound.Start {
				span.Start = bound.Start
			}
			if span.End > bound.End {
				span.End = bound.End
			}
		}
		if span.Start <= prevEnd {
			span.Start = prevEnd + 1
		}
		if span.Lines() == 0 {
			continue
		}
		unit.Span = span
		unit.Parent = parent
		unit.Children = nil
		index := len(f.Units)
		f.Units = append(f.Units, unit)
		indexes = append(indexes, index)
		prevEnd = span.End
		unit.Children = f.add(index, &unit.Span, declaration.Nested)
	}
	return indexes
}

// Len returns number of units
func (f *Forest) Len() int {
	return len(f.Units)
}

// Locate returns the index of the innermost unit containing line, or -1.
// It descends from the roots, picking the containing child at each level.
func (f *Forest) Locate(line int) int {
	result := -1
	candidates := f.Roots
	for len(candidates) > 0 {
		idx := f.containing(candidates, line)
		if idx == -1 {
			break
		}
		result = idx
		candidates = f.Units[idx].Children
	}
	return result
}

func (f *Forest) containing(siblings []int, line int) int {
	i := sort.Search(len(siblings), func(i int) bool {
		return f.Units[siblings[i]].Span.End >= line
	})
	if i < len(siblings) && f.Units[siblings[i]].Span.Contains(line) {
		return siblings[i]
	}
	return -1
}
