package rust

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/viant/diffgate/inspector/graph"
)

var cfgTestRe = regexp.MustCompile(`[(,]test[,)]`)

// normalizeAttribute turns #[ ... ] into a whitespace free token, e.g. cfg(feature="mock")
func normalizeAttribute(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "#")
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "[")
	text = strings.TrimSuffix(text, "]")
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

// attributes builds the attribute set of a unit, adding known markers
func attributes(tokens []string) graph.Attributes {
	result := graph.NewAttributes(tokens...)
	for _, token := range tokens {
		path := token
		if idx := strings.IndexByte(path, '('); idx != -1 {
			path = path[:idx]
		}
		switch {
		case path == "test" || strings.HasSuffix(path, "::test"):
			result = result.With(graph.MarkerTest)
		case path == "bench":
			result = result.With(graph.MarkerBench)
		case isCfgTest(token):
			result = result.With(graph.MarkerCfgTest)
		}
	}
	return result
}

// isCfgTest returns true when a cfg attribute enables the item under test, including all(test,..) and any(test,..)
func isCfgTest(token string) bool {
	if !strings.HasPrefix(token, "cfg(") {
		return false
	}
	for _, loc := range cfgTestRe.FindAllStringIndex(token, -1) {
		if strings.HasSuffix(token[:loc[0]+1], "not(") {
			continue
		}
		return true
	}
	return false
}
