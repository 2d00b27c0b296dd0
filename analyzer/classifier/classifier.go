package classifier

import (
	"path"
	"strings"

	"github.com/viant/diffgate/analyzer/change"
	"github.com/viant/diffgate/config"
	"github.com/viant/diffgate/inspector/graph"
)

// Classifier assigns a classification to code units; first matching rule wins
type Classifier struct {
	rules    config.Classification
	features []string
}

// New creates a classifier for rules
func New(rules config.Classification) *Classifier {
	features := make([]string, 0, len(rules.TestFeatures))
	for _, feature := range rules.TestFeatures {
		features = append(features, `"`+feature+`"`)
	}
	return &Classifier{rules: rules, features: features}
}

// Classify returns the classification of unit declared in the file at filePath.
// Precedence: example or build script path, test or benchmark path, unit attributes,
// enclosing test module, test feature gate, production.
func (c *Classifier) Classify(filePath string, unit *graph.Unit) change.Classification {
	if classification, ok := c.ClassifyPath(filePath); ok {
		return classification
	}
	if unit == nil {
		return change.Production
	}
	switch {
	case unit.Attributes.Has(graph.MarkerTest), unit.Attributes.Has(graph.MarkerCfgTest):
		return change.Test
	case unit.Attributes.Has(graph.MarkerBench):
		return change.Benchmark
	case unit.IsTestModule(c.rules.TestModules...):
		return change.Test
	case c.featureGated(unit):
		return change.Test
	}
	return change.Production
}

// ClassifyPath applies the path rules only
func (c *Classifier) ClassifyPath(filePath string) (change.Classification, bool) {
	switch {
	case underAny(filePath, c.rules.ExamplePaths):
		return change.Example, true
	case c.isBuildScript(filePath):
		return change.BuildScript, true
	case underAny(filePath, c.rules.TestPaths):
		return change.Test, true
	case underAny(filePath, c.rules.BenchmarkPaths):
		return change.Benchmark, true
	}
	return "", false
}

func (c *Classifier) isBuildScript(filePath string) bool {
	name := path.Base(filePath)
	for _, script := range c.rules.BuildScripts {
		if name == script {
			return true
		}
	}
	return false
}

// featureGated returns true if a cfg(...) attribute of the unit or an enclosing module names a test feature
func (c *Classifier) featureGated(unit *graph.Unit) bool {
	if c.gates(unit.Attributes) {
		return true
	}
	for _, module := range unit.ModulePath {
		if c.gates(module.Attributes) {
			return true
		}
	}
	return false
}

func (c *Classifier) gates(attributes graph.Attributes) bool {
	for _, token := range attributes {
		// cfg_attr only toggles attributes, the item itself is always compiled
		if !strings.HasPrefix(token, "cfg(") {
			continue
		}
		for _, feature := range c.features {
			if strings.Contains(token, feature) {
				return true
			}
		}
	}
	return false
}

// Under returns true if filePath starts with prefix or contains it right after a directory separator
func Under(filePath, prefix string) bool {
	if prefix == "" {
		return false
	}
	return strings.HasPrefix(filePath, prefix) || strings.Contains(filePath, "/"+prefix)
}

// Match returns the first prefix filePath is under
func Match(filePath string, prefixes []string) (string, bool) {
	for _, prefix := range prefixes {
		if Under(filePath, prefix) {
			return prefix, true
		}
	}
	return "", false
}

func underAny(filePath string, prefixes []string) bool {
	_, ok := Match(filePath, prefixes)
	return ok
}
