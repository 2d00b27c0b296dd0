package config

import (
	"github.com/viant/diffgate/inspector/graph"
)

// AccessPolicy decides what happens when a file's content cannot be read
type AccessPolicy string

const (
	AccessSkip  AccessPolicy = "skip"
	AccessAbort AccessPolicy = "abort"
)

// Output formats
const (
	FormatGithub  = "github"
	FormatJSON    = "json"
	FormatHuman   = "human"
	FormatComment = "comment"
)

// Config represents analysis settings
type Config struct {
	Classification Classification `yaml:"classification" json:"classification"`
	Weights        Weights        `yaml:"weights" json:"weights"`
	Limits         Limits         `yaml:"limits" json:"limits"`
	OnAccessError  AccessPolicy   `yaml:"on_access_error" json:"onAccessError" validate:"oneof=skip abort"`
	Output         Output         `yaml:"output" json:"output"`
}

// Classification holds the rules telling production code apart from the rest
type Classification struct {
	TestFeatures   []string `yaml:"test_features" json:"testFeatures" validate:"dive,required"`
	TestPaths      []string `yaml:"test_paths" json:"testPaths" validate:"dive,required"`
	BenchmarkPaths []string `yaml:"benchmark_paths" json:"benchmarkPaths" validate:"dive,required"`
	ExamplePaths   []string `yaml:"example_paths" json:"examplePaths" validate:"dive,required"`
	BuildScripts   []string `yaml:"build_scripts" json:"buildScripts" validate:"dive,required"`
	TestModules    []string `yaml:"test_modules" json:"testModules" validate:"dive,required"`
	IgnorePaths    []string `yaml:"ignore_paths" json:"ignorePaths" validate:"dive,required"`
}

// Weights assigns a score to each production unit by kind and visibility
type Weights struct {
	Default int                                     `yaml:"default" json:"default" validate:"gte=0"`
	Table   map[graph.Kind]map[graph.Visibility]int `yaml:"table" json:"table"`
}

// Lookup returns the weight of kind and visibility, or Default when the table has no entry
func (w Weights) Lookup(kind graph.Kind, visibility graph.Visibility) int {
	if byVisibility, ok := w.Table[kind]; ok {
		if weight, ok := byVisibility[visibility]; ok {
			return weight
		}
	}
	return w.Default
}

// Limits are thresholds a change set may not exceed; nil disables a limit
type Limits struct {
	MaxProdUnits     *int               `yaml:"max_prod_units" json:"maxProdUnits,omitempty" validate:"omitempty,gte=0"`
	MaxWeightedScore *int               `yaml:"max_weighted_score" json:"maxWeightedScore,omitempty" validate:"omitempty,gte=0"`
	MaxProdLines     *int               `yaml:"max_prod_lines" json:"maxProdLines,omitempty" validate:"omitempty,gte=0"`
	PerKind          map[graph.Kind]int `yaml:"per_kind" json:"perKind,omitempty"`
	FailOnExceed     bool               `yaml:"fail_on_exceed" json:"failOnExceed"`
}

// Output controls report rendering
type Output struct {
	Format         string `yaml:"format" json:"format" validate:"oneof=github json human comment"`
	IncludeDetails bool   `yaml:"include_details" json:"includeDetails"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Classification: Classification{
			TestFeatures:   []string{"test-utils", "testing", "mock"},
			TestPaths:      []string{"tests/"},
			BenchmarkPaths: []string{"benches/"},
			ExamplePaths:   []string{"examples/"},
			BuildScripts:   []string{"build.rs"},
			TestModules:    []string{"tests"},
		},
		Weights: Weights{
			Default: 1,
			Table: map[graph.Kind]map[graph.Visibility]int{
				graph.KindFunction:  {graph.Public: 3, graph.Private: 1},
				graph.KindStruct:    {graph.Public: 3, graph.Private: 1},
				graph.KindEnum:      {graph.Public: 3, graph.Private: 1},
				graph.KindTrait:     {graph.Public: 4, graph.Private: 4},
				graph.KindImpl:      {graph.Public: 2, graph.Private: 2},
				graph.KindConst:     {graph.Public: 1, graph.Private: 1},
				graph.KindStatic:    {graph.Public: 1, graph.Private: 1},
				graph.KindTypeAlias: {graph.Public: 1, graph.Private: 1},
				graph.KindMacro:     {graph.Public: 1, graph.Private: 1},
				graph.KindModule:    {graph.Public: 1, graph.Private: 1},
			},
		},
		Limits: Limits{
			MaxProdUnits:     Int(30),
			MaxWeightedScore: Int(100),
			FailOnExceed:     true,
		},
		OnAccessError: AccessSkip,
		Output: Output{
			Format:         FormatGithub,
			IncludeDetails: true,
		},
	}
}

// Int returns a pointer to value
func Int(value int) *int {
	return &value
}
