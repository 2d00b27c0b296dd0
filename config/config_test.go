package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/diffgate/config"
	"github.com/viant/diffgate/inspector/graph"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"test-utils", "testing", "mock"}, cfg.Classification.TestFeatures)
	assert.Equal(t, []string{"tests/"}, cfg.Classification.TestPaths)
	assert.Equal(t, []string{"build.rs"}, cfg.Classification.BuildScripts)
	assert.Equal(t, 30, *cfg.Limits.MaxProdUnits)
	assert.Equal(t, 100, *cfg.Limits.MaxWeightedScore)
	assert.Nil(t, cfg.Limits.MaxProdLines)
	assert.True(t, cfg.Limits.FailOnExceed)
	assert.Equal(t, config.AccessSkip, cfg.OnAccessError)
	assert.Equal(t, config.FormatGithub, cfg.Output.Format)
}

func TestWeights_Lookup(t *testing.T) {
	weights := config.Default().Weights
	tests := []struct {
		kind       graph.Kind
		visibility graph.Visibility
		want       int
	}{
		{kind: graph.KindFunction, visibility: graph.Public, want: 3},
		{kind: graph.KindFunction, visibility: graph.Private, want: 1},
		{kind: graph.KindStruct, visibility: graph.Public, want: 3},
		{kind: graph.KindTrait, visibility: graph.Private, want: 4},
		{kind: graph.KindImpl, visibility: graph.Private, want: 2},
		{kind: graph.KindModule, visibility: graph.Public, want: 1},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, weights.Lookup(tc.kind, tc.visibility), "%s/%s", tc.kind, tc.visibility)
	}

	custom := config.Weights{Default: 7, Table: map[graph.Kind]map[graph.Visibility]int{
		graph.KindFunction: {graph.Public: 5},
	}}
	assert.Equal(t, 5, custom.Lookup(graph.KindFunction, graph.Public))
	assert.Equal(t, 7, custom.Lookup(graph.KindFunction, graph.Private))
	assert.Equal(t, 7, custom.Lookup(graph.KindEnum, graph.Public))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		wantField string
		check     func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "empty document keeps defaults",
			yaml: "",
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.Default(), cfg)
			},
		},
		{
			name: "overlay",
			yaml: `classification:
  test_paths: ["tests/", "testing/"]
  ignore_paths: ["vendor/"]
weights:
  default: 2
  table:
    function:
      public: 5
limits:
  max_weighted_score: 5
  max_prod_units: null
  max_prod_lines: 200
  per_kind:
    trait: 1
on_access_error: abort
output:
  format: json
`,
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, []string{"tests/", "testing/"}, cfg.Classification.TestPaths)
				assert.Equal(t, []string{"vendor/"}, cfg.Classification.IgnorePaths)
				assert.Equal(t, []string{"benches/"}, cfg.Classification.BenchmarkPaths)
				assert.Equal(t, 5, cfg.Weights.Lookup(graph.KindFunction, graph.Public))
				assert.Equal(t, 2, cfg.Weights.Lookup(graph.KindFunction, graph.Private))
				assert.Equal(t, 3, cfg.Weights.Lookup(graph.KindStruct, graph.Public))
				assert.Nil(t, cfg.Limits.MaxProdUnits)
				require.NotNil(t, cfg.Limits.MaxWeightedScore)
				assert.Equal(t, 5, *cfg.Limits.MaxWeightedScore)
				require.NotNil(t, cfg.Limits.MaxProdLines)
				assert.Equal(t, 200, *cfg.Limits.MaxProdLines)
				assert.Equal(t, 1, cfg.Limits.PerKind[graph.KindTrait])
				assert.Equal(t, config.AccessAbort, cfg.OnAccessError)
				assert.Equal(t, config.FormatJSON, cfg.Output.Format)
				assert.True(t, cfg.Output.IncludeDetails)
			},
		},
		{
			name:      "unknown format",
			yaml:      "output:\n  format: xml\n",
			wantField: "output.format",
		},
		{
			name:      "unknown access policy",
			yaml:      "on_access_error: retry\n",
			wantField: "on_access_error",
		},
		{
			name:      "negative limit",
			yaml:      "limits:\n  max_prod_units: -1\n",
			wantField: "limits.max_prod_units",
		},
		{
			name:      "unknown weight kind",
			yaml:      "weights:\n  table:\n    class:\n      public: 1\n",
			wantField: "weights.table.class",
		},
		{
			name:      "unknown weight visibility",
			yaml:      "weights:\n  table:\n    function:\n      protected: 1\n",
			wantField: "weights.table.function.protected",
		},
		{
			name:      "negative weight",
			yaml:      "weights:\n  table:\n    enum:\n      public: -3\n",
			wantField: "weights.table.enum.public",
		},
		{
			name:      "unknown per kind limit",
			yaml:      "limits:\n  per_kind:\n    class: 1\n",
			wantField: "limits.per_kind.class",
		},
		{
			name:      "empty test path",
			yaml:      "classification:\n  test_paths: [\"\"]\n",
			wantField: "classification.test_paths[0]",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := config.Parse([]byte(tc.yaml))
			if tc.wantField != "" {
				require.Error(t, err)
				var cfgErr *config.Error
				require.True(t, errors.As(err, &cfgErr), err.Error())
				assert.Equal(t, tc.wantField, cfgErr.Field)
				return
			}
			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := config.Parse([]byte("limits: [1, 2"))
	assert.Error(t, err)

	_, err = config.Parse([]byte("unknown_section: true\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	location := filepath.Join(t.TempDir(), ".diffgate.yaml")
	require.NoError(t, os.WriteFile(location, []byte("limits:\n  max_weighted_score: 42\n"), 0o644))

	cfg, err := config.Load(context.Background(), location)
	require.NoError(t, err)
	assert.Equal(t, 42, *cfg.Limits.MaxWeightedScore)

	_, err = config.Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
