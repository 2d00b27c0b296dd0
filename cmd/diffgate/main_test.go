package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scoreDiff = `diff --git a/src/score.rs b/src/score.rs
new file mode 100644
--- /dev/null
+++ b/src/score.rs
@@ -0,0 +1,4 @@
+pub fn one() {}
+pub fn two() {}
+fn three() {}
+pub struct Four;
`

func workspace(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "score.rs"), []byte("pub fn one() {}\npub fn two() {}\nfn three() {}\npub struct Four;\n"), 0o644))
	diffFile := filepath.Join(root, "pr.diff")
	require.NoError(t, os.WriteFile(diffFile, []byte(scoreDiff), 0o644))
	return root, diffFile
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd("test")
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeCmd(t *testing.T) {
	root, diffFile := workspace(t)

	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr error
		expect  []string
	}{
		{
			name:   "github output within limits",
			args:   []string{"analyze", "--diff-file", diffFile, "--base-dir", root},
			expect: []string{"weighted_score=10\n", "prod_functions_changed=3\n", "exceeds_limit=false\n"},
		},
		{
			name:    "score limit from flag",
			args:    []string{"analyze", "--diff-file", diffFile, "--base-dir", root, "--max-score", "5"},
			wantErr: ErrLimitExceeded,
			expect:  []string{"weighted_score=10\n", "exceeds_limit=true\n"},
		},
		{
			name:   "diff from stdin",
			stdin:  scoreDiff,
			args:   []string{"analyze", "--base-dir", root, "--format", "json"},
			expect: []string{`"weightedScore": 10`},
		},
		{
			name:   "comment output",
			args:   []string{"analyze", "--diff-file", diffFile, "--base-dir", root, "--format", "comment"},
			expect: []string{"<!-- diffgate-comment -->", "| Weighted Score | 10 | 100 | ✅ |", "`src/score.rs:1-1`"},
		},
		{
			name:    "human output",
			args:    []string{"analyze", "--diff-file", diffFile, "--base-dir", root, "--format", "human", "--max-units", "2"},
			wantErr: ErrLimitExceeded,
			expect:  []string{"max_prod_units", "exceeds limits"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			output, err := execute(t, tc.stdin, tc.args...)
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "%v", err)
			} else {
				require.NoError(t, err)
			}
			for _, expect := range tc.expect {
				assert.Contains(t, output, expect)
			}
		})
	}
}

func TestAnalyzeCmd_ConfigFile(t *testing.T) {
	root, diffFile := workspace(t)
	configFile := filepath.Join(root, "gate.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("limits:\n  max_weighted_score: 5\n  fail_on_exceed: false\noutput:\n  format: json\n"), 0o644))

	output, err := execute(t, "", "analyze", "--diff-file", diffFile, "--base-dir", root, "--config", configFile)
	require.NoError(t, err)
	assert.Contains(t, output, `"exceedsLimit": true`)

	_, err = execute(t, "", "analyze", "--diff-file", diffFile, "--base-dir", root, "--config", filepath.Join(root, "missing.yaml"))
	assert.Error(t, err)

	_, err = execute(t, "", "analyze", "--diff-file", diffFile, "--base-dir", root, "--format", "xml")
	assert.Error(t, err)
}

func TestAnalyzeCmd_MetricsFile(t *testing.T) {
	root, diffFile := workspace(t)
	metricsFile := filepath.Join(root, "metrics.prom")
	_, err := execute(t, "", "analyze", "--diff-file", diffFile, "--base-dir", root, "--metrics-file", metricsFile)
	require.NoError(t, err)

	content, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "diffgate_weighted_score 10")
	assert.Contains(t, string(content), `diffgate_changes_total{classification="production"} 4`)
}

func TestAnalyzeCmd_AbortOnAccessError(t *testing.T) {
	root, diffFile := workspace(t)
	require.NoError(t, os.Remove(filepath.Join(root, "src", "score.rs")))

	output, err := execute(t, "", "analyze", "--diff-file", diffFile, "--base-dir", root)
	require.NoError(t, err)
	assert.Contains(t, output, "weighted_score=0\n")

	_, err = execute(t, "", "analyze", "--diff-file", diffFile, "--base-dir", root, "--abort-on-access-error")
	assert.Error(t, err)
}

func TestUnitsCmd(t *testing.T) {
	root, _ := workspace(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "tests"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "tests", "it.rs"), []byte("fn helper() {}\n"), 0o644))

	output, err := execute(t, "", "units", filepath.Join(root, "src", "score.rs"))
	require.NoError(t, err)
	assert.Contains(t, output, "one")
	assert.Contains(t, output, "Four")
	assert.Contains(t, output, "production")

	output, err = execute(t, "", "units", root, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, output, `"path": "src/score.rs"`)
	assert.Contains(t, output, `"path": "tests/it.rs"`)
	assert.Contains(t, output, `"test"`)

	_, err = execute(t, "", "units", filepath.Join(root, "missing.rs"))
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	output, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "diffgate version test\n", output)
}
