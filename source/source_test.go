package source_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/diffgate/source"
)

func TestMemory_Content(t *testing.T) {
	snapshot := source.Memory{"src/lib.rs": []byte("fn a() {}\n")}
	content, err := snapshot.Content(context.Background(), "src/lib.rs")
	require.NoError(t, err)
	assert.Equal(t, "fn a() {}\n", string(content))

	_, err = snapshot.Content(context.Background(), "src/missing.rs")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestFunc_Content(t *testing.T) {
	accessor := source.Func(func(ctx context.Context, path string) ([]byte, error) {
		return []byte(path), nil
	})
	content, err := accessor.Content(context.Background(), "a.rs")
	require.NoError(t, err)
	assert.Equal(t, "a.rs", string(content))
}

func TestFS_Content(t *testing.T) {
	baseDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(baseDir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(baseDir, "src", "lib.rs"), []byte("pub fn a() {}\n"), 0o644))

	accessor := source.NewFS(baseDir)
	assert.Equal(t, baseDir, accessor.BaseURL())
	content, err := accessor.Content(context.Background(), "src/lib.rs")
	require.NoError(t, err)
	assert.Equal(t, "pub fn a() {}\n", string(content))

	_, err = accessor.Content(context.Background(), "src/missing.rs")
	assert.Error(t, err)
}
