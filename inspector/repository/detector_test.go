package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/diffgate/inspector/repository"
)

func writeFile(t *testing.T, location, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
	require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
}

func TestDetector_DetectRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("git repository", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, ".git", "config"), "[core]\n\tbare = false\n[remote \"origin\"]\n\turl = git@github.com:acme/widgets.git\n")
		writeFile(t, filepath.Join(root, "Cargo.toml"), "[package]\nname = \"widgets-core\"\nversion = \"0.1.0\"\n")
		writeFile(t, filepath.Join(root, "src", "lib.rs"), "pub fn a() {}\n")

		repo, err := repository.New().DetectRepository(ctx, filepath.Join(root, "src", "lib.rs"))
		require.NoError(t, err)
		assert.Equal(t, repository.KindGit, repo.Kind)
		assert.Equal(t, root, repo.Root)
		assert.Equal(t, "git@github.com:acme/widgets.git", repo.Origin)
		assert.Equal(t, "widgets-core", repo.Name)
	})

	t.Run("git repository without manifest", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, ".git", "config"), "[remote \"origin\"]\n\turl = https://github.com/acme/tools.git\n")

		repo, err := repository.New().DetectRepository(ctx, root)
		require.NoError(t, err)
		assert.Equal(t, "tools", repo.Name)
	})

	t.Run("package name", func(t *testing.T) {
		tests := []struct {
			name     string
			manifest string
			expect   string
		}{
			{
				name:     "name mentioned inside a string value",
				manifest: "[package]\ndescription = \"gate where name = 'bogus' appears\"\nname = \"real-crate\"\n",
				expect:   "real-crate",
			},
			{
				name:     "name only in a later table",
				manifest: "[package]\nversion = \"0.1.0\"\n\n[[bin]]\nname = \"tool\"\n",
				expect:   "pkgroot",
			},
			{
				name:     "malformed manifest",
				manifest: "[package\nname = \"broken\"\n",
				expect:   "pkgroot",
			},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				root := filepath.Join(t.TempDir(), "pkgroot")
				writeFile(t, filepath.Join(root, ".git", "config"), "[core]\n\tbare = false\n")
				writeFile(t, filepath.Join(root, "Cargo.toml"), tc.manifest)

				repo, err := repository.New().DetectRepository(ctx, root)
				require.NoError(t, err)
				assert.Equal(t, tc.expect, repo.Name)
			})
		}
	})

	t.Run("cargo workspace", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "Cargo.toml"), "[workspace]\nmembers = [\"crates/a\"]\n")
		writeFile(t, filepath.Join(root, "crates", "a", "Cargo.toml"), "[package]\nname = \"a\"\n")
		writeFile(t, filepath.Join(root, "crates", "a", "src", "lib.rs"), "fn a() {}\n")

		repo, err := repository.New().DetectRepository(ctx, filepath.Join(root, "crates", "a", "src"))
		require.NoError(t, err)
		if repo.Kind == repository.KindGit {
			t.Skip("temporary directory is inside a git checkout")
		}
		assert.Equal(t, repository.KindCargo, repo.Kind)
		assert.Equal(t, root, repo.Root)
		assert.Equal(t, filepath.Base(root), repo.Name)
	})

	t.Run("missing location", func(t *testing.T) {
		_, err := repository.New().DetectRepository(ctx, filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})
}
