package inspector_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/diffgate/inspector"
	"github.com/viant/diffgate/inspector/info"
)

func TestFactory_GetInspector(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		wantErr   bool
		inspector string
	}{
		{
			name:      "Rust file",
			filename:  "src/lib.rs",
			inspector: "rust",
		},
		{
			name:      "Upper case extension",
			filename:  "src/MAIN.RS",
			inspector: "rust",
		},
		{
			name:     "Go file",
			filename: "main.go",
			wantErr:  true,
		},
		{
			name:     "No extension",
			filename: "Makefile",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := inspector.NewFactory(nil)
			insp, err := factory.GetInspector(tt.filename)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, info.ErrUnsupportedLanguage))
				assert.False(t, factory.Supports(tt.filename))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, insp)
			assert.True(t, strings.Contains(reflect.TypeOf(insp).String(), tt.inspector))
			assert.True(t, factory.Supports(tt.filename))
		})
	}
}

func TestFactory_InspectFile(t *testing.T) {
	location := filepath.Join(t.TempDir(), "lib.rs")
	require.NoError(t, os.WriteFile(location, []byte("pub fn a() {}\n\nfn b() {}\n"), 0o644))

	forest, err := inspector.NewFactory(nil).InspectFile(context.Background(), location)
	require.NoError(t, err)
	require.Equal(t, 2, forest.Len())
	assert.Equal(t, "a", forest.Units[0].Name)
	assert.Equal(t, "b", forest.Units[1].Name)

	_, err = inspector.NewFactory(nil).InspectFile(context.Background(), "notes.txt")
	assert.True(t, errors.Is(err, info.ErrUnsupportedLanguage))
}
