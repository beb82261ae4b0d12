package taxonomy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPResolver_Resolve_FromCache(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		cachedBody string
		want       string
		wantErr    error
		wantAnyErr bool
	}{
		{
			name:       "resolved category from cached response",
			raw:        "personal-finance",
			cachedBody: `{"category_id": "finance", "resolved": true}`,
			want:       "finance",
		},
		{
			name:       "service reported no match",
			raw:        "astrology",
			cachedBody: `{"category_id": "", "resolved": false}`,
			wantErr:    ErrUnresolved,
		},
		{
			name:       "invalid cached JSON",
			raw:        "broken",
			cachedBody: `{invalid json`,
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cacheDir := t.TempDir()
			require.NoError(t, os.WriteFile(
				NewFileCache(cacheDir).filePath(tt.raw), []byte(tt.cachedBody), 0644))

			resolver := NewHTTPResolver(cacheDir, HTTPConfig{Host: "taxonomy.invalid", Key: "test-key"})
			got, err := resolver.Resolve(context.Background(), tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.wantAnyErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPResolver_Resolve_EmptyCategory(t *testing.T) {
	resolver := NewHTTPResolver(t.TempDir(), HTTPConfig{Host: "taxonomy.invalid"})

	_, err := resolver.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnresolved)
}

func TestFileCache(t *testing.T) {
	cacheDir := t.TempDir()
	cache := NewFileCache(cacheDir)

	calls := 0
	fetch := func() ([]byte, error) {
		calls++
		return []byte(`{"category_id": "finance", "resolved": true}`), nil
	}

	first, err := cache.cache("personal-finance", fetch)
	require.NoError(t, err)

	second, err := cache.cache("personal-finance", fetch)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second lookup must be served from disk")
}

func TestFileCache_HostileCategoryStaysInRoot(t *testing.T) {
	cacheDir := t.TempDir()
	cache := NewFileCache(cacheDir)

	raw := "../../outside/secret"
	_, err := cache.cache(raw, func() ([]byte, error) {
		return []byte(`{"category_id": "", "resolved": false}`), nil
	})
	require.NoError(t, err)

	path := cache.filePath(raw)
	assert.Equal(t, cacheDir, filepath.Dir(path))
	assert.FileExists(t, path)
}
