package taxonomy

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
)

// FileCache stores resolved category responses on disk so repeated lookups
// do not hit the remote taxonomy service. Entries are addressed by the raw
// category's digest: raw categories are arbitrary source text and must not
// influence the directory layout.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

func (f *FileCache) filePath(rawCategory string) string {
	digest := sha256.Sum256([]byte(rawCategory))
	return filepath.Join(f.rootDir, fmt.Sprintf("%x.json", digest))
}

func (cache *FileCache) cache(rawCategory string, f func() ([]byte, error)) ([]byte, error) {
	contents, err := os.ReadFile(cache.filePath(rawCategory))
	if err == nil {
		return contents, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("os.ReadFile > %w", err)
	}

	contents, err = f()
	if err != nil {
		return nil, fmt.Errorf("resolve category for taxonomy service > %w", err)
	}

	if err := os.MkdirAll(cache.rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll > %w", err)
	}
	if err := os.WriteFile(cache.filePath(rawCategory), contents, 0o644); err != nil {
		return contents, fmt.Errorf("os.WriteFile > %w", err)
	}
	return contents, nil
}
