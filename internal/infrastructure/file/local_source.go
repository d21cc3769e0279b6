package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalSource resolves upload payloads against a base directory on local
// disk. Whatever produced the spreadsheet has already been flattened to a
// JSON row file by the time it lands here.
type LocalSource struct {
	BaseDir string
}

func NewLocalSource(baseDir string) *LocalSource {
	if baseDir == "" {
		baseDir = "."
	}
	return &LocalSource{BaseDir: baseDir}
}

func (s *LocalSource) Open(ctx context.Context, sourcePath string) (io.ReadCloser, error) {
	_ = ctx

	path := filepath.Clean(sourcePath)
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.BaseDir, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat upload payload %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("upload payload %s is a directory", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open upload payload %s: %w", path, err)
	}
	return f, nil
}
