package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
)

// Local writes reports into a directory
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if dir == "" {
		return nil, goerr.New("output directory is required")
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Write(ctx context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", goerr.Wrap(err, "failed to create output directory", goerr.V("dir", l.dir))
	}

	// name must stay inside dir
	path := filepath.Join(l.dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", goerr.Wrap(err, "failed to write report file", goerr.V("path", path))
	}
	return path, nil
}

func (l *Local) Close() error {
	return nil
}
