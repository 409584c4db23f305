package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"travel_ideas/internal/domain"
)

// FSSource serves dataset files from an fs.FS (a data directory in production,
// fstest.MapFS in tests).
type FSSource struct{ fsys fs.FS }

func NewFSSource(fsys fs.FS) FSSource { return FSSource{fsys: fsys} }

func NewDirSource(dir string) FSSource { return FSSource{fsys: os.DirFS(dir)} }

func (s FSSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := s.fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, domain.ErrNotFound)
	}
	return f, err
}
