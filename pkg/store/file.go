package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/paragon/pkg/errors"
	"github.com/matzehuels/paragon/pkg/io"
)

// timestampLayout formats the run time in output file names.
const timestampLayout = "20060102_150405"

// FileStore writes each run to <dir>/<class>_stitched_boards_<timestamp>.txt.
type FileStore struct {
	dir string
}

// NewFileStore returns a store writing into dir. The directory is created
// on the first Save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the output directory.
func (s *FileStore) Dir() string { return s.dir }

// PathFor returns the file a run is written to.
func (s *FileStore) PathFor(run *Run) string {
	name := fmt.Sprintf("%s_stitched_boards_%s.txt", run.Class, run.CreatedAt.Format(timestampLayout))
	return filepath.Join(s.dir, name)
}

// Save appends the run's layouts to its file, so runs of one class that share
// a timestamp end up in the same file. Any failure is reported as
// errors.ErrCodeStoreFailed.
func (s *FileStore) Save(ctx context.Context, run *Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeStoreFailed, err, "create output directory %s", s.dir)
	}
	path := s.PathFor(run)
	if err := io.AppendLayouts(run.Layouts, path); err != nil {
		return errors.Wrap(errors.ErrCodeStoreFailed, err, "write %s", path)
	}
	return nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
