// Package tempfile creates temporary files, and writes files atomically by way
// of a temporary file beside them.
package tempfile

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const allRWX = 0o777

type request struct {
	filename      string
	dir           string
	perm          fs.FileMode
	keepExtension bool
}

type Opts func(*request)

// WithName sets the filename of the temporary file.
func WithName(filename string) Opts {
	return func(tf *request) {
		tf.filename = filename
	}
}

// WithDir sets the directory to contain the temporary file. If dir is
// absolute, it will be used as-is, otherwise it will be taken relative to the
// system temporary directory ([os.TempDir]).
func WithDir(dir string) Opts {
	return func(tf *request) {
		tf.dir = dir
	}
}

// WithPerms sets the permissions of the temporary file.
func WithPerms(perms fs.FileMode) Opts {
	return func(tf *request) {
		tf.perm = perms
	}
}

// KeepingExtension ensures the extension of the filename is preserved when
// creating the temporary file. It has no effect if WithName is not also used.
func KeepingExtension() Opts {
	return func(tf *request) {
		tf.keepExtension = true
	}
}

// New creates a temporary file with the provided options.
func New(opts ...Opts) (*os.File, error) {
	req := &request{}

	for _, opt := range opts {
		opt(req)
	}

	dir := os.TempDir()
	if req.dir != "" {
		if filepath.IsAbs(req.dir) {
			dir = filepath.Clean(req.dir)
		} else {
			dir = filepath.Join(dir, req.dir)
		}
	}

	// umask will make perms more reasonable
	if err := os.MkdirAll(dir, allRWX); err != nil {
		return nil, fmt.Errorf("failed to create temporary directory %q: %w", dir, err)
	}

	tempFileName := req.filename
	if req.keepExtension {
		extension := filepath.Ext(req.filename)
		basename := strings.TrimSuffix(req.filename, extension)
		tempFileName = basename + "-*" + extension
	}

	tempFile, err := os.CreateTemp(dir, tempFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file %q: %w", req.filename, err)
	}

	if req.perm != 0 {
		if err := tempFile.Chmod(req.perm); err != nil {
			tempFile.Close()           //nolint:errcheck // the chmod error is more useful
			os.Remove(tempFile.Name()) //nolint:errcheck // best-effort cleanup
			return nil, fmt.Errorf("failed to chmod temporary file %q: %w", tempFile.Name(), err)
		}
	}

	return tempFile, nil
}

// WriteFile writes path by passing a temporary file in the same directory to
// write, then renaming it over path. Readers of path see either the old
// contents or all of the new contents. On error path is left untouched.
func WriteFile(path string, perm fs.FileMode, write func(io.Writer) error) (err error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	f, err := New(
		WithDir(filepath.Dir(absPath)),
		WithName("."+filepath.Base(absPath)),
		KeepingExtension(),
		WithPerms(perm),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()           //nolint:errcheck // already failing
			os.Remove(f.Name()) //nolint:errcheck // best-effort cleanup
		}
	}()

	if err := write(f); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("syncing %q: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", f.Name(), err)
	}
	if err := os.Rename(f.Name(), absPath); err != nil {
		return fmt.Errorf("renaming %q to %q: %w", f.Name(), absPath, err)
	}
	return nil
}
