package asset

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"time"

	"github.com/db47h/ofs"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Overlay returns a read-only file system over the given OS directories.
// Files in later directories shadow files with the same name in earlier ones,
// so that a base directory can be followed by override directories. All
// directories must exist.
//
func Overlay(dirs ...string) (afero.Fs, error) {
	if len(dirs) == 0 {
		return nil, errors.New("overlay: no directories")
	}
	o := &overlay{layers: make([]*ofs.Overlay, len(dirs))}
	for i, d := range dirs {
		var l ofs.Overlay
		if err := l.Add(true, d); err != nil {
			return nil, errors.Wrapf(err, "overlay %s", d)
		}
		o.layers[i] = &l
	}
	return afero.FromIOFS{FS: o}, nil
}

// overlay implements fs.FS. Each layer is an ofs overlay of a single
// directory; layers are searched from last to first.
//
type overlay struct {
	layers []*ofs.Overlay
}

func (o *overlay) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	for i := len(o.layers) - 1; i >= 0; i-- {
		f, err := o.layers[i].Open(name)
		if err != nil {
			continue
		}
		return readAll(f, name)
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

func readAll(r io.ReadCloser, name string) (fs.File, error) {
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &fs.PathError{Op: "read", Path: name, Err: err}
	}
	return &memFile{Reader: bytes.NewReader(data), name: path.Base(name)}, nil
}

// memFile is an fs.File holding the contents of an overlay file. The reader
// also provides io.Seeker and io.ReaderAt to afero.
//
type memFile struct {
	*bytes.Reader
	name string
}

func (f *memFile) Stat() (fs.FileInfo, error) { return fileInfo{f.name, f.Size()}, nil }
func (f *memFile) Close() error               { return nil }

type fileInfo struct {
	name string
	size int64
}

func (fi fileInfo) Name() string       { return fi.name }
func (fi fileInfo) Size() int64        { return fi.size }
func (fi fileInfo) Mode() fs.FileMode  { return 0444 }
func (fi fileInfo) ModTime() time.Time { return time.Time{} }
func (fi fileInfo) IsDir() bool        { return false }
func (fi fileInfo) Sys() interface{}   { return nil }
