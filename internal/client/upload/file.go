package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// File is an upload source of known size.
type File interface {
	Name() string
	Size() int64
	Open() (io.ReadCloser, error)
}

type localFile struct {
	path string
	size int64
}

// LocalFile stats path and returns it as a File.
func LocalFile(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &localFile{path: path, size: info.Size()}, nil
}

// LocalFiles resolves every path, failing on the first unusable one.
func LocalFiles(paths []string) ([]File, error) {
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		f, err := LocalFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func (f *localFile) Name() string                 { return filepath.Base(f.path) }
func (f *localFile) Size() int64                  { return f.size }
func (f *localFile) Open() (io.ReadCloser, error) { return os.Open(f.path) }
func (f *localFile) Path() string                 { return f.path }

func source(f File) string {
	if p, ok := f.(interface{ Path() string }); ok {
		return p.Path()
	}
	return f.Name()
}
