package mkfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// File is the path of a file relative to the working directory or absolute.
type File string

func (f File) Path() string { return string(f) }

func (f File) Base() File { return File(filepath.Base(f.Path())) }

// In returns f moved into directory dir.
func (f File) In(dir string) File {
	return File(filepath.Join(dir, f.Path()))
}

func (f File) Ext() string { return filepath.Ext(f.Path()) }

// WithExt replaces the extension of f with ext. An empty ext removes the
// extension.
func (f File) WithExt(ext string) File {
	path := f.Path()
	if ext == "" {
		ext = filepath.Ext(path)
		if ext == "" {
			return f
		}
		return File(path[:len(path)-len(ext)])
	}
	if ext[0] != '.' {
		ext = "." + ext
	}
	fExt := filepath.Ext(path)
	if fExt == "" {
		return File(path + ext)
	}
	return File(path[:len(path)-len(fExt)] + ext)
}

// IsRegular reports whether f exists and is a regular file.
func (f File) IsRegular() (bool, error) {
	st, err := os.Stat(f.Path())
	switch {
	case err == nil:
		return st.Mode().IsRegular(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	}
	return false, err
}

// ObjectFile returns the name of the object file for source file src in
// directory dir, i.e. src's base name with extension ".o".
func ObjectFile(dir, src string) File {
	return File(src).Base().WithExt(".o").In(dir)
}
