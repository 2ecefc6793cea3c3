package session

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileScope is a Scope backed by a single file.
type FileScope struct {
	dir  string
	name string
}

// NewFileScope returns a FileScope that stores its record in the file name
// within dir. The directory is created on first write.
func NewFileScope(dir, name string) *FileScope {
	return &FileScope{
		dir:  dir,
		name: name,
	}
}

// Path returns the location of the backing file.
func (f *FileScope) Path() string {
	return filepath.Join(f.dir, f.name)
}

func (f *FileScope) Read() ([]byte, error) {
	data, err := ioutil.ReadFile(f.Path())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "error reading %s", f.Path())
	}
	return data, nil
}

func (f *FileScope) Write(data []byte) error {
	if err := os.MkdirAll(f.dir, 0700); err != nil {
		return errors.Wrapf(err, "error creating %s", f.dir)
	}
	// Readers never observe a half-written record
	tmp, err := ioutil.TempFile(f.dir, f.name+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "error creating temporary file in %s", f.dir)
	}
	defer os.Remove(tmp.Name()) // nolint: errcheck
	if _, err = tmp.Write(data); err != nil {
		tmp.Close() // nolint: errcheck
		return errors.Wrapf(err, "error writing to %s", tmp.Name())
	}
	if err = tmp.Chmod(0600); err != nil {
		tmp.Close() // nolint: errcheck
		return errors.Wrapf(err, "error setting permissions on %s", tmp.Name())
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "error closing %s", tmp.Name())
	}
	if err = os.Rename(tmp.Name(), f.Path()); err != nil {
		return errors.Wrapf(err, "error writing to %s", f.Path())
	}
	return nil
}

func (f *FileScope) Clear() error {
	if err := os.Remove(f.Path()); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "error deleting %s", f.Path())
	}
	return nil
}
