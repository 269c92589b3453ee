package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

var lockHeldErr = errors.New("lock is held by another process")

// DirectoryLock takes advisory file locks so that two runs never share a
// scratch directory.
type DirectoryLock struct{}

func NewDirectoryLock() *DirectoryLock { return &DirectoryLock{} }

func (this *DirectoryLock) Lock(path string) (release func() error, err error) {
	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", lockHeldErr, path)
	}
	return func() error {
		if err := lock.Unlock(); err != nil {
			return err
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}, nil
}
