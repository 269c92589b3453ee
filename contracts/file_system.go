package contracts

import (
	"io"
	"time"
)

type PathLister interface {
	Listing() ([]FileInfo, error)
}

type FileOpener interface {
	Open(path string) (io.ReadCloser, error)
}

type FileCreator interface {
	Create(path string) (io.WriteCloser, error)
}

type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

type FileWriter interface {
	WriteFile(path string, content []byte) error
}

type Deleter interface {
	Delete(path string) error
}

type DirectoryDeleter interface {
	DeleteAll(path string) error
}

type DirectoryMaker interface {
	MakeDirectory(path string) error
}

type Renamer interface {
	Rename(source, target string) error
}

type FileInfo interface {
	Path() string
	Size() int64
	ModTime() time.Time
}

type RootPath interface {
	RootPath() string
}

type Environment interface {
	LookupEnv(key string) (string, bool)
}

type DirectoryArchiver interface {
	Archive(source, destination string) error
}

// DirectoryLocker takes an exclusive, advisory lock guarding path. The
// returned function releases it.
type DirectoryLocker interface {
	Lock(path string) (release func() error, err error)
}
