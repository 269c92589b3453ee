package core

import (
	"bytes"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/smartystreets/sourcecheck/contracts"
)

type inMemoryFileSystem struct {
	lock        sync.Mutex
	fileSystem  map[string]*file
	directories map[string]struct{}
	Root        string

	errCreate map[string]error
	errWrite  map[string]error
	errRename error
}

func newInMemoryFileSystem() *inMemoryFileSystem {
	return &inMemoryFileSystem{
		fileSystem:  make(map[string]*file),
		directories: make(map[string]struct{}),
		errCreate:   make(map[string]error),
		errWrite:    make(map[string]error),
	}
}

func (this *inMemoryFileSystem) Listing() (files []contracts.FileInfo, err error) {
	this.lock.Lock()
	defer this.lock.Unlock()
	for _, file := range this.fileSystem {
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path() < files[j].Path() })
	return files, nil
}

func (this *inMemoryFileSystem) Open(path string) (io.ReadCloser, error) {
	raw, err := this.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

func (this *inMemoryFileSystem) Create(path string) (io.WriteCloser, error) {
	this.lock.Lock()
	defer this.lock.Unlock()
	if err := this.errCreate[path]; err != nil {
		return nil, err
	}
	created := &file{path: path, mod: InMemoryModTime, owner: this, errWrite: this.errWrite[path]}
	this.fileSystem[path] = created
	return created, nil
}

func (this *inMemoryFileSystem) ReadFile(path string) ([]byte, error) {
	this.lock.Lock()
	defer this.lock.Unlock()
	file, found := this.fileSystem[path]
	if !found {
		return nil, os.ErrNotExist
	}
	return append([]byte{}, file.contents...), nil
}

func (this *inMemoryFileSystem) WriteFile(path string, content []byte) error {
	this.lock.Lock()
	defer this.lock.Unlock()
	this.fileSystem[path] = &file{path: path, contents: content, mod: InMemoryModTime, owner: this}
	return nil
}

func (this *inMemoryFileSystem) Delete(path string) error {
	this.lock.Lock()
	defer this.lock.Unlock()
	if _, found := this.fileSystem[path]; !found {
		return os.ErrNotExist
	}
	delete(this.fileSystem, path)
	return nil
}

func (this *inMemoryFileSystem) DeleteAll(path string) error {
	this.lock.Lock()
	defer this.lock.Unlock()
	for name := range this.fileSystem {
		if name == path || strings.HasPrefix(name, path+"/") {
			delete(this.fileSystem, name)
		}
	}
	delete(this.directories, path)
	return nil
}

func (this *inMemoryFileSystem) MakeDirectory(path string) error {
	this.lock.Lock()
	defer this.lock.Unlock()
	this.directories[path] = struct{}{}
	return nil
}

func (this *inMemoryFileSystem) Rename(source, target string) error {
	this.lock.Lock()
	defer this.lock.Unlock()
	if this.errRename != nil {
		return this.errRename
	}
	if _, found := this.directories[source]; found {
		delete(this.directories, source)
		this.directories[target] = struct{}{}
	}
	moved := false
	for name, file := range this.fileSystem {
		if name == source || strings.HasPrefix(name, source+"/") {
			renamed := target + strings.TrimPrefix(name, source)
			delete(this.fileSystem, name)
			file.path = renamed
			this.fileSystem[renamed] = file
			moved = true
		}
	}
	if !moved {
		return os.ErrNotExist
	}
	return nil
}

func (this *inMemoryFileSystem) RootPath() string {
	return this.Root
}

func (this *inMemoryFileSystem) Exists(path string) bool {
	this.lock.Lock()
	defer this.lock.Unlock()
	_, found := this.fileSystem[path]
	return found
}

func (this *inMemoryFileSystem) Paths() (paths []string) {
	this.lock.Lock()
	defer this.lock.Unlock()
	for name := range this.fileSystem {
		paths = append(paths, name)
	}
	sort.Strings(paths)
	return paths
}

/////////////////////////////////////////////////

type file struct {
	path     string
	contents []byte
	mod      time.Time
	owner    *inMemoryFileSystem
	errWrite error
}

func (this *file) Write(p []byte) (n int, err error) {
	if this.errWrite != nil {
		return 0, this.errWrite
	}
	this.owner.lock.Lock()
	defer this.owner.lock.Unlock()
	this.contents = append(this.contents, p...)
	return len(p), nil
}

var InMemoryModTime = time.Now()

func (this *file) ModTime() time.Time { return this.mod }
func (this *file) Close() error       { return nil }
func (this *file) Path() string       { return this.path }
func (this *file) Size() int64        { return int64(len(this.contents)) }
