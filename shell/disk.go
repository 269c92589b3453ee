package shell

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/smartystreets/sourcecheck/contracts"
)

// DiskFileSystem reads and writes the local disk. Listing walks everything
// below root; the other operations take paths as given.
type DiskFileSystem struct{ root string }

func NewDiskFileSystem(root string) *DiskFileSystem {
	return &DiskFileSystem{root: filepath.Clean(root)}
}

func (this *DiskFileSystem) RootPath() string {
	return this.root
}

func (this *DiskFileSystem) Listing() (listing []contracts.FileInfo, err error) {
	err = filepath.WalkDir(this.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		listing = append(listing, FileInfo{path: path, size: info.Size(), mod: info.ModTime()})
		return nil
	})
	sort.Slice(listing, func(i, j int) bool { return listing[i].Path() < listing[j].Path() })
	return listing, err
}

func (this *DiskFileSystem) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (this *DiskFileSystem) Create(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.Create(path)
}

func (this *DiskFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (this *DiskFileSystem) WriteFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}

func (this *DiskFileSystem) Delete(path string) error {
	return os.Remove(path)
}

func (this *DiskFileSystem) DeleteAll(path string) error {
	return os.RemoveAll(path)
}

func (this *DiskFileSystem) MakeDirectory(path string) error {
	return os.MkdirAll(path, 0755)
}

func (this *DiskFileSystem) Rename(source, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	return os.Rename(source, target)
}

////////////////////////////////////////

type FileInfo struct {
	path string
	size int64
	mod  time.Time
}

func (this FileInfo) Path() string       { return this.path }
func (this FileInfo) Size() int64        { return this.size }
func (this FileInfo) ModTime() time.Time { return this.mod }
