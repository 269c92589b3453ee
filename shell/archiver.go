package shell

import "github.com/mholt/archiver"

// TarGzArchiver bundles a directory; the archive format follows the
// destination's extension (".tar.gz", ".zip" and so on).
type TarGzArchiver struct{}

func NewTarGzArchiver() *TarGzArchiver { return &TarGzArchiver{} }

func (this *TarGzArchiver) Archive(source, destination string) error {
	return archiver.Archive([]string{source}, destination)
}
