package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/smartystreets/logging"
	"golang.org/x/sync/errgroup"

	"github.com/smartystreets/sourcecheck/contracts"
)

type ManifestLoaderFileSystem interface {
	contracts.FileCreator
	contracts.FileReader
	contracts.Deleter
}

// ManifestLoader produces a parsed manifest from a local path or from a
// remote address. Remote manifests must pass the integrity check before they
// are parsed.
type ManifestLoader struct {
	logger     *logging.Logger
	downloader contracts.Downloader
	fileSystem ManifestLoaderFileSystem
	integrity  *ManifestIntegrityCheck
	parser     *ManifestParser
}

func NewManifestLoader(downloader contracts.Downloader, fileSystem ManifestLoaderFileSystem, salt string, maxEntries int) *ManifestLoader {
	return &ManifestLoader{
		downloader: downloader,
		fileSystem: fileSystem,
		integrity:  NewManifestIntegrityCheck(salt),
		parser:     NewManifestParser(maxEntries),
	}
}

func (this *ManifestLoader) LoadLocal(path string) (contracts.Manifest, error) {
	raw, err := this.fileSystem.ReadFile(path)
	if err != nil {
		return contracts.Manifest{}, fmt.Errorf("could not read manifest %q: %w", path, err)
	}
	return this.parser.Parse(bytes.NewReader(raw))
}

// LoadRemote downloads the manifest and its checksum companion side by side
// into temporary files, which are deleted before returning.
func (this *ManifestLoader) LoadRemote(ctx context.Context, address, temporaryPath string) (contracts.Manifest, error) {
	checksumAddress := ComposeChecksumPath(address)
	if checksumAddress == "" {
		return contracts.Manifest{}, fmt.Errorf("%w: %q", noChecksumCompanionErr, address)
	}
	temporaryChecksumPath := ComposeChecksumPath(temporaryPath)
	if temporaryChecksumPath == "" {
		return contracts.Manifest{}, fmt.Errorf("%w: %q", noChecksumCompanionErr, temporaryPath)
	}
	defer this.discard(temporaryPath, temporaryChecksumPath)

	group, groupContext := errgroup.WithContext(ctx)
	group.Go(func() error { return this.download(groupContext, address, temporaryPath) })
	group.Go(func() error { return this.download(groupContext, checksumAddress, temporaryChecksumPath) })
	if err := group.Wait(); err != nil {
		return contracts.Manifest{}, err
	}

	raw, err := this.fileSystem.ReadFile(temporaryPath)
	if err != nil {
		return contracts.Manifest{}, fmt.Errorf("%w: %v", contracts.ErrLocalIO, err)
	}
	checksum, err := this.fileSystem.ReadFile(temporaryChecksumPath)
	if err != nil {
		return contracts.Manifest{}, fmt.Errorf("%w: %v", contracts.ErrLocalIO, err)
	}
	if err = this.integrity.Verify(raw, checksum); err != nil {
		this.logger.Printf("[ERROR] Manifest %s failed its integrity check.", address)
		return contracts.Manifest{}, err
	}
	this.logger.Println("[INFO] Manifest checksum verified.")
	return this.parser.Parse(bytes.NewReader(raw))
}

func (this *ManifestLoader) download(ctx context.Context, address, path string) error {
	this.logger.Printf("[INFO] Downloading %s", address)
	body, err := this.downloader.Download(ctx, address)
	if err != nil {
		return fmt.Errorf("could not download %s: %w", address, err)
	}
	defer func() { _ = body.Close() }()

	writer, err := this.fileSystem.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", contracts.ErrLocalIO, err)
	}
	_, err = io.Copy(localWriter{Writer: writer}, body)
	closeErr := writer.Close()
	if err != nil {
		return fmt.Errorf("could not download %s: %w", address, err)
	}
	if closeErr != nil {
		return fmt.Errorf("%w: %v", contracts.ErrLocalIO, closeErr)
	}
	return nil
}

func (this *ManifestLoader) discard(paths ...string) {
	for _, path := range paths {
		err := this.fileSystem.Delete(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			this.logger.Printf("[WARN] Could not delete temporary file %s: %v", path, err)
		}
	}
}

var noChecksumCompanionErr = errors.New("manifest address has no checksum companion (no '.' in the name)")
