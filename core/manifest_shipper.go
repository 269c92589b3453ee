package core

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/smartystreets/logging"

	"github.com/smartystreets/sourcecheck/contracts"
)

// ManifestShipper publishes a manifest and its checksum companion so that
// verification runs elsewhere can fetch and authenticate it.
type ManifestShipper struct {
	logger     *logging.Logger
	fileSystem contracts.FileReader
	uploader   contracts.Uploader
}

func NewManifestShipper(fileSystem contracts.FileReader, uploader contracts.Uploader) *ManifestShipper {
	return &ManifestShipper{fileSystem: fileSystem, uploader: uploader}
}

func (this *ManifestShipper) Ship(config contracts.ShipConfig) error {
	manifestAddress := remoteManifestAddress(config.RemoteAddress, config.ManifestPath)
	checksumAddress := manifestAddress
	checksumAddress.Path = ComposeChecksumPath(manifestAddress.Path)
	checksumPath := ComposeChecksumPath(config.ManifestPath)
	if checksumAddress.Path == "" || checksumPath == "" {
		return fmt.Errorf("%w: %s", noChecksumCompanionErr, manifestAddress.String())
	}

	if err := this.ship(config.ManifestPath, manifestAddress); err != nil {
		return err
	}
	return this.ship(checksumPath, checksumAddress)
}

func (this *ManifestShipper) ship(localPath string, address url.URL) error {
	raw, err := this.fileSystem.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", localPath, err)
	}
	checksum := md5.Sum(raw)
	err = this.uploader.Upload(contracts.UploadRequest{
		RemoteAddress: address,
		Body:          bytes.NewReader(raw),
		Size:          int64(len(raw)),
		ContentType:   "text/plain",
		Checksum:      checksum[:],
	})
	if err != nil {
		return fmt.Errorf("could not upload %s to %s: %w", localPath, address.String(), err)
	}
	this.logger.Printf("[INFO] Uploaded %s (%s) to %s.", localPath, humanize.Bytes(uint64(len(raw))), address.String())
	return nil
}

// remoteManifestAddress treats an address ending in "/" as a folder and
// places the manifest inside it under its local file name.
func remoteManifestAddress(address url.URL, manifestPath string) url.URL {
	if strings.HasSuffix(address.Path, "/") || address.Path == "" {
		address.Path = path.Join("/", address.Path, filepath.Base(manifestPath))
	}
	return address
}
