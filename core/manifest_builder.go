package core

import (
	"crypto/md5"
	"errors"
	"fmt"
	"hash"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/smartystreets/logging"

	"github.com/smartystreets/sourcecheck/contracts"
)

type ManifestBuilderFileSystem interface {
	contracts.PathLister
	contracts.FileOpener
	contracts.RootPath
}

// ManifestBuilder labels every file below the root using the expectation
// rules. For md5list it records the content hash of files labelled md5.
type ManifestBuilder struct {
	logger    *logging.Logger
	storage   ManifestBuilderFileSystem
	rules     []contracts.ExpectationRule
	operation string
	newHash   func() hash.Hash
	entries   []contracts.ManifestEntry
}

func NewManifestBuilder(storage ManifestBuilderFileSystem, rules []contracts.ExpectationRule, operation string) *ManifestBuilder {
	return &ManifestBuilder{
		storage:   storage,
		rules:     rules,
		operation: operation,
		newHash:   md5.New,
	}
}

func (this *ManifestBuilder) Build() error {
	listing, err := this.storage.Listing()
	if err != nil {
		return err
	}
	for _, file := range listing {
		if err = this.add(file); err != nil {
			return err
		}
	}
	return nil
}

func (this *ManifestBuilder) add(file contracts.FileInfo) (err error) {
	relative := this.relativePath(file.Path())
	label := LookupExpectation(this.rules, path.Base(relative))
	switch label {
	case "":
		return fmt.Errorf("%w: %s", noExpectationErr, relative)
	case contracts.ExpectIgnore:
		this.logger.Printf("[INFO] Ignoring %s.", relative)
		return nil
	}

	entry := contracts.ManifestEntry{Expectation: label, RelativePath: relative}
	if this.operation == contracts.OperationMD5List && label == contracts.ExpectMD5 {
		if entry.Hash, err = this.checksum(file.Path()); err != nil {
			return err
		}
	}
	this.logger.Printf("[INFO] %s (should %s on target).", relative, label)
	this.entries = append(this.entries, entry)
	return nil
}

func (this *ManifestBuilder) checksum(path string) (string, error) {
	reader, err := this.storage.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = reader.Close() }()
	hasher := NewHashReader(reader, this.newHash())
	if _, err = io.Copy(io.Discard, hasher); err != nil {
		return "", fmt.Errorf("could not hash %s: %w", path, err)
	}
	return hasher.HexDigest(), nil
}

func (this *ManifestBuilder) relativePath(path string) string {
	relative := strings.TrimPrefix(path, this.storage.RootPath())
	return strings.TrimPrefix(filepath.ToSlash(relative), "/")
}

func (this *ManifestBuilder) Manifest() contracts.Manifest {
	return contracts.Manifest{
		Entries:    this.entries,
		Statistics: contracts.ParseStatistics{Total: len(this.entries), Parsed: len(this.entries)},
	}
}

var noExpectationErr = errors.New("no expectation rule matches file (add a catch-all rule such as '*.* exist')")
