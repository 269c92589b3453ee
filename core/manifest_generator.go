package core

import (
	"bytes"
	"fmt"

	"github.com/smartystreets/logging"

	"github.com/smartystreets/sourcecheck/contracts"
)

type ManifestGeneratorFileSystem interface {
	ManifestBuilderFileSystem
	contracts.FileReader
	contracts.FileWriter
}

// ManifestGenerator writes a manifest for a source tree together with its
// salted checksum companion.
type ManifestGenerator struct {
	logger     *logging.Logger
	fileSystem ManifestGeneratorFileSystem
	writer     *ManifestWriter
}

func NewManifestGenerator(fileSystem ManifestGeneratorFileSystem) *ManifestGenerator {
	return &ManifestGenerator{fileSystem: fileSystem, writer: NewManifestWriter()}
}

func (this *ManifestGenerator) Generate(config contracts.BuildConfig) (contracts.Manifest, error) {
	checksumPath := ComposeChecksumPath(config.ManifestPath)
	if checksumPath == "" {
		return contracts.Manifest{}, fmt.Errorf("%w: %s", noChecksumCompanionErr, config.ManifestPath)
	}
	rawRules, err := this.fileSystem.ReadFile(config.RulesPath)
	if err != nil {
		return contracts.Manifest{}, fmt.Errorf("could not read expectation rules: %w", err)
	}
	rules, err := ParseExpectationRules(bytes.NewReader(rawRules), config.MaxRules)
	if err != nil {
		return contracts.Manifest{}, err
	}

	builder := NewManifestBuilder(this.fileSystem, rules, config.Operation)
	builder.logger = this.logger
	if err = builder.Build(); err != nil {
		return contracts.Manifest{}, err
	}
	manifest := builder.Manifest()

	body := new(bytes.Buffer)
	if err = this.writer.Write(body, manifest, config); err != nil {
		return contracts.Manifest{}, err
	}
	if err = this.fileSystem.WriteFile(config.ManifestPath, body.Bytes()); err != nil {
		return contracts.Manifest{}, err
	}
	checksum := ComputeManifestChecksum(config.ChecksumSalt, body.Bytes()) + "\n"
	if err = this.fileSystem.WriteFile(checksumPath, []byte(checksum)); err != nil {
		return contracts.Manifest{}, err
	}
	this.logger.Printf("[INFO] Wrote %d entries to %s and its checksum to %s.", manifest.Len(), config.ManifestPath, checksumPath)
	return manifest, nil
}
