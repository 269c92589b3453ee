package core

import (
	"fmt"

	"github.com/smartystreets/logging"

	"github.com/smartystreets/sourcecheck/contracts"
)

type RetentionFileSystem interface {
	contracts.Renamer
	contracts.DirectoryDeleter
}

// RetentionPolicy decides what happens to the scratch directory once a run
// has drained: it moves to quarantine when it holds corrupt files worth
// keeping and is removed otherwise.
type RetentionPolicy struct {
	logger     *logging.Logger
	fileSystem RetentionFileSystem
	archiver   contracts.DirectoryArchiver
	keep       bool
	quarantine string
}

// NewRetentionPolicy builds a policy. A nil archiver leaves the quarantine
// directory unbundled.
func NewRetentionPolicy(fileSystem RetentionFileSystem, archiver contracts.DirectoryArchiver, keep bool, quarantine string) *RetentionPolicy {
	return &RetentionPolicy{
		fileSystem: fileSystem,
		archiver:   archiver,
		keep:       keep,
		quarantine: quarantine,
	}
}

func (this *RetentionPolicy) Finish(workDir string, corrupt int) error {
	if corrupt == 0 || !this.keep {
		this.logger.Printf("[INFO] Deleting scratch folder %s.", workDir)
		return this.fileSystem.DeleteAll(workDir)
	}

	this.logger.Printf("[INFO] Moving %d corrupt files from %s to %s.", corrupt, workDir, this.quarantine)
	if err := this.fileSystem.Rename(workDir, this.quarantine); err != nil {
		return fmt.Errorf("could not move scratch folder to quarantine: %w", err)
	}
	if this.archiver == nil {
		return nil
	}
	bundle := this.quarantine + archiveExtension
	if err := this.archiver.Archive(this.quarantine, bundle); err != nil {
		return fmt.Errorf("could not bundle quarantine folder: %w", err)
	}
	this.logger.Printf("[INFO] Bundled quarantine folder as %s.", bundle)
	return nil
}

const archiveExtension = ".tar.gz"
