package core

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/smartystreets/logging"

	"github.com/smartystreets/sourcecheck/contracts"
)

type JobRunnerFileSystem interface {
	contracts.FileCreator
	contracts.Deleter
	contracts.Renamer
}

// JobRunner fetches one deployed file into a job-numbered scratch file,
// classifies the outcome against the expectation and then either keeps
// (corrupt, when retention is on) or deletes the scratch file.
type JobRunner struct {
	logger      *logging.Logger
	downloader  contracts.Downloader
	fileSystem  JobRunnerFileSystem
	newHash     func() hash.Hash
	workDir     string
	target      string
	keepCorrupt bool
}

func NewJobRunner(downloader contracts.Downloader, fileSystem JobRunnerFileSystem, workDir, target string, keepCorrupt bool) *JobRunner {
	return &JobRunner{
		downloader:  downloader,
		fileSystem:  fileSystem,
		newHash:     md5.New,
		workDir:     workDir,
		target:      target,
		keepCorrupt: keepCorrupt,
	}
}

// Run checks one entry. Entries labelled "ignore" pass without a request.
func (this *JobRunner) Run(ctx context.Context, job contracts.VerificationJob) contracts.VerificationResult {
	result := contracts.VerificationResult{Sequence: job.Sequence, URL: job.URL}
	if job.Expectation == contracts.ExpectIgnore {
		result.Code, result.Message = contracts.ResultOK, "Ignored."
		return result
	}

	scratchPath := filepath.Join(this.workDir, strconv.Itoa(job.Sequence))
	digest, err := this.fetch(ctx, job.URL, scratchPath)
	result.Code, result.Message = this.classify(job, digest, err)
	this.retain(job, scratchPath, result.Code)
	return result
}

func (this *JobRunner) fetch(ctx context.Context, address, scratchPath string) (digest string, err error) {
	body, err := this.downloader.Download(ctx, address)
	if err != nil {
		return "", err
	}
	defer func() { _ = body.Close() }()

	writer, err := this.fileSystem.Create(scratchPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", contracts.ErrLocalIO, err)
	}
	reader := NewHashReader(body, this.newHash())
	_, err = io.Copy(localWriter{Writer: writer}, reader)
	closeErr := writer.Close()
	if err != nil {
		return "", err
	}
	if closeErr != nil {
		return "", fmt.Errorf("%w: %v", contracts.ErrLocalIO, closeErr)
	}
	this.logger.Printf("[INFO] Downloaded %s (%s).", address, humanize.Bytes(uint64(reader.Count())))
	return reader.HexDigest(), nil
}

func (this *JobRunner) classify(job contracts.VerificationJob, digest string, err error) (contracts.ResultCode, string) {
	switch {
	case errors.Is(err, contracts.ErrLocalIO):
		return contracts.ResultOtherError, fmt.Sprintf("Encountered error during download! (%v)", err)
	case errors.Is(err, contracts.ErrNotFound), errors.Is(err, contracts.ErrTransport):
		if job.Expectation == contracts.ExpectMissing {
			return contracts.ResultOK, fmt.Sprintf("Cannot be downloaded, as expected. (%v)", err)
		}
		return contracts.ResultMissing, fmt.Sprintf("Cannot be downloaded! (%v)", err)
	case err != nil:
		return contracts.ResultOtherError, fmt.Sprintf("Encountered error during download! (%v)", err)
	}

	switch job.Expectation {
	case contracts.ExpectExist:
		return contracts.ResultOK, "File exists."
	case contracts.ExpectMissing:
		return contracts.ResultCorrupt, "File should be missing but can be downloaded!"
	case contracts.ExpectMD5:
		if strings.EqualFold(digest, job.ExpectedHash) {
			return contracts.ResultOK, "Hashes match."
		}
		return contracts.ResultCorrupt, fmt.Sprintf("Failed hash check! (Got %s, expected %s.)", digest, job.ExpectedHash)
	default:
		return contracts.ResultOtherError, fmt.Sprintf("Unrecognized expectation %q.", job.Expectation)
	}
}

func (this *JobRunner) retain(job contracts.VerificationJob, scratchPath string, code contracts.ResultCode) {
	if code == contracts.ResultCorrupt && this.keepCorrupt {
		keptPath := filepath.Join(this.workDir, RetainedFilename(job.Sequence, job.URL, this.target))
		err := this.fileSystem.Rename(scratchPath, keptPath)
		if err == nil {
			this.logger.Printf("[INFO] Kept corrupt file as %s.", keptPath)
			return
		}
		this.logger.Printf("[WARN] Could not keep corrupt file %s as %s: %v", scratchPath, keptPath, err)
	}
	err := this.fileSystem.Delete(scratchPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		this.logger.Printf("[WARN] Could not delete scratch file %s: %v", scratchPath, err)
	}
}
