package core

import (
	"context"
	"fmt"

	"github.com/smartystreets/logging"

	"github.com/smartystreets/sourcecheck/contracts"
)

type VerifierFileSystem interface {
	ManifestLoaderFileSystem
	JobRunnerFileSystem
	RetentionFileSystem
	contracts.DirectoryMaker
}

// Verifier carries out one verification run: load (and authenticate) the
// manifest, check every entry against the target on a bounded pool, then
// settle the scratch directory.
type Verifier struct {
	logger     *logging.Logger
	config     contracts.VerifyConfig
	downloader contracts.Downloader
	fileSystem VerifierFileSystem
	locker     contracts.DirectoryLocker
	archiver   contracts.DirectoryArchiver
	macros     *MacroResolver
	loader     *ManifestLoader
}

func NewVerifier(
	config contracts.VerifyConfig,
	downloader contracts.Downloader,
	fileSystem VerifierFileSystem,
	locker contracts.DirectoryLocker,
	archiver contracts.DirectoryArchiver,
) *Verifier {
	settings := config.Settings
	return &Verifier{
		config:     config,
		downloader: downloader,
		fileSystem: fileSystem,
		locker:     locker,
		archiver:   archiver,
		macros:     NewMacroResolver(),
		loader:     NewManifestLoader(downloader, fileSystem, settings.ChecksumSalt, settings.MaxURLs),
	}
}

// Verify loads the configured manifest and, unless the action is "parse",
// runs the verification. A non-nil error means the manifest could not be
// loaded or the run could not start; failures of individual files are
// reported through the counters.
func (this *Verifier) Verify(ctx context.Context) (contracts.RunCounters, error) {
	manifest, err := this.load(ctx)
	if err != nil {
		return contracts.RunCounters{}, err
	}
	if this.config.Action == contracts.ActionParse {
		this.logger.Println("[INFO] Manifest file parsed OK!")
		return contracts.RunCounters{}, nil
	}
	return this.Run(ctx, manifest)
}

func (this *Verifier) load(ctx context.Context) (contracts.Manifest, error) {
	address := this.config.ManifestAddress
	if !IsValidURL(address) {
		this.logger.Printf("[INFO] Reading local manifest %s.", address)
		return this.loader.LoadLocal(address)
	}
	temporaryPath := this.macros.Resolve(this.config.Settings.ManifestTempFile, this.config.Target)
	return this.loader.LoadRemote(ctx, address, temporaryPath)
}

func (this *Verifier) Run(ctx context.Context, manifest contracts.Manifest) (contracts.RunCounters, error) {
	settings := this.config.Settings
	target := this.config.Target

	entries := FilterEntries(manifest.Entries, this.config.Filter)
	if len(entries) < manifest.Len() {
		this.logger.Printf("[INFO] Filter selected %d of %d entries.", len(entries), manifest.Len())
	}

	workDir := this.macros.Resolve(settings.TempFolder, target)
	if err := this.fileSystem.MakeDirectory(workDir); err != nil {
		return contracts.RunCounters{}, fmt.Errorf("%w: could not create scratch folder: %v", contracts.ErrLocalIO, err)
	}
	release, err := this.locker.Lock(workDir + lockExtension)
	if err != nil {
		return contracts.RunCounters{}, err
	}
	defer this.release(release)

	aggregator := NewSummaryAggregator()
	aggregator.logger = this.logger
	runner := NewJobRunner(this.downloader, this.fileSystem, workDir, target, settings.KeepCorruptFiles)
	runner.logger = this.logger

	this.logger.Printf("[INFO] Checking %d URLs below %s with %d threads.", len(entries), target, settings.Threads)
	NewScheduler(runner, aggregator, settings.Threads).Schedule(ctx, ComposeJobs(entries, target, this.config.Action))
	counters := aggregator.Counters()

	retention := NewRetentionPolicy(this.fileSystem, this.quarantineArchiver(), settings.KeepCorruptFiles,
		this.macros.Resolve(settings.CorruptFolder, target))
	retention.logger = this.logger
	if err = retention.Finish(workDir, counters.Corrupt); err != nil {
		this.logger.Printf("[WARN] %v", err)
	}

	this.logger.Printf("[INFO] %s", counters)
	return counters, nil
}

func (this *Verifier) quarantineArchiver() contracts.DirectoryArchiver {
	if this.config.Settings.QuarantineArchive {
		return this.archiver
	}
	return nil
}

func (this *Verifier) release(release func() error) {
	if err := release(); err != nil {
		this.logger.Printf("[WARN] Could not release scratch folder lock: %v", err)
	}
}

const lockExtension = ".lock"
