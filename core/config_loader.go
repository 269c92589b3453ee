package core

import (
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/smartystreets/sourcecheck/contracts"
)

// ConfigLoader turns command line arguments (and, for verification, an
// optional YAML settings file) into validated configuration.
type ConfigLoader struct {
	storage contracts.FileReader
	parser  CredentialParser
	stderr  io.Writer
}

func NewConfigLoader(storage contracts.FileReader, environment contracts.Environment, stderr io.Writer) *ConfigLoader {
	return &ConfigLoader{
		storage: storage,
		parser:  NewGoogleCredentialParser(storage, environment),
		stderr:  stderr,
	}
}

func (this *ConfigLoader) LoadVerifyConfig(name string, args []string) (config contracts.VerifyConfig, err error) {
	overrides := contracts.DefaultSettings()
	flags := this.newFlagSet(name, "[flags] <parse|list|validate> <manifest> [target]", verifyExitCodes)
	flags.StringVar(&config.SettingsPath, "settings", "", "Path to a YAML settings file.")
	flags.StringSliceVar(&config.Filter, "only", nil, "Only check manifest entries whose path matches one of these masks.")
	flags.IntVar(&overrides.Threads, "threads", overrides.Threads, "Maximum number of files checked concurrently.")
	flags.IntVar(&overrides.MaxURLs, "max-urls", overrides.MaxURLs, "Maximum number of manifest entries; further entries are ignored.")
	flags.StringVar(&overrides.ManifestTempFile, "manifest-temp-file", overrides.ManifestTempFile, "Template for the temporary copy of a remote manifest.")
	flags.StringVar(&overrides.TempFolder, "temp-folder", overrides.TempFolder, "Template for the scratch folder.")
	flags.StringVar(&overrides.CorruptFolder, "corrupt-folder", overrides.CorruptFolder, "Template for the quarantine folder.")
	flags.BoolVar(&overrides.KeepCorruptFiles, "keep-corrupt-files", overrides.KeepCorruptFiles, "Keep files that fail verification in the quarantine folder.")
	flags.StringVar(&overrides.ChecksumSalt, "salt", overrides.ChecksumSalt, "Text prepended to the manifest before hashing.")
	flags.DurationVar(&overrides.RequestTimeout, "request-timeout", overrides.RequestTimeout, "Deadline for each HTTP request.")
	flags.BoolVar(&overrides.QuarantineArchive, "quarantine-archive", overrides.QuarantineArchive, "Bundle the quarantine folder as a .tar.gz.")

	if err = flags.Parse(args); err != nil {
		return contracts.VerifyConfig{}, err
	}
	positional := flags.Args()
	if len(positional) < 2 || len(positional) > 3 {
		flags.Usage()
		return contracts.VerifyConfig{}, argumentCountErr
	}
	config.Action = positional[0]
	config.ManifestAddress = positional[1]
	explicitTarget := ""
	if len(positional) == 3 {
		explicitTarget = positional[2]
	}

	config.Settings, err = this.loadSettings(config.SettingsPath)
	if err != nil {
		return contracts.VerifyConfig{}, err
	}
	applyOverrides(flags, &config.Settings, overrides)

	if !contracts.IsAction(config.Action) {
		return contracts.VerifyConfig{}, fmt.Errorf("%w: %q", invalidActionErr, config.Action)
	}
	if config.Target, err = DeriveTarget(explicitTarget, config.ManifestAddress); err != nil {
		return contracts.VerifyConfig{}, err
	}
	if err = validateSettings(config.Settings); err != nil {
		return contracts.VerifyConfig{}, err
	}
	return config, nil
}

func (this *ConfigLoader) loadSettings(path string) (settings contracts.Settings, err error) {
	settings = contracts.DefaultSettings()
	if path == "" {
		return settings, nil
	}
	raw, err := this.storage.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("could not read settings file: %w", err)
	}
	if err = yaml.Unmarshal(raw, &settings); err != nil {
		return settings, fmt.Errorf("could not parse settings file: %w", err)
	}
	return settings, nil
}

func applyOverrides(flags *pflag.FlagSet, settings *contracts.Settings, overrides contracts.Settings) {
	flags.Visit(func(flag *pflag.Flag) {
		switch flag.Name {
		case "threads":
			settings.Threads = overrides.Threads
		case "max-urls":
			settings.MaxURLs = overrides.MaxURLs
		case "manifest-temp-file":
			settings.ManifestTempFile = overrides.ManifestTempFile
		case "temp-folder":
			settings.TempFolder = overrides.TempFolder
		case "corrupt-folder":
			settings.CorruptFolder = overrides.CorruptFolder
		case "keep-corrupt-files":
			settings.KeepCorruptFiles = overrides.KeepCorruptFiles
		case "salt":
			settings.ChecksumSalt = overrides.ChecksumSalt
		case "request-timeout":
			settings.RequestTimeout = overrides.RequestTimeout
		case "quarantine-archive":
			settings.QuarantineArchive = overrides.QuarantineArchive
		}
	})
}

func validateSettings(settings contracts.Settings) error {
	if settings.Threads < 1 {
		return threadsErr
	}
	if settings.MaxURLs < 1 {
		return maxURLsErr
	}
	if settings.TempFolder == "" {
		return blankTempFolderErr
	}
	if settings.KeepCorruptFiles && settings.CorruptFolder == "" {
		return blankCorruptFolderErr
	}
	if ComposeChecksumPath(settings.ManifestTempFile) == "" {
		return manifestTempFileErr
	}
	if settings.RequestTimeout <= 0 {
		return requestTimeoutErr
	}
	return nil
}

func (this *ConfigLoader) LoadBuildConfig(name string, args []string) (config contracts.BuildConfig, err error) {
	flags := this.newFlagSet(name, "[flags] <list|md5list> <source-directory> <rules-file> <manifest-file>", buildExitCodes)
	flags.StringVar(&config.ChecksumSalt, "salt", "", "Text prepended to the manifest before hashing.")
	flags.IntVar(&config.MaxRules, "max-rules", DefaultMaxExpectationRules, "Maximum number of expectation rules.")
	if err = flags.Parse(args); err != nil {
		return contracts.BuildConfig{}, err
	}
	positional := flags.Args()
	if len(positional) != 4 {
		flags.Usage()
		return contracts.BuildConfig{}, argumentCountErr
	}
	config.Operation = positional[0]
	config.SourceDirectory = positional[1]
	config.RulesPath = positional[2]
	config.ManifestPath = positional[3]

	if !contracts.IsOperation(config.Operation) {
		return contracts.BuildConfig{}, fmt.Errorf("%w: %q", invalidOperationErr, config.Operation)
	}
	if config.MaxRules < 1 {
		return contracts.BuildConfig{}, maxRulesErr
	}
	if ComposeChecksumPath(config.ManifestPath) == "" {
		return contracts.BuildConfig{}, manifestPathErr
	}
	return config, nil
}

func (this *ConfigLoader) LoadShipConfig(name string, args []string) (config contracts.ShipConfig, err error) {
	flags := this.newFlagSet(name, "[flags] <manifest-file> <gcs-address>", shipExitCodes)
	flags.IntVar(&config.MaxRetry, "max-retry", 5, "HTTP max retry.")
	if err = flags.Parse(args); err != nil {
		return contracts.ShipConfig{}, err
	}
	positional := flags.Args()
	if len(positional) != 2 {
		flags.Usage()
		return contracts.ShipConfig{}, argumentCountErr
	}
	if config.MaxRetry < 0 {
		return contracts.ShipConfig{}, maxRetryErr
	}
	config.ManifestPath = positional[0]
	if ComposeChecksumPath(config.ManifestPath) == "" {
		return contracts.ShipConfig{}, manifestPathErr
	}
	address, err := url.Parse(positional[1])
	if err != nil || address.Host == "" || ComposeChecksumPath(remoteManifestAddress(*address, config.ManifestPath).Path) == "" {
		return contracts.ShipConfig{}, fmt.Errorf("%w: %q", remoteAddressErr, positional[1])
	}
	config.RemoteAddress = *address

	config.GoogleCredentials, err = this.parser.Parse()
	if err != nil {
		return contracts.ShipConfig{}, err
	}
	return config, nil
}

func (this *ConfigLoader) newFlagSet(name, synopsis, exitCodes string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetOutput(this.stderr)
	flags.SortFlags = false
	flags.Usage = func() {
		_, _ = fmt.Fprintf(this.stderr, "Usage of %s:\n  %s %s\n\n", name, name, synopsis)
		flags.PrintDefaults()
		_, _ = fmt.Fprintln(this.stderr, exitCodes)
	}
	return flags
}

const (
	verifyExitCodes = `
exit code 0: every checked file met its expectation (or the manifest parsed, for "parse")
exit code 1: at least one file is corrupt, missing or errored, or the manifest was rejected
exit code 2: usage error`
	buildExitCodes = `
exit code 0: manifest and checksum written
exit code 1: general failure (see stderr for details)
exit code 2: usage error`
	shipExitCodes = `
exit code 0: manifest and checksum uploaded
exit code 1: general failure (see stderr for details)
exit code 2: usage error`
)

var (
	argumentCountErr      = errors.New("wrong number of arguments")
	invalidActionErr      = errors.New("action must be one of parse, list or validate")
	invalidOperationErr   = errors.New("operation must be list or md5list")
	threadsErr            = errors.New("threads must be at least 1")
	maxURLsErr            = errors.New("max-urls must be at least 1")
	maxRulesErr           = errors.New("max-rules must be at least 1")
	maxRetryErr           = errors.New("max-retry must be positive")
	blankTempFolderErr    = errors.New("temp-folder should not be blank")
	blankCorruptFolderErr = errors.New("corrupt-folder should not be blank when keeping corrupt files")
	manifestTempFileErr   = errors.New("manifest-temp-file needs an extension (a '.') to name its checksum companion")
	manifestPathErr       = errors.New("manifest path needs an extension (a '.') to name its checksum companion")
	requestTimeoutErr     = errors.New("request-timeout must be positive")
	remoteAddressErr      = errors.New("remote address must look like gs://bucket/path/manifest.txt or gs://bucket/path/")
)
