package contracts

import (
	"net/url"
	"time"

	"github.com/smartystreets/gcs"
)

type VerifyConfig struct {
	Action          string
	ManifestAddress string
	Target          string
	Filter          []string
	SettingsPath    string
	Settings        Settings
}

type Settings struct {
	Threads           int           `yaml:"threads"`
	MaxURLs           int           `yaml:"max-urls"`
	ManifestTempFile  string        `yaml:"manifest-temp-file"`
	TempFolder        string        `yaml:"temp-folder"`
	CorruptFolder     string        `yaml:"corrupt-folder"`
	KeepCorruptFiles  bool          `yaml:"keep-corrupt-files"`
	ChecksumSalt      string        `yaml:"manifest-md5-prepend"`
	RequestTimeout    time.Duration `yaml:"request-timeout"`
	QuarantineArchive bool          `yaml:"quarantine-archive"`
}

func DefaultSettings() Settings {
	return Settings{
		Threads:          8,
		MaxURLs:          500000,
		ManifestTempFile: "temp_manifest_[target]_[YYYY][MM][DD]-[HH][TT][SS].txt",
		TempFolder:       "temp_[target]_[YYYY][MM][DD]-[HH][TT][SS]",
		CorruptFolder:    "corrupt_[target]_[YYYY][MM][DD]-[HH][TT][SS]",
		RequestTimeout:   time.Minute,
	}
}

type BuildConfig struct {
	Operation       string
	SourceDirectory string
	RulesPath       string
	ManifestPath    string
	ChecksumSalt    string
	MaxRules        int
}

type ShipConfig struct {
	ManifestPath      string
	RemoteAddress     url.URL
	MaxRetry          int
	GoogleCredentials gcs.Credentials
}
