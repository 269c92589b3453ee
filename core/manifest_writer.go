package core

import (
	"bufio"
	"fmt"
	"io"

	"github.com/smartystreets/clock"

	"github.com/smartystreets/sourcecheck/contracts"
)

const headerRule = "' - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - -"

type ManifestWriter struct {
	clock *clock.Clock
}

func NewManifestWriter() *ManifestWriter {
	return &ManifestWriter{}
}

// Write emits a commented header describing how the manifest was produced
// followed by one tab-delimited line per entry.
func (this *ManifestWriter) Write(writer io.Writer, manifest contracts.Manifest, config contracts.BuildConfig) error {
	buffer := bufio.NewWriter(writer)
	_, _ = fmt.Fprintln(buffer, headerRule)
	_, _ = fmt.Fprintf(buffer, "' Manifest created on %s\n", this.clock.UTCNow().Local().Format("2006-01-02 15:04:05"))
	_, _ = fmt.Fprintln(buffer, "' ...using arguments:")
	_, _ = fmt.Fprintf(buffer, "'   operation    = %s\n", config.Operation)
	_, _ = fmt.Fprintf(buffer, "'   sourcedir    = %s\n", config.SourceDirectory)
	_, _ = fmt.Fprintf(buffer, "'   expectfile   = %s\n", config.RulesPath)
	_, _ = fmt.Fprintf(buffer, "'   manifestfile = %s\n", config.ManifestPath)
	_, _ = fmt.Fprintln(buffer, headerRule)

	for _, entry := range manifest.Entries {
		if entry.Hash == "" {
			_, _ = fmt.Fprintf(buffer, "%s\t%s\n", entry.Expectation, entry.RelativePath)
		} else {
			_, _ = fmt.Fprintf(buffer, "%s\t%s\t%s\n", entry.Expectation, entry.RelativePath, entry.Hash)
		}
	}
	return buffer.Flush()
}
