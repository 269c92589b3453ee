package core

import (
	"fmt"
	"io"
	"strings"

	"github.com/smartystreets/logging"

	"github.com/smartystreets/sourcecheck/contracts"
)

const (
	DefaultMaxManifestEntries = 500000
	fieldDelimiter            = "\t"
	maxFieldsPerLine          = 3
)

// ManifestParser turns manifest text into entries. Acceptance is
// all-or-nothing: one errored line rejects the whole manifest.
type ManifestParser struct {
	logger     *logging.Logger
	maxEntries int
}

func NewManifestParser(maxEntries int) *ManifestParser {
	return &ManifestParser{maxEntries: maxEntries}
}

func (this *ManifestParser) Parse(reader io.Reader) (contracts.Manifest, error) {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return contracts.Manifest{}, fmt.Errorf("%w: %v", contracts.ErrManifestParse, err)
	}

	var statistics contracts.ParseStatistics
	var entries []contracts.ManifestEntry
	for _, line := range splitLines(string(raw)) {
		statistics.Total++
		line = strings.TrimSpace(line)

		switch {
		case line == "":
			statistics.Blank++
		case strings.HasPrefix(line, contracts.CommentMarker):
			statistics.Comments++
		case !strings.Contains(line, fieldDelimiter):
			this.logger.Printf("[WARN] Could not find delimiter in line #%d.", statistics.Total)
			statistics.Errored++
		case this.atCapacity(statistics.Parsed):
			statistics.Ignored++
		default:
			entry, ok := parseEntry(line)
			if !ok {
				this.logger.Printf("[WARN] Too many fields in line #%d.", statistics.Total)
				statistics.Errored++
				continue
			}
			entries = append(entries, entry)
			statistics.Parsed++
		}
	}

	if statistics.Ignored > 0 {
		this.logger.Printf("[WARN] Ignored %d lines beyond the maximum of %d entries.", statistics.Ignored, this.maxEntries)
	}
	this.logger.Printf("[INFO] Manifest: %s", statistics)

	if !statistics.Usable() {
		return contracts.Manifest{Statistics: statistics}, fmt.Errorf("%w: %s", contracts.ErrManifestParse, statistics)
	}
	return contracts.Manifest{Entries: entries, Statistics: statistics}, nil
}

func (this *ManifestParser) atCapacity(parsed int) bool {
	return this.maxEntries > 0 && parsed >= this.maxEntries
}

func parseEntry(line string) (entry contracts.ManifestEntry, ok bool) {
	fields := strings.Split(line, fieldDelimiter)
	if len(fields) > maxFieldsPerLine {
		return entry, false
	}
	entry.Expectation = fields[0]
	entry.RelativePath = fields[1]
	if len(fields) == maxFieldsPerLine {
		entry.Hash = fields[2]
	}
	return entry, true
}

// splitLines accepts "\n", "\r\n" and bare "\r" line endings. A final line
// ending doesn't start another (empty) line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
