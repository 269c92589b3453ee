package contracts

import "fmt"

type ManifestEntry struct {
	Expectation  string
	RelativePath string
	Hash         string
}

type ParseStatistics struct {
	Total    int
	Blank    int
	Comments int
	Ignored  int
	Errored  int
	Parsed   int
}

// Usable reports whether a parse may be acted upon: nothing errored and at
// least one entry was produced.
func (this ParseStatistics) Usable() bool {
	return this.Errored == 0 && this.Parsed > 0
}

func (this ParseStatistics) String() string {
	return fmt.Sprintf("%d lines (blank: %d, comments: %d, ignored: %d, errored: %d, parsed: %d)",
		this.Total, this.Blank, this.Comments, this.Ignored, this.Errored, this.Parsed)
}

type Manifest struct {
	Entries    []ManifestEntry
	Statistics ParseStatistics
}

func (this Manifest) Len() int {
	return len(this.Entries)
}

// Entry returns the entry at index with its expectation downgraded for the
// given action. The stored entry is never modified.
func (this Manifest) Entry(index int, action string) (entry ManifestEntry, found bool) {
	if index < 0 || index >= len(this.Entries) {
		return ManifestEntry{}, false
	}
	entry = this.Entries[index]
	entry.Expectation = DowngradeExpectation(action, entry.Expectation)
	return entry, true
}
