package core

import "github.com/smartystreets/sourcecheck/contracts"

// FilterEntries keeps the entries whose relative path matches at least one
// mask. No masks means no filtering.
func FilterEntries(original []contracts.ManifestEntry, masks []string) (filtered []contracts.ManifestEntry) {
	if len(masks) == 0 {
		return original
	}
	for _, entry := range original {
		if matchesAny(masks, entry.RelativePath) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

func matchesAny(masks []string, name string) bool {
	for _, mask := range masks {
		if MaskMatches(mask, name) {
			return true
		}
	}
	return false
}

// ComposeJobs numbers the entries in manifest order and resolves them
// against target, downgrading expectations for the action.
func ComposeJobs(entries []contracts.ManifestEntry, target, action string) (jobs []contracts.VerificationJob) {
	manifest := contracts.Manifest{Entries: entries}
	for index := range entries {
		entry, _ := manifest.Entry(index, action)
		jobs = append(jobs, contracts.NewVerificationJob(index, target, entry))
	}
	return jobs
}
