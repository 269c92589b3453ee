package core

import "strings"

const checksumSuffix = "_md5"

// ComposeChecksumPath names the companion checksum file of a manifest by
// appending "_md5" to the second-to-last dot-separated segment:
// "x/y.z" becomes "x/y_md5.z". Paths without a dot have no companion
// and yield "".
func ComposeChecksumPath(path string) string {
	segments := strings.Split(path, ".")
	if len(segments) < 2 {
		return ""
	}
	segments[len(segments)-2] += checksumSuffix
	return strings.Join(segments, ".")
}
