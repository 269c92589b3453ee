package core

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// IsValidURL accepts only absolute http(s) addresses.
func IsValidURL(address string) bool {
	if !strings.HasPrefix(address, "http://") && !strings.HasPrefix(address, "https://") {
		return false
	}
	parsed, err := url.Parse(address)
	return err == nil && parsed.Host != ""
}

func EnsureTrailingSlash(address string) string {
	if strings.HasSuffix(address, "/") {
		return address
	}
	return address + "/"
}

// DeriveTarget picks the base URL that relative manifest paths are resolved
// against. An explicit target wins; otherwise the scheme and host of a
// remote manifest address are used.
func DeriveTarget(explicit, manifestAddress string) (string, error) {
	if explicit != "" {
		target := EnsureTrailingSlash(explicit)
		if !IsValidURL(target) {
			return "", invalidTargetErr
		}
		return target, nil
	}
	if !IsValidURL(manifestAddress) {
		return "", underivableTargetErr
	}
	parsed, err := url.Parse(manifestAddress)
	if err != nil {
		return "", underivableTargetErr
	}
	return parsed.Scheme + "://" + parsed.Host + "/", nil
}

// LocalFilename flattens a URL below base into a single file name:
// base is removed (case-insensitively) and every '/' becomes "_!_".
func LocalFilename(address, base string) string {
	if base != "" {
		address = regexp.MustCompile("(?i)"+regexp.QuoteMeta(base)).ReplaceAllLiteralString(address, "")
	}
	return strings.ReplaceAll(address, "/", localSeparator)
}

// RetainedFilename names a kept corrupt file. The sequence number keeps
// names unique within a run and the prefix keeps them apart from the
// numbered scratch files.
func RetainedFilename(sequence int, address, base string) string {
	return fmt.Sprintf("%s%d_%s", retainedPrefix, sequence, LocalFilename(address, base))
}

const (
	localSeparator = "_!_"
	retainedPrefix = "corrupt-"
)

var (
	invalidTargetErr     = errors.New("target must be an http:// or https:// URL")
	underivableTargetErr = errors.New("no target given and none can be derived from a local manifest")
)
