package core

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/smartystreets/sourcecheck/contracts"
)

const checksumLength = md5.Size * 2

// ManifestIntegrityCheck compares the salted hash of a manifest with the
// leading hex digest held in its checksum companion.
type ManifestIntegrityCheck struct {
	salt string
}

func NewManifestIntegrityCheck(salt string) *ManifestIntegrityCheck {
	return &ManifestIntegrityCheck{salt: salt}
}

func (this *ManifestIntegrityCheck) Verify(raw, checksum []byte) error {
	if len(checksum) < checksumLength {
		return fmt.Errorf("%w: checksum holds %d characters, expected at least %d",
			contracts.ErrManifestIntegrity, len(checksum), checksumLength)
	}
	expected := strings.ToLower(string(checksum[:checksumLength]))
	actual := ComputeManifestChecksum(this.salt, raw)
	if actual != expected {
		return fmt.Errorf("%w: got %s, expected %s", contracts.ErrManifestIntegrity, actual, expected)
	}
	return nil
}

// ComputeManifestChecksum yields the lower-case hex MD5 of salt followed by
// the manifest bytes.
func ComputeManifestChecksum(salt string, raw []byte) string {
	hasher := md5.New()
	_, _ = io.WriteString(hasher, salt)
	_, _ = hasher.Write(raw)
	return hex.EncodeToString(hasher.Sum(nil))
}

// ValidateAndParse parses raw only after it passes the integrity check.
func ValidateAndParse(raw, checksum []byte, salt string, maxEntries int) (contracts.Manifest, error) {
	if err := NewManifestIntegrityCheck(salt).Verify(raw, checksum); err != nil {
		return contracts.Manifest{}, err
	}
	return NewManifestParser(maxEntries).Parse(bytes.NewReader(raw))
}
