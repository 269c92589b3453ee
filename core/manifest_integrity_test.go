package core

import (
	"errors"
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"

	"github.com/smartystreets/sourcecheck/contracts"
)

func TestManifestIntegrityFixture(t *testing.T) {
	gunit.Run(new(ManifestIntegrityFixture), t)
}

type ManifestIntegrityFixture struct {
	*gunit.Fixture
	raw      []byte
	checksum []byte
	check    *ManifestIntegrityCheck
}

func (this *ManifestIntegrityFixture) Setup() {
	this.raw = []byte("md5\ta.js\t0123456789abcdef0123456789abcdef\nexist\tb.gif\n")
	this.checksum = []byte(ComputeManifestChecksum("pepper", this.raw) + "\r\n")
	this.check = NewManifestIntegrityCheck("pepper")
}

func (this *ManifestIntegrityFixture) TestKnownDigest() {
	this.So(ComputeManifestChecksum("", []byte("")), should.Equal, "d41d8cd98f00b204e9800998ecf8427e")
	this.So(ComputeManifestChecksum("a", []byte("bc")), should.Equal, "900150983cd24fb0d6963f7d28e17f72")
}

func (this *ManifestIntegrityFixture) TestMatchingChecksumPasses() {
	this.So(this.check.Verify(this.raw, this.checksum), should.BeNil)
}

func (this *ManifestIntegrityFixture) TestUpperCaseChecksumPasses() {
	upper := []byte(ComputeManifestChecksum("pepper", this.raw))
	for i, character := range upper {
		if character >= 'a' && character <= 'f' {
			upper[i] = character - 'a' + 'A'
		}
	}
	this.So(this.check.Verify(this.raw, upper), should.BeNil)
}

func (this *ManifestIntegrityFixture) TestAnySingleByteChangeFails() {
	for i := range this.raw {
		mutated := append([]byte{}, this.raw...)
		mutated[i] ^= 0x01

		err := this.check.Verify(mutated, this.checksum)

		this.So(errors.Is(err, contracts.ErrManifestIntegrity), should.BeTrue)
	}
}

func (this *ManifestIntegrityFixture) TestWrongSaltFails() {
	err := NewManifestIntegrityCheck("salt").Verify(this.raw, this.checksum)

	this.So(errors.Is(err, contracts.ErrManifestIntegrity), should.BeTrue)
}

func (this *ManifestIntegrityFixture) TestShortChecksumFails() {
	err := this.check.Verify(this.raw, this.checksum[:31])

	this.So(errors.Is(err, contracts.ErrManifestIntegrity), should.BeTrue)
}

func (this *ManifestIntegrityFixture) TestValidateAndParse() {
	manifest, err := ValidateAndParse(this.raw, this.checksum, "pepper", 10)

	this.So(err, should.BeNil)
	this.So(manifest.Len(), should.Equal, 2)
}

func (this *ManifestIntegrityFixture) TestValidateAndParseRejectsTamperedManifestWithoutParsing() {
	tampered := append([]byte("exist\tevil.js\n"), this.raw...)

	manifest, err := ValidateAndParse(tampered, this.checksum, "pepper", 10)

	this.So(errors.Is(err, contracts.ErrManifestIntegrity), should.BeTrue)
	this.So(manifest, should.Resemble, contracts.Manifest{})
}
