package contracts

import "fmt"

type ResultCode int

const (
	ResultOK ResultCode = iota
	ResultCorrupt
	ResultMissing
	ResultOtherError
)

func (this ResultCode) String() string {
	switch this {
	case ResultOK:
		return "OK"
	case ResultCorrupt:
		return "CORRUPT"
	case ResultMissing:
		return "MISSING"
	case ResultOtherError:
		return "OTHER_ERROR"
	default:
		return fmt.Sprintf("ResultCode(%d)", int(this))
	}
}

type VerificationJob struct {
	Sequence     int
	URL          string
	ExpectedHash string
	Expectation  string
}

func NewVerificationJob(sequence int, target string, entry ManifestEntry) VerificationJob {
	return VerificationJob{
		Sequence:     sequence,
		URL:          target + entry.RelativePath,
		ExpectedHash: entry.Hash,
		Expectation:  entry.Expectation,
	}
}

type VerificationResult struct {
	Sequence int
	URL      string
	Code     ResultCode
	Message  string
}

type RunCounters struct {
	Checked    int
	OK         int
	Corrupt    int
	Missing    int
	OtherError int
}

func (this RunCounters) Failures() int {
	return this.Corrupt + this.Missing + this.OtherError
}

func (this RunCounters) Passed() bool {
	return this.Failures() == 0
}

func (this RunCounters) String() string {
	return fmt.Sprintf("Checked %d URLs. OK: %d, Corrupt: %d, Missing: %d, Other Error: %d",
		this.Checked, this.OK, this.Corrupt, this.Missing, this.OtherError)
}
