package core

import (
	"sync"

	"github.com/smartystreets/logging"

	"github.com/smartystreets/sourcecheck/contracts"
)

// SummaryAggregator tallies results as jobs finish, in whatever order that
// happens, and logs each one as it arrives.
type SummaryAggregator struct {
	logger   *logging.Logger
	lock     sync.Mutex
	counters contracts.RunCounters
}

func NewSummaryAggregator() *SummaryAggregator {
	return &SummaryAggregator{}
}

func (this *SummaryAggregator) Record(result contracts.VerificationResult) {
	this.lock.Lock()
	defer this.lock.Unlock()

	this.counters.Checked++
	switch result.Code {
	case contracts.ResultOK:
		this.counters.OK++
		this.logger.Printf("[INFO] #%d OK %s %s", result.Sequence, result.URL, result.Message)
	case contracts.ResultCorrupt:
		this.counters.Corrupt++
		this.logger.Printf("[ERROR] #%d CORRUPT %s %s", result.Sequence, result.URL, result.Message)
	case contracts.ResultMissing:
		this.counters.Missing++
		this.logger.Printf("[ERROR] #%d MISSING %s %s", result.Sequence, result.URL, result.Message)
	default:
		this.counters.OtherError++
		this.logger.Printf("[ERROR] #%d OTHER_ERROR %s %s", result.Sequence, result.URL, result.Message)
	}
}

func (this *SummaryAggregator) Counters() contracts.RunCounters {
	this.lock.Lock()
	defer this.lock.Unlock()
	return this.counters
}

func (this *SummaryAggregator) Passed() bool {
	return this.Counters().Passed()
}

func (this *SummaryAggregator) Summary() string {
	return this.Counters().String()
}
