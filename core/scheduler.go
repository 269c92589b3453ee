package core

import (
	"context"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	"github.com/smartystreets/sourcecheck/contracts"
)

type JobExecutor interface {
	Run(ctx context.Context, job contracts.VerificationJob) contracts.VerificationResult
}

type ResultRecorder interface {
	Record(result contracts.VerificationResult)
}

// Scheduler runs jobs on a bounded pool, admitting them in the order given.
// Schedule returns once every admitted job has recorded its result.
type Scheduler struct {
	executor JobExecutor
	recorder ResultRecorder
	poolSize int
	inFlight atomic.Int64
	peak     atomic.Int64
}

func NewScheduler(executor JobExecutor, recorder ResultRecorder, poolSize int) *Scheduler {
	if poolSize < 1 {
		poolSize = 1
	}
	return &Scheduler{
		executor: executor,
		recorder: recorder,
		poolSize: poolSize,
	}
}

func (this *Scheduler) Schedule(ctx context.Context, jobs []contracts.VerificationJob) {
	workers := pool.New().WithMaxGoroutines(this.poolSize)
	for _, job := range jobs {
		workers.Go(func() { this.execute(ctx, job) })
	}
	workers.Wait()
}

func (this *Scheduler) execute(ctx context.Context, job contracts.VerificationJob) {
	this.enter()
	defer this.inFlight.Add(-1)
	this.recorder.Record(this.executor.Run(ctx, job))
}

func (this *Scheduler) enter() {
	current := this.inFlight.Add(1)
	for {
		peak := this.peak.Load()
		if current <= peak || this.peak.CompareAndSwap(peak, current) {
			return
		}
	}
}

func (this *Scheduler) InFlight() int     { return int(this.inFlight.Load()) }
func (this *Scheduler) PeakInFlight() int { return int(this.peak.Load()) }
