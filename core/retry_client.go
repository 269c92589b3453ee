package core

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/smartystreets/clock"
	"github.com/smartystreets/logging"

	"github.com/smartystreets/sourcecheck/contracts"
)

// RetryClient retries uploads that fail with contracts.ErrRetry, rewinding
// the body before each new attempt.
type RetryClient struct {
	logger   *logging.Logger
	sleeper  *clock.Sleeper
	inner    contracts.Uploader
	maxRetry int
}

func NewRetryClient(inner contracts.Uploader, maxRetry int) *RetryClient {
	return &RetryClient{inner: inner, maxRetry: maxRetry}
}

func (this *RetryClient) Upload(request contracts.UploadRequest) (err error) {
	for x := 0; x <= this.maxRetry; x++ {
		if x > 0 {
			if err = rewind(request.Body); err != nil {
				return err
			}
		}
		err = this.inner.Upload(request)
		if err == nil {
			return nil
		}
		if !errors.Is(err, contracts.ErrRetry) {
			return err
		}
		if x < this.maxRetry {
			this.logger.Printf("[WARN] Upload to %s failed (%v), retry imminent.", request.RemoteAddress.String(), err)
			this.sleeper.Sleep(retryDelay)
		}
	}
	return err
}

func rewind(body io.Seeker) error {
	if body == nil {
		return nil
	}
	if _, err := body.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("could not rewind upload body: %w", err)
	}
	return nil
}

const retryDelay = time.Second * 3
