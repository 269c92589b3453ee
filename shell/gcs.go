package shell

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"

	"github.com/smartystreets/gcs"
	"github.com/smartystreets/logging"

	"github.com/smartystreets/sourcecheck/contracts"
)

// GoogleCloudStorageClient uploads objects with signed requests. Faults
// worth another attempt (network errors, 5xx, 429) wrap contracts.ErrRetry.
type GoogleCloudStorageClient struct {
	logger         *logging.Logger
	client         *http.Client
	credentials    gcs.Credentials
	expectedStatus int
}

func NewGoogleCloudStorageClient(client *http.Client, credentials gcs.Credentials, expectedStatus int) *GoogleCloudStorageClient {
	return &GoogleCloudStorageClient{client: client, credentials: credentials, expectedStatus: expectedStatus}
}

func (this *GoogleCloudStorageClient) Upload(request contracts.UploadRequest) error {
	gcsRequest, err := gcs.NewRequest(http.MethodPut,
		gcs.WithCredentials(this.credentials),
		gcs.WithBucket(request.RemoteAddress.Host),
		gcs.WithResource(request.RemoteAddress.Path),
		gcs.PutWithContent(request.Body),
		gcs.PutWithContentLength(request.Size),
		gcs.PutWithContentMD5(request.Checksum),
		gcs.PutWithContentType(request.ContentType),
	)
	if err != nil {
		return err
	}
	response, err := this.client.Do(gcsRequest)
	if err != nil {
		return fmt.Errorf("%w: %w", contracts.ErrRetry, err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode == this.expectedStatus {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}
	this.dump(gcsRequest, response)
	if response.StatusCode >= 500 || response.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: unexpected status code: %s", contracts.ErrRetry, response.Status)
	}
	return fmt.Errorf("unexpected status code: %s", response.Status)
}

func (this *GoogleCloudStorageClient) dump(request *http.Request, response *http.Response) {
	requestDump, _ := httputil.DumpRequestOut(request, false)
	responseDump, _ := httputil.DumpResponse(response, true)
	this.logger.Printf("[WARN] unexpected status code: \nrequest: \n%s\nresponse:\n%s", requestDump, responseDump)
}
