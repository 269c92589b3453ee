package shell

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/smartystreets/sourcecheck/contracts"
)

// NewHTTPClient bounds every phase of a request so a stalled server can't
// hold a worker forever. A timeout of zero leaves the overall request
// unbounded.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   16 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          64,
			MaxIdleConnsPerHost:   16,
			IdleConnTimeout:       32 * time.Second,
			TLSHandshakeTimeout:   16 * time.Second,
			ResponseHeaderTimeout: timeout,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// HTTPDownloader issues GET requests. A 404 or 410 means the resource is
// not there; anything else that isn't 2xx is a transport fault.
type HTTPDownloader struct {
	client *http.Client
}

func NewHTTPDownloader(client *http.Client) *HTTPDownloader {
	return &HTTPDownloader{client: client}
}

func (this *HTTPDownloader) Download(ctx context.Context, address string) (io.ReadCloser, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contracts.ErrTransport, err)
	}
	response, err := this.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contracts.ErrTransport, err)
	}
	switch {
	case response.StatusCode == http.StatusNotFound, response.StatusCode == http.StatusGone:
		_ = response.Body.Close()
		return nil, fmt.Errorf("%w: %s (%s)", contracts.ErrNotFound, address, response.Status)
	case response.StatusCode < 200 || response.StatusCode > 299:
		_ = response.Body.Close()
		return nil, fmt.Errorf("%w: %s (%s)", contracts.ErrTransport, address, response.Status)
	}
	return &transportBody{ReadCloser: response.Body}, nil
}

type transportBody struct {
	io.ReadCloser
}

func (this *transportBody) Read(buffer []byte) (int, error) {
	count, err := this.ReadCloser.Read(buffer)
	if err != nil && err != io.EOF {
		err = fmt.Errorf("%w: %w", contracts.ErrTransport, err)
	}
	return count, err
}
