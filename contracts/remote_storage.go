package contracts

import (
	"context"
	"io"
	"net/url"
)

// Downloader fetches the resource at address. Failures wrap ErrNotFound when
// the server says the resource doesn't exist and ErrTransport for any other
// network or protocol fault, including faults while reading the body.
type Downloader interface {
	Download(ctx context.Context, address string) (io.ReadCloser, error)
}

type Uploader interface {
	Upload(UploadRequest) error
}

type UploadRequest struct {
	RemoteAddress url.URL
	Body          io.ReadSeeker
	Size          int64
	ContentType   string
	Checksum      []byte
}
