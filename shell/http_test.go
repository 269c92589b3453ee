package shell

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"

	"github.com/smartystreets/sourcecheck/contracts"
)

func TestHTTPDownloaderFixture(t *testing.T) {
	gunit.Run(new(HTTPDownloaderFixture), t)
}

type HTTPDownloaderFixture struct {
	*gunit.Fixture

	server     *httptest.Server
	downloader *HTTPDownloader
}

func (this *HTTPDownloaderFixture) Setup() {
	mux := http.NewServeMux()
	mux.HandleFunc("/found.txt", func(response http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(response, "hello")
	})
	mux.HandleFunc("/gone.txt", func(response http.ResponseWriter, _ *http.Request) {
		response.WriteHeader(http.StatusGone)
	})
	mux.HandleFunc("/broken.txt", func(response http.ResponseWriter, _ *http.Request) {
		response.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/short.txt", func(response http.ResponseWriter, _ *http.Request) {
		response.Header().Set("Content-Length", strconv.Itoa(100))
		_, _ = io.WriteString(response, "truncated")
	})
	this.server = httptest.NewServer(mux)
	this.downloader = NewHTTPDownloader(NewHTTPClient(time.Second * 5))
}

func (this *HTTPDownloaderFixture) Teardown() {
	this.server.Close()
}

func (this *HTTPDownloaderFixture) TestSuccessfulDownload() {
	body, err := this.downloader.Download(context.Background(), this.server.URL+"/found.txt")

	this.So(err, should.BeNil)
	raw, err := io.ReadAll(body)
	_ = body.Close()
	this.So(err, should.BeNil)
	this.So(string(raw), should.Equal, "hello")
}

func (this *HTTPDownloaderFixture) TestNotFound() {
	_, err := this.downloader.Download(context.Background(), this.server.URL+"/nothing-here.txt")

	this.So(errors.Is(err, contracts.ErrNotFound), should.BeTrue)
}

func (this *HTTPDownloaderFixture) TestGoneIsNotFound() {
	_, err := this.downloader.Download(context.Background(), this.server.URL+"/gone.txt")

	this.So(errors.Is(err, contracts.ErrNotFound), should.BeTrue)
}

func (this *HTTPDownloaderFixture) TestServerErrorIsTransportFault() {
	_, err := this.downloader.Download(context.Background(), this.server.URL+"/broken.txt")

	this.So(errors.Is(err, contracts.ErrTransport), should.BeTrue)
	this.So(errors.Is(err, contracts.ErrNotFound), should.BeFalse)
}

func (this *HTTPDownloaderFixture) TestUnreachableHostIsTransportFault() {
	address := this.server.URL + "/found.txt"
	this.server.Close()

	_, err := this.downloader.Download(context.Background(), address)

	this.So(errors.Is(err, contracts.ErrTransport), should.BeTrue)
}

func (this *HTTPDownloaderFixture) TestMalformedAddressIsTransportFault() {
	_, err := this.downloader.Download(context.Background(), "http://[::1")

	this.So(errors.Is(err, contracts.ErrTransport), should.BeTrue)
}

func (this *HTTPDownloaderFixture) TestTruncatedBodyIsTransportFault() {
	body, err := this.downloader.Download(context.Background(), this.server.URL+"/short.txt")
	this.So(err, should.BeNil)

	_, err = io.ReadAll(body)
	_ = body.Close()

	this.So(errors.Is(err, contracts.ErrTransport), should.BeTrue)
}
