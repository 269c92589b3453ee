package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/smartystreets/sourcecheck/contracts"
)

var anError = errors.New("an error")

type FakeDownloader struct {
	lock      sync.Mutex
	resources map[string]string
	failures  map[string]error
	bodyFault map[string]error
	requested []string
}

func NewFakeDownloader() *FakeDownloader {
	return &FakeDownloader{
		resources: make(map[string]string),
		failures:  make(map[string]error),
		bodyFault: make(map[string]error),
	}
}

func (this *FakeDownloader) Serve(address, content string) {
	this.lock.Lock()
	defer this.lock.Unlock()
	this.resources[address] = content
}

func (this *FakeDownloader) Fail(address string, err error) {
	this.lock.Lock()
	defer this.lock.Unlock()
	this.failures[address] = err
}

func (this *FakeDownloader) BreakBody(address string, err error) {
	this.lock.Lock()
	defer this.lock.Unlock()
	this.bodyFault[address] = err
}

func (this *FakeDownloader) Requested() []string {
	this.lock.Lock()
	defer this.lock.Unlock()
	return append([]string{}, this.requested...)
}

func (this *FakeDownloader) Download(_ context.Context, address string) (io.ReadCloser, error) {
	this.lock.Lock()
	defer this.lock.Unlock()
	this.requested = append(this.requested, address)
	if err := this.failures[address]; err != nil {
		return nil, err
	}
	content, found := this.resources[address]
	if !found {
		return nil, fmt.Errorf("%w: 404 Not Found", contracts.ErrNotFound)
	}
	if err := this.bodyFault[address]; err != nil {
		return io.NopCloser(io.MultiReader(strings.NewReader(content), &failingReader{err: err})), nil
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

type failingReader struct{ err error }

func (this *failingReader) Read([]byte) (int, error) { return 0, this.err }
