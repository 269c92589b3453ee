package contracts

import "errors"

var (
	ErrManifestIntegrity = errors.New("manifest integrity check failed")
	ErrManifestParse     = errors.New("manifest rejected")
	ErrNotFound          = errors.New("resource not found")
	ErrTransport         = errors.New("transport failure")
	ErrLocalIO           = errors.New("local i/o failure")
	ErrRetry             = errors.New("retry")
)
