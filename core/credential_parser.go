package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/smartystreets/gcs"

	"github.com/smartystreets/sourcecheck/contracts"
)

const credentialsVariable = "GOOGLE_APPLICATION_CREDENTIALS"

// CredentialParser reads the service account file named by
// GOOGLE_APPLICATION_CREDENTIALS.
type CredentialParser struct {
	storage     contracts.FileReader
	environment contracts.Environment
}

func NewGoogleCredentialParser(storage contracts.FileReader, environment contracts.Environment) CredentialParser {
	return CredentialParser{storage: storage, environment: environment}
}

func (this CredentialParser) Parse() (gcs.Credentials, error) {
	path, found := this.environment.LookupEnv(credentialsVariable)
	path = strings.TrimSpace(path)
	if !found || path == "" {
		return gcs.Credentials{}, missingCredentialsErr
	}
	raw, err := this.storage.ReadFile(path)
	if err != nil {
		return gcs.Credentials{}, fmt.Errorf("could not read credentials file: %w", err)
	}
	credentials, err := gcs.ParseCredentialsFromJSON(raw)
	if err != nil {
		return gcs.Credentials{}, fmt.Errorf("could not parse credentials file: %w", err)
	}
	return credentials, nil
}

var missingCredentialsErr = errors.New("the " + credentialsVariable + " environment variable is required")
