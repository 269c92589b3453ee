package shell

import "os"

// Environment reads process environment variables, such as the path to the
// Google service account credentials used when shipping manifests.
type Environment struct{}

func NewEnvironment() *Environment { return &Environment{} }

func (this *Environment) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}
