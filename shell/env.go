package shell

import (
	"os"
	"strings"
)

// Environment reads environment variables. Detection, rc file resolution and
// PATH checks take one so tests can run against a fixture environment.
type Environment interface {
	LookupEnv(key string) (string, bool)
}

// OSEnvironment reads the process environment.
type OSEnvironment struct{}

// LookupEnv implements Environment using os.LookupEnv.
func (OSEnvironment) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnvironment is a fixed environment backed by a map.
type MapEnvironment map[string]string

// LookupEnv implements Environment.
func (m MapEnvironment) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func envOrOS(env Environment) Environment {
	if env == nil {
		return OSEnvironment{}
	}
	return env
}

// getenv returns the value of key, or "" if unset.
func getenv(env Environment, key string) string {
	v, _ := env.LookupEnv(key)
	return v
}

// HomeDir returns $HOME from env. It does not guess: an unset or blank
// value yields ErrHomeDirUnavailable.
func HomeDir(env Environment) (string, error) {
	home := getenv(envOrOS(env), EnvHome)
	if strings.TrimSpace(home) == "" {
		return "", ErrHomeDirUnavailable
	}
	return home, nil
}
