// Package token resolves the GitHub credential for a store.
package token

import "os"

// EnvVars checked by the default source, in order.
const (
	EnvVar       = "GITFOLIO_TOKEN"
	GitHubEnvVar = "GITHUB_TOKEN"
)

// Source yields a credential, or "" when it has none. Sources are consulted
// once at store construction; the store does not re-resolve per request.
type Source interface {
	Token() string
}

// Static is a fixed credential.
type Static string

func (s Static) Token() string { return string(s) }

// Env reads the first non-empty value among the named environment variables.
type Env []string

func (e Env) Token() string {
	for _, name := range e {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Chain tries each source in order and returns the first non-empty token.
type Chain []Source

func (c Chain) Token() string {
	for _, s := range c {
		if t := s.Token(); t != "" {
			return t
		}
	}
	return ""
}

// Default is the standard resolution chain: GITFOLIO_TOKEN, then
// GITHUB_TOKEN. Persisted CLI credentials are layered on top by the caller.
func Default() Source {
	return Env{EnvVar, GitHubEnvVar}
}
