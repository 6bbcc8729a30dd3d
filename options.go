package gitfolio

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/stalker-doge/gitfolio/internal/githubapi"
	"github.com/stalker-doge/gitfolio/internal/token"
)

// DefaultCacheTTL is how long a read stays fresh before the store goes back
// to the network.
const DefaultCacheTTL = 5 * time.Minute

// TokenSource resolves the GitHub credential for a store.
type TokenSource = token.Source

// Options configures a Store.
type Options struct {
	Branch      string
	BaseURL     string
	Token       string
	TokenSource TokenSource
	HTTPClient  *http.Client
	CacheTTL    time.Duration
	Clock       func() time.Time
	Logger      *zap.Logger
}

// Option is a functional option for configuring New.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		Branch:      "main",
		BaseURL:     githubapi.DefaultBaseURL,
		TokenSource: token.Default(),
		CacheTTL:    DefaultCacheTTL,
		Clock:       time.Now,
		Logger:      zap.NewNop(),
	}
}

// WithBranch sets the target branch (default "main").
func WithBranch(branch string) Option {
	return func(o *Options) { o.Branch = branch }
}

// WithBaseURL overrides the API endpoint. Mainly a test seam.
func WithBaseURL(u string) Option {
	return func(o *Options) { o.BaseURL = u }
}

// WithToken sets an explicit credential, taking priority over every other
// source.
func WithToken(tok string) Option {
	return func(o *Options) { o.Token = tok }
}

// WithTokenSource replaces the default resolution chain (GITFOLIO_TOKEN,
// then GITHUB_TOKEN).
func WithTokenSource(src TokenSource) Option {
	return func(o *Options) { o.TokenSource = src }
}

// WithHTTPClient sets the transport used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Options) { o.HTTPClient = c }
}

// WithCacheTTL sets how long reads are served from cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *Options) {
		if ttl > 0 {
			o.CacheTTL = ttl
		}
	}
}

// WithClock replaces the store's clock. Test seam for TTL and timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Clock = now
		}
	}
}

// WithLogger attaches a zap logger. The store is silent by default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
