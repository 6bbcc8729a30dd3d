// Package githubapi implements the GitHub REST contents API calls gitfolio needs.
//
// Scope is deliberately narrow: one owner/repo/branch triple fixed at
// construction, token auth, and the four endpoints the content store uses
// (get/put/delete contents, repository metadata). No retries — a failed
// call surfaces immediately and the caller decides what to do.
package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

// ErrNoToken is returned when a request is attempted without a configured
// credential.
var ErrNoToken = errors.New("githubapi: no token configured")

// Error is a non-2xx response from the API. Callers branch on StatusCode
// to distinguish conflicts (stale SHA), missing paths, and bad credentials.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("github: %s (status %d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsConflict reports whether err is the contents API rejecting a write
// because the supplied SHA no longer matches the file.
func IsConflict(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// Client talks to the contents API of a single repository branch.
type Client struct {
	baseURL string
	owner   string
	repo    string
	branch  string
	token   string
	httpc   *http.Client
	logger  *zap.Logger
}

// Config carries everything a Client needs; zero-value fields fall back to
// sensible defaults (public API, default http client, nop logger).
type Config struct {
	BaseURL    string
	Owner      string
	Repo       string
	Branch     string
	Token      string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewClient(cfg Config) *Client {
	c := &Client{
		baseURL: cfg.BaseURL,
		owner:   cfg.Owner,
		repo:    cfg.Repo,
		branch:  cfg.Branch,
		token:   cfg.Token,
		httpc:   cfg.HTTPClient,
		logger:  cfg.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpc == nil {
		c.httpc = http.DefaultClient
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

func (c *Client) Branch() string { return c.branch }

// Contents is the API representation of one path in the repository.
// Content is base64 as transported; decoding is the caller's concern.
type Contents struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	SHA         string `json:"sha"`
	Size        int64  `json:"size"`
	Content     string `json:"content"`
	Encoding    string `json:"encoding"`
	DownloadURL string `json:"download_url"`
}

// PutRequest is the body of a contents PUT. SHA is required when replacing
// an existing file and must be omitted when creating one.
type PutRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

// PutResponse is the commit result of a contents PUT.
type PutResponse struct {
	Content struct {
		SHA         string `json:"sha"`
		DownloadURL string `json:"download_url"`
	} `json:"content"`
}

// Repository is the metadata subset the settings surface displays.
type Repository struct {
	FullName      string `json:"full_name"`
	Description   string `json:"description"`
	DefaultBranch string `json:"default_branch"`
	Private       bool   `json:"private"`
	Size          int64  `json:"size"`
	UpdatedAt     string `json:"updated_at"`
}

// GetContents fetches metadata and (base64) content for a path on the
// configured branch.
func (c *Client) GetContents(ctx context.Context, path string) (*Contents, error) {
	endpoint := c.contentsEndpoint(path) + "?ref=" + url.QueryEscape(c.branch)
	var out Contents
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PutContents creates or replaces a file. The API rejects the call with a
// conflict status when req.SHA is stale.
func (c *Client) PutContents(ctx context.Context, path string, req PutRequest) (*PutResponse, error) {
	var out PutResponse
	if err := c.do(ctx, http.MethodPut, c.contentsEndpoint(path), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteContents removes a file at the given SHA.
func (c *Client) DeleteContents(ctx context.Context, path, message, sha string) error {
	body := map[string]string{
		"message": message,
		"sha":     sha,
		"branch":  c.branch,
	}
	return c.do(ctx, http.MethodDelete, c.contentsEndpoint(path), body, nil)
}

// Repo fetches repository metadata.
func (c *Client) Repo(ctx context.Context) (*Repository, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s", c.owner, c.repo)
	var out Repository
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) contentsEndpoint(path string) string {
	return fmt.Sprintf("/repos/%s/%s/contents/%s", c.owner, c.repo, path)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	if c.token == "" {
		return ErrNoToken
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("github request", zap.String("method", method), zap.String("endpoint", endpoint))

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{StatusCode: resp.StatusCode, Message: errorMessage(resp)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage pulls the API's message field out of an error body, falling
// back to the HTTP status text.
func errorMessage(resp *http.Response) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return http.StatusText(resp.StatusCode)
}
