package gitfolio

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/stalker-doge/gitfolio/internal/contentcache"
	"github.com/stalker-doge/gitfolio/internal/githubapi"
)

// DocumentPath is where the collection document lives in the repository.
const DocumentPath = "data/projects.json"

// emptyDocument is what a read-miss on any path resolves to: the collection
// simply has not been created yet.
const emptyDocument = `{"projects": []}`

// Store is a content store backed by one GitHub repository branch. Reads go
// through a TTL cache; writes carry the last observed file SHA so GitHub
// rejects concurrent modifications with a conflict status. The store never
// retries or merges on conflict — callers re-read and resubmit.
type Store struct {
	client *githubapi.Client
	cache  *contentcache.Cache
	logger *zap.Logger
	now    func() time.Time
}

// New creates a store for the given repository. The credential is resolved
// once, at construction: an explicit WithToken wins, then the token source
// chain (GITFOLIO_TOKEN, GITHUB_TOKEN by default). A store without a token
// is still constructed; every operation then fails with ErrNoToken.
func New(owner, repo string, opts ...Option) *Store {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	tok := options.Token
	if tok == "" && options.TokenSource != nil {
		tok = options.TokenSource.Token()
	}

	return &Store{
		client: githubapi.NewClient(githubapi.Config{
			BaseURL:    options.BaseURL,
			Owner:      owner,
			Repo:       repo,
			Branch:     options.Branch,
			Token:      tok,
			HTTPClient: options.HTTPClient,
			Logger:     options.Logger,
		}),
		cache:  contentcache.New(options.CacheTTL, options.Clock),
		logger: options.Logger,
		now:    options.Clock,
	}
}

// RemoteFile is one addressable object in the repository. Revision is the
// contents API SHA for the path; empty means the path does not exist yet.
type RemoteFile struct {
	Content  []byte
	Revision string
}

// WriteResult reports a successful write.
type WriteResult struct {
	Revision    string
	DownloadURL string
}

// GetFile reads a path through the cache. A remote 404 is not an error: it
// returns the empty-collection sentinel with no revision, meaning "not
// created yet". A path that resolves to anything other than a single file
// fails with UnexpectedTypeError.
func (s *Store) GetFile(ctx context.Context, path string) (RemoteFile, error) {
	if e, ok := s.cache.Get(path); ok {
		s.logger.Debug("cache hit", zap.String("path", path))
		return RemoteFile{Content: e.Content, Revision: e.Revision}, nil
	}

	contents, err := s.client.GetContents(ctx, path)
	if err != nil {
		if githubapi.IsNotFound(err) {
			return RemoteFile{Content: []byte(emptyDocument)}, nil
		}
		return RemoteFile{}, err
	}

	if contents.Type != "file" {
		return RemoteFile{}, &UnexpectedTypeError{Path: path, Type: contents.Type}
	}

	data, err := decodeContent(contents.Content)
	if err != nil {
		return RemoteFile{}, fmt.Errorf("decode %s: %w", path, err)
	}

	s.cache.Put(path, data, contents.SHA)
	return RemoteFile{Content: data, Revision: contents.SHA}, nil
}

// PutFile creates or replaces a file. The current revision is resolved via
// the read path first, so the write carries the freshest SHA this client
// has seen; a concurrent writer still wins the race and this call then
// fails with a conflict APIError. The cache entry for path is dropped
// before PutFile returns.
func (s *Store) PutFile(ctx context.Context, path string, content []byte, message string) (WriteResult, error) {
	current, err := s.GetFile(ctx, path)
	if err != nil {
		return WriteResult{}, err
	}
	return s.write(ctx, path, content, message, current.Revision)
}

// write is the shared low-level write: base64-encode, PUT with the given
// SHA (omitted when empty, which creates the file), invalidate the cache.
func (s *Store) write(ctx context.Context, path string, content []byte, message, sha string) (WriteResult, error) {
	resp, err := s.client.PutContents(ctx, path, githubapi.PutRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  s.client.Branch(),
		SHA:     sha,
	})
	if err != nil {
		return WriteResult{}, err
	}

	s.cache.Invalidate(path)
	s.logger.Debug("wrote file",
		zap.String("path", path),
		zap.String("revision", resp.Content.SHA))

	return WriteResult{
		Revision:    resp.Content.SHA,
		DownloadURL: resp.Content.DownloadURL,
	}, nil
}

// AssetInfo reports a stored binary asset.
type AssetInfo struct {
	Path        string
	Revision    string
	DownloadURL string
}

// AssetPath is the deterministic repository location for a project asset.
func AssetPath(projectID, name string) string {
	return fmt.Sprintf("assets/projects/%s/%s", projectID, name)
}

// UploadAsset stores a binary blob (typically an image) under the project's
// asset directory. The existence pre-check is tolerant: any failure to
// resolve a prior revision is treated as "new file", unlike the document
// read path.
func (s *Store) UploadAsset(ctx context.Context, projectID, name string, data []byte) (AssetInfo, error) {
	path := AssetPath(projectID, name)

	sha := ""
	if existing, err := s.GetFile(ctx, path); err == nil {
		sha = existing.Revision
	}

	message := fmt.Sprintf("Upload image %s for project %s", name, projectID)
	res, err := s.write(ctx, path, data, message, sha)
	if err != nil {
		return AssetInfo{}, err
	}
	return AssetInfo{Path: path, Revision: res.Revision, DownloadURL: res.DownloadURL}, nil
}

// DeleteAsset removes a file from the repository. Fails with
// ErrAssetNotFound when the path does not exist.
func (s *Store) DeleteAsset(ctx context.Context, path, message string) error {
	if message == "" {
		message = "Delete " + path
	}

	current, err := s.GetFile(ctx, path)
	if err != nil {
		return err
	}
	if current.Revision == "" {
		return ErrAssetNotFound
	}

	if err := s.client.DeleteContents(ctx, path, message, current.Revision); err != nil {
		return err
	}
	s.cache.Invalidate(path)
	return nil
}

// Repository is the metadata subset shown by the settings surface.
// Re-exported from internal/githubapi for convenience.
type Repository = githubapi.Repository

// RepoInfo fetches metadata about the backing repository.
func (s *Store) RepoInfo(ctx context.Context) (*Repository, error) {
	return s.client.Repo(ctx)
}

// ClearCache drops every cached read immediately. No network call.
func (s *Store) ClearCache() {
	s.cache.Clear()
}

// decodeContent undoes the contents API base64 transport encoding, which
// wraps lines with newlines.
func decodeContent(encoded string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, encoded)
	return base64.StdEncoding.DecodeString(clean)
}
