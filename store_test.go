package gitfolio_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stalker-doge/gitfolio"
)

// fakeRepo is an in-memory stand-in for the GitHub contents API of one
// repository. It enforces the SHA guard on writes the way GitHub does:
// replacing an existing file requires the current SHA, a stale SHA is a
// 409 conflict.
type fakeRepo struct {
	mu      sync.Mutex
	files   map[string]fakeFile
	nextSHA int
	gets    int
	puts    int
	deletes int
	// dirs lists paths that resolve to directories instead of files.
	dirs map[string]bool
}

type fakeFile struct {
	content []byte
	sha     string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		files: make(map[string]fakeFile),
		dirs:  make(map[string]bool),
	}
}

func (f *fakeRepo) seed(path string, content []byte) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	sha := f.newSHA()
	f.files[path] = fakeFile{content: content, sha: sha}
	return sha
}

func (f *fakeRepo) sha(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.files[path].sha
}

func (f *fakeRepo) has(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[path]
	return ok
}

func (f *fakeRepo) getCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets
}

func (f *fakeRepo) newSHA() string {
	f.nextSHA++
	return fmt.Sprintf("sha-%04d", f.nextSHA)
}

func (f *fakeRepo) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			apiError(w, http.StatusUnauthorized, "Requires authentication")
			return
		}

		const prefix = "/repos/testowner/testrepo"
		rest := strings.TrimPrefix(r.URL.Path, prefix)
		if rest == r.URL.Path {
			apiError(w, http.StatusNotFound, "Not Found")
			return
		}

		if rest == "" || rest == "/" {
			json.NewEncoder(w).Encode(map[string]any{
				"full_name":      "testowner/testrepo",
				"default_branch": "main",
				"private":        true,
			})
			return
		}

		path := strings.TrimPrefix(rest, "/contents/")

		f.mu.Lock()
		defer f.mu.Unlock()

		switch r.Method {
		case http.MethodGet:
			f.gets++
			if f.dirs[path] {
				json.NewEncoder(w).Encode(map[string]any{"type": "dir", "path": path})
				return
			}
			file, ok := f.files[path]
			if !ok {
				apiError(w, http.StatusNotFound, "Not Found")
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"type":         "file",
				"path":         path,
				"sha":          file.sha,
				"size":         len(file.content),
				"encoding":     "base64",
				"content":      base64.StdEncoding.EncodeToString(file.content),
				"download_url": "https://raw.example.com/" + path,
			})

		case http.MethodPut:
			f.puts++
			var req struct {
				Message string `json:"message"`
				Content string `json:"content"`
				Branch  string `json:"branch"`
				SHA     string `json:"sha"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				apiError(w, http.StatusBadRequest, "Problems parsing JSON")
				return
			}
			existing, exists := f.files[path]
			if exists && req.SHA != existing.sha {
				apiError(w, http.StatusConflict, path+" does not match "+existing.sha)
				return
			}
			if !exists && req.SHA != "" {
				apiError(w, http.StatusConflict, path+" does not exist")
				return
			}
			data, err := base64.StdEncoding.DecodeString(req.Content)
			if err != nil {
				apiError(w, http.StatusBadRequest, "content is not valid Base64")
				return
			}
			sha := f.newSHA()
			f.files[path] = fakeFile{content: data, sha: sha}
			status := http.StatusOK
			if !exists {
				status = http.StatusCreated
			}
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]any{
				"content": map[string]any{
					"sha":          sha,
					"download_url": "https://raw.example.com/" + path,
				},
			})

		case http.MethodDelete:
			f.deletes++
			var req struct {
				Message string `json:"message"`
				SHA     string `json:"sha"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				apiError(w, http.StatusBadRequest, "Problems parsing JSON")
				return
			}
			existing, exists := f.files[path]
			if !exists {
				apiError(w, http.StatusNotFound, "Not Found")
				return
			}
			if req.SHA != existing.sha {
				apiError(w, http.StatusConflict, path+" does not match "+existing.sha)
				return
			}
			delete(f.files, path)
			json.NewEncoder(w).Encode(map[string]any{"content": nil})

		default:
			apiError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		}
	})
}

func apiError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// fakeClock is a controllable clock for TTL and timestamp assertions.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestStore(t *testing.T, repo *fakeRepo, opts ...gitfolio.Option) (*gitfolio.Store, *fakeClock) {
	t.Helper()
	srv := httptest.NewServer(repo.handler())
	t.Cleanup(srv.Close)

	clock := newFakeClock()
	base := []gitfolio.Option{
		gitfolio.WithBaseURL(srv.URL),
		gitfolio.WithToken("test-token"),
		gitfolio.WithClock(clock.Now),
	}
	return gitfolio.New("testowner", "testrepo", append(base, opts...)...), clock
}

func TestGetFile_ReadMissReturnsEmptyCollection(t *testing.T) {
	store, _ := newTestStore(t, newFakeRepo())

	file, err := store.GetFile(context.Background(), "data/projects.json")
	require.NoError(t, err)
	assert.Empty(t, file.Revision)
	assert.JSONEq(t, `{"projects": []}`, string(file.Content))
}

func TestGetFile_CacheServesWithinTTL(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("data/projects.json", []byte(`{"projects": [], "lastUpdated": "x"}`))
	store, clock := newTestStore(t, repo)

	ctx := context.Background()
	first, err := store.GetFile(ctx, "data/projects.json")
	require.NoError(t, err)

	second, err := store.GetFile(ctx, "data/projects.json")
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, first.Revision, second.Revision)
	assert.Equal(t, 1, repo.getCount(), "second read within TTL must not hit the network")

	clock.Advance(6 * time.Minute)
	_, err = store.GetFile(ctx, "data/projects.json")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.getCount(), "read after TTL expiry must refetch")
}

func TestPutFile_InvalidatesCache(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("notes.json", []byte(`{"v": 1}`))
	store, _ := newTestStore(t, repo)
	ctx := context.Background()

	_, err := store.GetFile(ctx, "notes.json")
	require.NoError(t, err)

	_, err = store.PutFile(ctx, "notes.json", []byte(`{"v": 2}`), "bump")
	require.NoError(t, err)

	after, err := store.GetFile(ctx, "notes.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v": 2}`, string(after.Content), "read after write must never be stale")
}

func TestPutFile_CreatesWhenMissing(t *testing.T) {
	repo := newFakeRepo()
	store, _ := newTestStore(t, repo)

	res, err := store.PutFile(context.Background(), "data/projects.json", []byte(`{"projects": []}`), "init")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Revision)
	assert.Contains(t, res.DownloadURL, "data/projects.json")
	assert.True(t, repo.has("data/projects.json"))
}

func TestPutFile_StaleRevisionConflicts(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("data/projects.json", []byte(`{"projects": []}`))

	srv := httptest.NewServer(repo.handler())
	t.Cleanup(srv.Close)

	opts := []gitfolio.Option{
		gitfolio.WithBaseURL(srv.URL),
		gitfolio.WithToken("test-token"),
	}
	writerA := gitfolio.New("testowner", "testrepo", opts...)
	writerB := gitfolio.New("testowner", "testrepo", opts...)
	ctx := context.Background()

	// Both writers observe revision R0.
	_, err := writerA.GetFile(ctx, "data/projects.json")
	require.NoError(t, err)
	_, err = writerB.GetFile(ctx, "data/projects.json")
	require.NoError(t, err)

	_, err = writerA.PutFile(ctx, "data/projects.json", []byte(`{"projects": [1]}`), "A wins")
	require.NoError(t, err)

	// B still carries R0 from its cache; GitHub must reject it.
	_, err = writerB.PutFile(ctx, "data/projects.json", []byte(`{"projects": [2]}`), "B loses")
	require.Error(t, err)
	assert.True(t, gitfolio.IsConflict(err), "stale write must surface as a conflict APIError, got %v", err)
}

func TestGetFile_DirectoryIsUnexpectedType(t *testing.T) {
	repo := newFakeRepo()
	repo.dirs["assets"] = true
	store, _ := newTestStore(t, repo)

	_, err := store.GetFile(context.Background(), "assets")
	var typeErr *gitfolio.UnexpectedTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "assets", typeErr.Path)
	assert.Equal(t, "dir", typeErr.Type)
}

func TestNew_NoTokenFailsOnFirstCall(t *testing.T) {
	repo := newFakeRepo()
	srv := httptest.NewServer(repo.handler())
	t.Cleanup(srv.Close)

	store := gitfolio.New("testowner", "testrepo",
		gitfolio.WithBaseURL(srv.URL),
		gitfolio.WithTokenSource(nil),
	)

	_, err := store.GetFile(context.Background(), "data/projects.json")
	require.ErrorIs(t, err, gitfolio.ErrNoToken)
	assert.Equal(t, 0, repo.getCount(), "must fail before the network")
}

func TestUploadAsset_NewAndReplace(t *testing.T) {
	repo := newFakeRepo()
	store, _ := newTestStore(t, repo)
	ctx := context.Background()

	data := []byte{0xff, 0xd8, 0xff, 0x00, 0x01}
	asset, err := store.UploadAsset(ctx, "demo-game", "hero.jpg", data)
	require.NoError(t, err)
	assert.Equal(t, "assets/projects/demo-game/hero.jpg", asset.Path)
	assert.NotEmpty(t, asset.Revision)

	// Replacing the same name must carry the prior revision, not conflict.
	replaced, err := store.UploadAsset(ctx, "demo-game", "hero.jpg", []byte{0x00})
	require.NoError(t, err)
	assert.NotEqual(t, asset.Revision, replaced.Revision)
	assert.Equal(t, replaced.Revision, repo.sha("assets/projects/demo-game/hero.jpg"))
}

func TestDeleteAsset(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("assets/projects/demo-game/old.png", []byte{1, 2, 3})
	store, _ := newTestStore(t, repo)
	ctx := context.Background()

	require.NoError(t, store.DeleteAsset(ctx, "assets/projects/demo-game/old.png", ""))
	assert.False(t, repo.has("assets/projects/demo-game/old.png"))

	err := store.DeleteAsset(ctx, "assets/projects/demo-game/gone.png", "")
	require.ErrorIs(t, err, gitfolio.ErrAssetNotFound)
}

func TestClearCache_ForcesRefetch(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("data/projects.json", []byte(`{"projects": []}`))
	store, _ := newTestStore(t, repo)
	ctx := context.Background()

	_, err := store.GetFile(ctx, "data/projects.json")
	require.NoError(t, err)

	store.ClearCache()

	_, err = store.GetFile(ctx, "data/projects.json")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.getCount())
}

func TestRepoInfo(t *testing.T) {
	store, _ := newTestStore(t, newFakeRepo())

	info, err := store.RepoInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "testowner/testrepo", info.FullName)
	assert.Equal(t, "main", info.DefaultBranch)
	assert.True(t, info.Private)
}
