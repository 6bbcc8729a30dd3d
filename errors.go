package gitfolio

import (
	"errors"
	"strings"

	"github.com/stalker-doge/gitfolio/internal/githubapi"
)

var (
	// ErrNoToken is returned before any network call when no credential
	// could be resolved.
	ErrNoToken = githubapi.ErrNoToken

	// ErrProjectNotFound is a by-id miss inside the collection document.
	// Distinct from a remote 404, which the document read treats as an
	// empty collection.
	ErrProjectNotFound = errors.New("gitfolio: project not found")

	// ErrAssetNotFound is returned when deleting an asset that does not
	// exist in the repository.
	ErrAssetNotFound = errors.New("gitfolio: asset not found")
)

// APIError is a non-2xx response from GitHub. Callers branch on StatusCode
// to decide between retry and a user-facing message.
type APIError = githubapi.Error

// IsConflict reports whether err is GitHub rejecting a write because the
// revision it carried is stale. The store never auto-retries; re-read and
// resubmit the whole operation.
func IsConflict(err error) bool { return githubapi.IsConflict(err) }

// IsNotFound reports whether err is a GitHub 404.
func IsNotFound(err error) bool { return githubapi.IsNotFound(err) }

// UnexpectedTypeError is returned when a path resolves to something other
// than a single file (e.g. a directory).
type UnexpectedTypeError struct {
	Path string
	Type string
}

func (e *UnexpectedTypeError) Error() string {
	return "gitfolio: expected file at " + e.Path + " but got " + e.Type
}

// ValidationError carries the rule violations found by Validate. It is
// returned by Create and Update before any network activity.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "gitfolio: invalid project: " + strings.Join(e.Issues, "; ")
}
