package gitfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// document is the persisted collection layout.
type document struct {
	Projects    []Project `json:"projects"`
	LastUpdated string    `json:"lastUpdated"`
}

// Projects reads the whole collection. A missing document is an empty
// collection, and a malformed one degrades to empty as well (the public
// site keeps rendering rather than failing on a bad commit). Transport and
// auth failures still propagate.
func (s *Store) Projects(ctx context.Context) ([]Project, error) {
	file, err := s.GetFile(ctx, DocumentPath)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(file.Content, &doc); err != nil {
		s.logger.Warn("malformed collection document, treating as empty",
			zap.String("path", DocumentPath),
			zap.Error(err))
		return []Project{}, nil
	}
	if doc.Projects == nil {
		return []Project{}, nil
	}
	return doc.Projects, nil
}

// Create validates the draft, assigns a slug id when absent, applies the
// draft/publish-date/last-modified defaults, appends it to the collection
// and writes the whole document back. Validation failures short-circuit
// before any network call.
func (s *Store) Create(ctx context.Context, p Project) (Project, error) {
	if issues := Validate(p); len(issues) > 0 {
		return Project{}, &ValidationError{Issues: issues}
	}

	projects, err := s.Projects(ctx)
	if err != nil {
		return Project{}, err
	}

	if p.ID == "" {
		p.ID = Slugify(p.Title)
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	now := s.now()
	if p.PublishDate == "" {
		p.PublishDate = now.Format("2006-01-02")
	}
	p.LastModified = now.Format(time.RFC3339)

	projects = append(projects, p)
	if err := s.saveProjects(ctx, projects, "Add project: "+p.Title); err != nil {
		return Project{}, err
	}
	return p, nil
}

// Update applies a top-level shallow merge onto the record with the given
// id and writes the collection back. The id is immutable; the merged record
// is re-validated before the write. Fails with ErrProjectNotFound when the
// id is absent.
func (s *Store) Update(ctx context.Context, id string, patch Patch) (Project, error) {
	projects, err := s.Projects(ctx)
	if err != nil {
		return Project{}, err
	}

	idx := indexByID(projects, id)
	if idx < 0 {
		return Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}

	merged := patch.Apply(projects[idx])
	merged.ID = id
	merged.LastModified = s.now().Format(time.RFC3339)

	if issues := Validate(merged); len(issues) > 0 {
		return Project{}, &ValidationError{Issues: issues}
	}

	projects[idx] = merged
	if err := s.saveProjects(ctx, projects, "Update project: "+merged.Title); err != nil {
		return Project{}, err
	}
	return merged, nil
}

// Delete removes the record with the given id, writes the collection back
// and returns the removed record. Fails with ErrProjectNotFound when the id
// is absent.
func (s *Store) Delete(ctx context.Context, id string) (Project, error) {
	projects, err := s.Projects(ctx)
	if err != nil {
		return Project{}, err
	}

	idx := indexByID(projects, id)
	if idx < 0 {
		return Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}

	removed := projects[idx]
	projects = append(projects[:idx], projects[idx+1:]...)

	if err := s.saveProjects(ctx, projects, "Delete project: "+removed.Title); err != nil {
		return Project{}, err
	}
	return removed, nil
}

// saveProjects writes the full collection as one document. Every mutation
// is a whole-document read-modify-write; the SHA guard on the document is
// the only protection against a second writer.
func (s *Store) saveProjects(ctx context.Context, projects []Project, message string) error {
	doc := document{
		Projects:    projects,
		LastUpdated: s.now().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}

	if _, err := s.PutFile(ctx, DocumentPath, data, message); err != nil {
		return err
	}
	return nil
}

func indexByID(projects []Project, id string) int {
	for i := range projects {
		if projects[i].ID == id {
			return i
		}
	}
	return -1
}
