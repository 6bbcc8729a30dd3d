package gitfolio

import (
	"regexp"
	"strings"
)

// Status is a project's publication state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Project is one portfolio entry in the collection document. The whole
// collection lives in a single JSON file; there is no per-project file.
type Project struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Subtitle     string            `json:"subtitle,omitempty"`
	Description  string            `json:"description"`
	Status       Status            `json:"status"`
	Featured     bool              `json:"featured,omitempty"`
	PublishDate  string            `json:"publishDate,omitempty"`
	LastModified string            `json:"lastModified,omitempty"`
	Category     []string          `json:"category"`
	Technologies []string          `json:"technologies,omitempty"`
	Features     []string          `json:"features,omitempty"`
	Links        *Links            `json:"links,omitempty"`
	Images       *Images           `json:"images,omitempty"`
	Stats        map[string]string `json:"stats,omitempty"`
	Challenges   []Challenge       `json:"challenges,omitempty"`
	SEO          *SEO              `json:"seo,omitempty"`
}

// Links are the project's outbound URLs.
type Links struct {
	Demo     string `json:"demo,omitempty"`
	Source   string `json:"source,omitempty"`
	Download string `json:"download,omitempty"`
}

// Images reference asset paths in the repository, not URLs.
type Images struct {
	Hero      string   `json:"hero,omitempty"`
	Thumbnail string   `json:"thumbnail,omitempty"`
	Gallery   []string `json:"gallery,omitempty"`
}

// Challenge is one challenge/solution pair.
type Challenge struct {
	Challenge string `json:"challenge"`
	Solution  string `json:"solution"`
}

// SEO holds the page metadata for a project.
type SEO struct {
	MetaTitle       string   `json:"metaTitle,omitempty"`
	MetaDescription string   `json:"metaDescription,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
}

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	spaceRun     = regexp.MustCompile(`\s+`)
	hyphenRun    = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe project id from a title: lowercased,
// non-alphanumerics stripped, whitespace runs collapsed to single hyphens,
// leading and trailing hyphens trimmed. Pure and idempotent.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = spaceRun.ReplaceAllString(s, "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Validate checks the local pre-flight rules and returns the violations as
// human-readable strings. An empty result means the project is valid.
// Pure function, no I/O; structural type rules from the original document
// format (links keyed, technologies/features ordered) are enforced by the
// Project type itself.
func Validate(p Project) []string {
	var issues []string
	if strings.TrimSpace(p.Title) == "" {
		issues = append(issues, "title is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		issues = append(issues, "description is required")
	}
	if len(p.Category) == 0 {
		issues = append(issues, "category is required")
	}
	return issues
}

// Patch is a top-level shallow merge onto an existing Project: a set field
// replaces the existing value wholesale, a nil field leaves it untouched.
// Nested structures are NOT merged — a Patch carrying Images with only a
// new thumbnail drops the existing hero and gallery. The ID field is
// accepted (so JSON drafts round-trip) but never applied; a project's id is
// immutable.
type Patch struct {
	ID           string             `json:"id,omitempty"`
	Title        *string            `json:"title,omitempty"`
	Subtitle     *string            `json:"subtitle,omitempty"`
	Description  *string            `json:"description,omitempty"`
	Status       *Status            `json:"status,omitempty"`
	Featured     *bool              `json:"featured,omitempty"`
	PublishDate  *string            `json:"publishDate,omitempty"`
	Category     *[]string          `json:"category,omitempty"`
	Technologies *[]string          `json:"technologies,omitempty"`
	Features     *[]string          `json:"features,omitempty"`
	Links        *Links             `json:"links,omitempty"`
	Images       *Images            `json:"images,omitempty"`
	Stats        *map[string]string `json:"stats,omitempty"`
	Challenges   *[]Challenge       `json:"challenges,omitempty"`
	SEO          *SEO               `json:"seo,omitempty"`
}

// Apply merges the patch onto base and returns the result. base is not
// modified.
func (p Patch) Apply(base Project) Project {
	out := base
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Subtitle != nil {
		out.Subtitle = *p.Subtitle
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Featured != nil {
		out.Featured = *p.Featured
	}
	if p.PublishDate != nil {
		out.PublishDate = *p.PublishDate
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Technologies != nil {
		out.Technologies = *p.Technologies
	}
	if p.Features != nil {
		out.Features = *p.Features
	}
	if p.Links != nil {
		out.Links = p.Links
	}
	if p.Images != nil {
		out.Images = p.Images
	}
	if p.Stats != nil {
		out.Stats = *p.Stats
	}
	if p.Challenges != nil {
		out.Challenges = *p.Challenges
	}
	if p.SEO != nil {
		out.SEO = p.SEO
	}
	return out
}
