// Package content maps CMS records into validated post values and builds
// the derived views (digest entries) the site renders.
package content

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/eringen/compuclinic/portabletext"
)

// NoSummary is the summary used when a post has neither an AI summary nor
// any body text.
const NoSummary = "No summary available."

// Post is a read-only projection of a CMS post document. Posts returned
// by list queries may have any field zero, including Title and Slug.
type Post struct {
	ID          string
	Title       string
	Slug        string
	PublishedAt time.Time // zero when absent or unparsable
	UpdatedAt   time.Time
	ImageURL    string
	AISummary   string
	BodySnippet string
	Body        []portabletext.Block
}

// Link returns the site-relative path of the post's detail page.
func (p Post) Link() string {
	return PostPath(p.Slug)
}

// Summary resolves the post summary: the AI summary if present, else the
// body snippet, else NoSummary.
func (p Post) Summary() string {
	return ResolveSummary(p.AISummary, p.BodySnippet)
}

// PostPath returns the detail-page path for slug.
func PostPath(slug string) string {
	return "/posts/" + slug
}

// ResolveSummary applies the summary fallback chain.
func ResolveSummary(aiSummary, bodySnippet string) string {
	if aiSummary != "" {
		return aiSummary
	}
	if bodySnippet != "" {
		return bodySnippet
	}
	return NoSummary
}

// record is the wire shape of a post as returned by the queries in this
// package. Every field is optional on the wire.
type record struct {
	ID          string               `json:"_id"`
	Title       *string              `json:"title"`
	Slug        *string              `json:"slug"`
	PublishedAt *string              `json:"publishedAt"`
	UpdatedAt   *string              `json:"_updatedAt"`
	ImageURL    *string              `json:"imageUrl"`
	AISummary   *string              `json:"aiSummary"`
	BodySnippet *string              `json:"bodySnippet"`
	Body        []portabletext.Block `json:"body"`
}

// Validate requires the fields a post page cannot render without.
func (r record) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Slug, validation.Required),
	)
}

// validateSlug requires only an addressable slug.
func (r record) validateSlug() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Slug, validation.Required),
	)
}

// toPost converts r into a Post. Missing fields become zero values.
func (r record) toPost() Post {
	return Post{
		ID:          r.ID,
		Title:       deref(r.Title),
		Slug:        deref(r.Slug),
		PublishedAt: parseTime(deref(r.PublishedAt)),
		UpdatedAt:   parseTime(deref(r.UpdatedAt)),
		ImageURL:    deref(r.ImageURL),
		AISummary:   deref(r.AISummary),
		BodySnippet: deref(r.BodySnippet),
		Body:        r.Body,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
