package compuclinic

import (
	"context"
	"strings"

	"github.com/eringen/compuclinic/content"
)

// DigestHeader is the site information printed above the post list.
type DigestHeader struct {
	Description string
	BaseURL     string
}

// Digest fetches the newest posts and formats the content index.
func (a *App) Digest(ctx context.Context) (string, error) {
	posts, err := a.Posts.IndexPosts(ctx)
	if err != nil {
		return "", err
	}
	entries := make([]content.DigestEntry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, content.NewDigestEntry(p, a.dates))
	}
	return BuildDigest(DigestHeader{
		Description: a.Config.Description,
		BaseURL:     a.Config.URL,
	}, entries), nil
}

// BuildDigest formats the plain-text content index for AI agents: a fixed
// preamble followed by one block per entry.
func BuildDigest(h DigestHeader, entries []content.DigestEntry) string {
	var b strings.Builder
	b.WriteString("# Website Content Index for AI Agents\n")
	b.WriteString("Description: " + h.Description + "\n")
	b.WriteString("Base URL: " + h.BaseURL + "\n\n")
	b.WriteString("## Latest Articles\n\n")

	for _, e := range entries {
		b.WriteString("### " + e.Title + "\n")
		b.WriteString("Published: " + e.Date + "\n")
		b.WriteString("Link: " + e.Link + "\n")
		b.WriteString("Summary: " + e.Summary + "\n")
		b.WriteString("\n---\n\n")
	}
	return b.String()
}
