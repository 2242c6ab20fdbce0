package content

import "time"

// Undated is printed in place of a publish date the post does not have.
const Undated = "Undated"

// DigestEntry is one post as listed in the plain-text content index.
type DigestEntry struct {
	Title   string
	Date    string
	Link    string
	Summary string
}

// DateFormat formats publish timestamps for display.
type DateFormat struct {
	Layout   string
	Location *time.Location
}

// Format renders t, or Undated for the zero time.
func (f DateFormat) Format(t time.Time) string {
	if t.IsZero() {
		return Undated
	}
	loc := f.Location
	if loc == nil {
		loc = time.UTC
	}
	layout := f.Layout
	if layout == "" {
		layout = "1/2/2006"
	}
	return t.In(loc).Format(layout)
}

// NewDigestEntry derives the digest entry for p.
func NewDigestEntry(p Post, df DateFormat) DigestEntry {
	return DigestEntry{
		Title:   p.Title,
		Date:    df.Format(p.PublishedAt),
		Link:    p.Link(),
		Summary: p.Summary(),
	}
}
