package content

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/eringen/compuclinic/cms"
)

// fakeQuerier returns a canned JSON result for every query.
type fakeQuerier struct {
	result  string
	err     error
	queries []string
	params  []map[string]any
}

func (f *fakeQuerier) Fetch(ctx context.Context, query string, params map[string]any, dst any) error {
	f.queries = append(f.queries, query)
	f.params = append(f.params, params)
	if f.err != nil {
		return f.err
	}
	if f.result == "null" {
		return cms.ErrNoResult
	}
	return json.Unmarshal([]byte(f.result), dst)
}

func TestResolveSummary(t *testing.T) {
	tests := []struct {
		name    string
		ai      string
		snippet string
		want    string
	}{
		{"ai summary wins", "AI says hi", "body text", "AI says hi"},
		{"snippet fallback", "", "A blue screen can be caused by...", "A blue screen can be caused by..."},
		{"placeholder", "", "", "No summary available."},
	}
	for _, tt := range tests {
		if got := ResolveSummary(tt.ai, tt.snippet); got != tt.want {
			t.Errorf("%s: ResolveSummary = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDateFormat(t *testing.T) {
	ts := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if got := (DateFormat{}).Format(ts); got != "1/15/2024" {
		t.Errorf("default Format = %q, want 1/15/2024", got)
	}
	if got := (DateFormat{Layout: "January 2, 2006"}).Format(ts); got != "January 15, 2024" {
		t.Errorf("custom Format = %q", got)
	}
	ny, err := time.LoadLocation("America/New_York")
	if err == nil {
		if got := (DateFormat{Location: ny}).Format(ts); got != "1/14/2024" {
			t.Errorf("New York Format = %q, want 1/14/2024", got)
		}
	}
	if got := (DateFormat{}).Format(time.Time{}); got != Undated {
		t.Errorf("zero Format = %q, want %q", got, Undated)
	}
}

func TestIndexPostsDecodesRecords(t *testing.T) {
	q := &fakeQuerier{result: `[
		{"title":"Fixing Blue Screens","slug":"fixing-bsod","publishedAt":"2024-01-15T00:00:00Z","aiSummary":null,"bodySnippet":"A blue screen can be caused by..."},
		{"title":"Virus Cleanup","slug":"virus-cleanup","publishedAt":"2024-01-10T08:30:00.000Z","aiSummary":"Remove malware safely.","bodySnippet":"ignored"}
	]`}
	repo := NewRepository(q)

	posts, err := repo.IndexPosts(context.Background())
	if err != nil {
		t.Fatalf("IndexPosts failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("IndexPosts count = %d, want 2", len(posts))
	}
	if !strings.Contains(q.queries[0], "[0...20]") || !strings.Contains(q.queries[0], "pt::text(body)[0...200]") {
		t.Errorf("unexpected index query:\n%s", q.queries[0])
	}

	entry := NewDigestEntry(posts[0], DateFormat{})
	want := DigestEntry{
		Title:   "Fixing Blue Screens",
		Date:    "1/15/2024",
		Link:    "/posts/fixing-bsod",
		Summary: "A blue screen can be caused by...",
	}
	if entry != want {
		t.Errorf("entry = %+v, want %+v", entry, want)
	}
	if got := posts[1].Summary(); got != "Remove malware safely." {
		t.Errorf("Summary = %q, want AI summary", got)
	}
}

func TestLatestPostsKeepsIncompleteRecords(t *testing.T) {
	q := &fakeQuerier{result: `[
		{"_id":"a","title":"Good","slug":"good","publishedAt":"2024-02-01T00:00:00Z","imageUrl":"https://cdn.example.com/a.jpg"},
		{"_id":"b","title":"No slug","slug":null},
		{"_id":"c","title":"","slug":"empty-title"},
		{"_id":"d","slug":"undated"}
	]`}
	repo := NewRepository(q)
	repo.OnInvalid = func(i int, err error) {
		t.Errorf("record %d reported invalid: %v", i, err)
	}

	posts, err := repo.LatestPosts(context.Background())
	if err != nil {
		t.Fatalf("LatestPosts failed: %v", err)
	}
	if len(posts) != 4 {
		t.Fatalf("LatestPosts count = %d, want 4", len(posts))
	}
	if posts[0].ImageURL != "https://cdn.example.com/a.jpg" {
		t.Errorf("ImageURL = %q", posts[0].ImageURL)
	}
	if posts[1].Slug != "" || posts[1].Title != "No slug" {
		t.Errorf("post 1 = %+v, want empty slug", posts[1])
	}
	if posts[2].Title != "" || posts[2].Slug != "empty-title" {
		t.Errorf("post 2 = %+v, want empty title", posts[2])
	}
	if posts[3].Title != "" || !posts[3].PublishedAt.IsZero() {
		t.Errorf("post 3 = %+v, want empty title and zero date", posts[3])
	}
	if !strings.Contains(q.queries[0], "[0...3]") {
		t.Errorf("latest query should fetch 3 posts:\n%s", q.queries[0])
	}
}

func TestIndexPostsOneEntryPerRecord(t *testing.T) {
	repo := NewRepository(&fakeQuerier{result: `[
		{"title":"Good","slug":"good","publishedAt":"2024-01-15T00:00:00Z"},
		{"title":"Draft","slug":null},
		{"title":"","slug":"untitled","aiSummary":"Summary only."}
	]`})
	posts, err := repo.IndexPosts(context.Background())
	if err != nil {
		t.Fatalf("IndexPosts failed: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("IndexPosts count = %d, want 3", len(posts))
	}
	entry := NewDigestEntry(posts[2], DateFormat{})
	want := DigestEntry{Title: "", Date: Undated, Link: "/posts/untitled", Summary: "Summary only."}
	if entry != want {
		t.Errorf("entry = %+v, want %+v", entry, want)
	}
}

func TestSitemapPostsSkipsSlugless(t *testing.T) {
	repo := NewRepository(&fakeQuerier{result: `[
		{"title":"Good","slug":"good"},
		{"title":"Draft","slug":null},
		{"title":"","slug":"untitled"}
	]`})
	var skipped []int
	repo.OnInvalid = func(i int, err error) {
		skipped = append(skipped, i)
	}
	posts, err := repo.SitemapPosts(context.Background())
	if err != nil {
		t.Fatalf("SitemapPosts failed: %v", err)
	}
	if len(posts) != 2 || posts[0].Slug != "good" || posts[1].Slug != "untitled" {
		t.Errorf("SitemapPosts = %+v", posts)
	}
	if len(skipped) != 1 || skipped[0] != 1 {
		t.Errorf("skipped = %v, want [1]", skipped)
	}
}

func TestListEmptyAndNull(t *testing.T) {
	for _, result := range []string{`[]`, `null`} {
		repo := NewRepository(&fakeQuerier{result: result})
		posts, err := repo.LatestPosts(context.Background())
		if err != nil {
			t.Fatalf("LatestPosts(%s) failed: %v", result, err)
		}
		if len(posts) != 0 {
			t.Errorf("LatestPosts(%s) count = %d, want 0", result, len(posts))
		}
	}
}

func TestQueryErrorPropagates(t *testing.T) {
	qe := &cms.QueryError{StatusCode: 500}
	repo := NewRepository(&fakeQuerier{err: qe})
	_, err := repo.IndexPosts(context.Background())
	if !errors.Is(err, qe) {
		t.Fatalf("expected wrapped QueryError, got %v", err)
	}
	if !cms.IsQueryError(err) {
		t.Errorf("IsQueryError should be true")
	}
}

func TestPostBySlug(t *testing.T) {
	q := &fakeQuerier{result: `{
		"_id":"a","title":"Fixing Blue Screens","slug":"fixing-bsod",
		"publishedAt":"2024-01-15","_updatedAt":"2024-03-01T10:00:00Z",
		"body":[{"_type":"block","children":[{"_type":"span","text":"Hello"}]}]
	}`}
	repo := NewRepository(q)
	p, err := repo.PostBySlug(context.Background(), "fixing-bsod")
	if err != nil {
		t.Fatalf("PostBySlug failed: %v", err)
	}
	if q.params[0]["slug"] != "fixing-bsod" {
		t.Errorf("slug param = %v", q.params[0]["slug"])
	}
	if p.PublishedAt.Format("2006-01-02") != "2024-01-15" {
		t.Errorf("PublishedAt = %v", p.PublishedAt)
	}
	if p.UpdatedAt.IsZero() {
		t.Errorf("UpdatedAt should be parsed")
	}
	if len(p.Body) != 1 || p.Body[0].Children[0].Text != "Hello" {
		t.Errorf("Body = %+v", p.Body)
	}
	if p.Summary() != NoSummary {
		t.Errorf("Summary = %q, want placeholder", p.Summary())
	}
}

func TestPostBySlugWithoutTitle(t *testing.T) {
	repo := NewRepository(&fakeQuerier{result: `{"_id":"a","title":"","slug":"untitled"}`})
	reported := false
	repo.OnInvalid = func(i int, err error) {
		reported = true
	}
	_, err := repo.PostBySlug(context.Background(), "untitled")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if !reported {
		t.Errorf("OnInvalid should be called")
	}
}

func TestPostBySlugNotFound(t *testing.T) {
	repo := NewRepository(&fakeQuerier{result: "null"})
	_, err := repo.PostBySlug(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
