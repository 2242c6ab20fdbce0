package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/eringen/compuclinic/cms"
)

// ErrNotFound is returned when no post has the requested slug.
var ErrNotFound = errors.New("content: post not found")

// Repository runs the site's fixed queries against a cms.Querier and
// returns validated posts. It holds no mutable state and is safe for
// concurrent use.
type Repository struct {
	q cms.Querier

	// OnInvalid, if set, is called for each record rejected by a lookup
	// that requires a title or slug. List queries keep every record.
	OnInvalid func(index int, err error)
}

// NewRepository returns a Repository backed by q.
func NewRepository(q cms.Querier) *Repository {
	return &Repository{q: q}
}

// LatestPosts returns the newest posts for the home page, newest first.
func (r *Repository) LatestPosts(ctx context.Context) ([]Post, error) {
	posts, err := r.list(ctx, latestPostsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("content: list latest posts: %w", err)
	}
	return posts, nil
}

// IndexPosts returns the newest posts with summary fields populated.
func (r *Repository) IndexPosts(ctx context.Context) ([]Post, error) {
	posts, err := r.list(ctx, indexQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("content: list index posts: %w", err)
	}
	return posts, nil
}

// SitemapPosts returns every post with a slug. Records without one are
// skipped.
func (r *Repository) SitemapPosts(ctx context.Context) ([]Post, error) {
	posts, err := r.list(ctx, sitemapQuery, record.validateSlug)
	if err != nil {
		return nil, fmt.Errorf("content: list sitemap posts: %w", err)
	}
	return posts, nil
}

// PostBySlug returns the post with the given slug, or ErrNotFound.
func (r *Repository) PostBySlug(ctx context.Context, slug string) (Post, error) {
	var rec record
	err := r.q.Fetch(ctx, postBySlugQuery, map[string]any{"slug": slug}, &rec)
	if errors.Is(err, cms.ErrNoResult) {
		return Post{}, ErrNotFound
	}
	if err != nil {
		return Post{}, fmt.Errorf("content: get post %q: %w", slug, err)
	}
	if err := rec.Validate(); err != nil {
		r.invalid(0, err)
		return Post{}, ErrNotFound
	}
	return rec.toPost(), nil
}

// list runs query and converts every record. When check is set, records
// it rejects are reported and skipped.
func (r *Repository) list(ctx context.Context, query string, check func(record) error) ([]Post, error) {
	var recs []record
	err := r.q.Fetch(ctx, query, nil, &recs)
	if errors.Is(err, cms.ErrNoResult) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	posts := make([]Post, 0, len(recs))
	for i, rec := range recs {
		if check != nil {
			if err := check(rec); err != nil {
				r.invalid(i, err)
				continue
			}
		}
		posts = append(posts, rec.toPost())
	}
	return posts, nil
}

func (r *Repository) invalid(i int, err error) {
	if r.OnInvalid != nil {
		r.OnInvalid(i, err)
	}
}
