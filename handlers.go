package compuclinic

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/compuclinic/content"
	"github.com/eringen/compuclinic/portabletext"
	"github.com/eringen/compuclinic/views"
)

// handleHome renders the landing page with the newest posts.
func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Posts.LatestPosts(c.Request().Context())
	if err != nil {
		return err
	}
	cards := make([]views.Card, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, views.Card{
			Title:    p.Title,
			Date:     a.dates.Format(p.PublishedAt),
			ImageURL: p.ImageURL,
			Link:     p.Link(),
		})
	}
	return Render(c, views.Home(a.Site(), cards))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Posts.PostBySlug(c.Request().Context(), slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.Site()))
		}
		return err
	}
	body, err := portabletext.HTML(post.Body)
	if err != nil {
		return err
	}
	published := ""
	if !post.PublishedAt.IsZero() {
		published = post.PublishedAt.Format("2006-01-02")
	}
	return Render(c, views.Post(a.Site(), views.Article{
		Title:    post.Title,
		Date:     a.dates.Format(post.PublishedAt),
		ImageURL: post.ImageURL,
		Summary:  post.Summary(),
		Body:     body,
		Slug:     post.Slug,
	}, published))
}

// handleLLMs serves the plain-text content index.
func (a *App) handleLLMs(c echo.Context) error {
	digest, err := a.Digest(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set("Cache-Control", cacheIndex)
	return c.Blob(http.StatusOK, mimeTextPlain, []byte(digest))
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Posts.IndexPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Posts.SitemapPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

// handleRobots generates robots.txt from the site URL. llms.txt is listed
// in a comment.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\n# Content index for AI agents: %s\nSitemap: %s\n",
		views.BuildURL(a.Config.URL, "llms.txt"), views.BuildURL(a.Config.URL, "sitemap.xml"))
	return c.Blob(http.StatusOK, mimeTextPlain, []byte(body))
}

func handleFavicon(c echo.Context) error {
	icon, err := EmbeddedAssets.ReadFile("embedded/favicon.svg")
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/svg+xml", icon)
}

func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/#blog")
}

// httpErrorHandler renders 404/500 pages for HTML routes and plain text for
// text routes. Errors never get cached.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	c.Response().Header().Set("Cache-Control", cacheNoStore)

	if isTextRoute(c.Request().URL.Path) {
		_ = c.Blob(code, mimeTextPlain, []byte(http.StatusText(code)+"\n"))
		return
	}
	switch {
	case code == http.StatusNotFound:
		_ = RenderStatus(c, code, views.NotFound(a.Site()))
	case code >= 500:
		_ = RenderStatus(c, code, views.ServerError(a.Site()))
	default:
		a.Echo.DefaultHTTPErrorHandler(err, c)
	}
}

func isTextRoute(path string) bool {
	switch path {
	case "/llms.txt", "/robots.txt", "/feed.xml", "/sitemap.xml":
		return true
	}
	return false
}
