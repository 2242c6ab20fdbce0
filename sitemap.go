package compuclinic

import (
	"encoding/xml"

	"github.com/labstack/echo/v4"

	"github.com/eringen/compuclinic/content"
	"github.com/eringen/compuclinic/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) renderSitemap(c echo.Context, posts []content.Post) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: views.BuildURL(base)},
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     views.BuildURL(base, "posts", p.Slug),
			LastMod: lastModified(p),
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	return writeXML(c, "application/xml; charset=utf-8", sitemap)
}

// lastModified prefers the CMS revision time over the publish time.
func lastModified(p content.Post) string {
	switch {
	case !p.UpdatedAt.IsZero():
		return p.UpdatedAt.UTC().Format("2006-01-02")
	case !p.PublishedAt.IsZero():
		return p.PublishedAt.UTC().Format("2006-01-02")
	default:
		return ""
	}
}
