// Package views renders the site's HTML pages. Pages are html/template
// files embedded in the binary and exposed as templ components, so
// handlers render them the same way as any other component.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"brandParts": brandParts,
}

// pages maps a page file to its template set (layout + page).
var pages = map[string]*template.Template{
	"home.html":     parsePage("home.html"),
	"post.html":     parsePage("post.html"),
	"notfound.html": parsePage("notfound.html"),
}

var errorPage = template.Must(template.New("error.html").ParseFS(templateFS, "templates/error.html"))

func parsePage(name string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS,
		"templates/layout.html",
		"templates/"+name,
	))
}

type page struct {
	Site Site
	Meta PageMeta
}

type homePage struct {
	page
	Cards    []Card
	Services []Service
}

type postPage struct {
	page
	Article Article
}

// Home renders the landing page. An empty cards slice renders the
// "No posts found" placeholder in place of the grid.
func Home(site Site, cards []Card) templ.Component {
	title := site.Name
	if site.Description != "" {
		title += " | " + site.Description
	}
	return render("home.html", homePage{
		page: page{
			Site: site,
			Meta: PageMeta{
				Title:       title,
				Description: site.Description,
				URL:         BuildURL(site.URL),
				OGType:      "website",
				JSONLD:      WebsiteJsonLD(site),
			},
		},
		Cards:    cards,
		Services: Services,
	})
}

// Post renders a post's detail page. published is the ISO date used in
// structured data and may be empty.
func Post(site Site, a Article, published string) templ.Component {
	return render("post.html", postPage{
		page: page{
			Site: site,
			Meta: PageMeta{
				Title:       a.Title + " | " + site.Name,
				Description: a.Summary,
				URL:         BuildURL(site.URL, "posts", a.Slug),
				OGType:      "article",
				JSONLD:      BlogPostingJsonLD(site, a, published),
			},
		},
		Article: a,
	})
}

// NotFound renders the 404 page.
func NotFound(site Site) templ.Component {
	return render("notfound.html", page{
		Site: site,
		Meta: PageMeta{
			Title:  "Page not found | " + site.Name,
			URL:    BuildURL(site.URL),
			OGType: "website",
			JSONLD: WebsiteJsonLD(site),
		},
	})
}

// ServerError renders a bare error page without the site chrome.
func ServerError(site Site) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return errorPage.ExecuteTemplate(w, "error", page{Site: site})
	})
}

func render(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return pages[name].ExecuteTemplate(w, "layout", data)
	})
}
