package views

import "html/template"

// Site holds site-wide settings every page needs. Handlers pass it to
// templates so nothing is hardcoded.
type Site struct {
	Name        string // SITE_NAME
	URL         string // SITE_URL, no trailing slash
	Description string // SITE_DESCRIPTION
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      template.JS
}

// Card is a post as shown in the "Latest Updates" grid. An empty ImageURL
// renders the placeholder icon.
type Card struct {
	Title    string
	Date     string
	ImageURL string
	Link     string
}

// Article is a post as shown on its detail page.
type Article struct {
	Title    string
	Date     string
	ImageURL string
	Summary  string
	Body     template.HTML
	Slug     string
}

// Service is one entry of the static "Our Expertise" section.
type Service struct {
	Name        string
	Description string
}

// Services lists the offerings shown on the home page.
var Services = []Service{
	{Name: "Hardware Repair", Description: "Professional hardware repair services for all devices."},
	{Name: "Virus Removal", Description: "Professional virus removal services for all devices."},
	{Name: "Data Recovery", Description: "Professional data recovery services for all devices."},
}
