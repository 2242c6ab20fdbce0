package views

import (
	"encoding/json"
	"html/template"
	"net/url"
	"path"
)

// BuildURL joins path segments onto a base URL. The base URL alone is
// returned with a "/" path.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join("/", u.Path, path.Join(pathSegments...))
	return u.String()
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block for the site.
func WebsiteJsonLD(site Site) template.JS {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     site.Name,
		"url":      BuildURL(site.URL),
	}
	if site.Description != "" {
		data["description"] = site.Description
	}
	return marshalJS(data)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(site Site, a Article, published string) template.JS {
	postURL := BuildURL(site.URL, "posts", a.Slug)
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    a.Title,
		"description": a.Summary,
		"url":         postURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  site.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if published != "" {
		data["datePublished"] = published
	}
	if a.ImageURL != "" {
		data["image"] = a.ImageURL
	}
	return marshalJS(data)
}

// json.Marshal escapes <, > and &, so the output is safe inside <script>.
func marshalJS(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return template.JS(b)
}

// brandParts splits a site name like "CompuClinic" into the two halves the
// logo colours differently.
func brandParts(name string) [2]string {
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			return [2]string{name[:i], name[i:]}
		}
	}
	return [2]string{name, ""}
}
