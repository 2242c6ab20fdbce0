package content

import "fmt"

// Post counts fetched by the fixed queries.
const (
	HomePostLimit  = 3
	IndexPostLimit = 20
	SnippetLength  = 200
)

// latestPostsQuery selects the newest posts for home page cards.
var latestPostsQuery = fmt.Sprintf(`*[_type == "post"] | order(publishedAt desc)[0...%d] {
  _id,
  title,
  publishedAt,
  "slug": slug.current,
  "imageUrl": mainImage.asset->url,
  body
}`, HomePostLimit)

// indexQuery selects the newest posts with an AI summary and a plain-text
// body snippet for the content index and the RSS feed.
var indexQuery = fmt.Sprintf(`*[_type == "post"] | order(publishedAt desc)[0...%d] {
  title,
  "slug": slug.current,
  publishedAt,
  aiSummary,
  "bodySnippet": pt::text(body)[0...%d]
}`, IndexPostLimit, SnippetLength)

// postBySlugQuery selects one post with image blocks dereferenced so the
// body can be rendered without further lookups.
const postBySlugQuery = `*[_type == "post" && slug.current == $slug][0] {
  _id,
  title,
  publishedAt,
  _updatedAt,
  "slug": slug.current,
  "imageUrl": mainImage.asset->url,
  aiSummary,
  body[]{
    ...,
    _type == "image" => { "url": asset->url, alt }
  }
}`

// sitemapQuery selects every addressable post.
const sitemapQuery = `*[_type == "post" && defined(slug.current)] | order(publishedAt desc) {
  "slug": slug.current,
  title,
  publishedAt,
  _updatedAt
}`
