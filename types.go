package pagecraft

// Page is the core content type stored in SQLite and rendered by templates.
// URL is the page's slug, unique across all libraries.
type Page struct {
	ID        int64
	URL       string
	Title     string
	Library   string
	Body      string
	Created   string // YYYY-MM-DD
	Updated   string // YYYY-MM-DD
	Link      string
	Published bool
	Views     int64
}

// Image is metadata for an uploaded image, stored alongside pages.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
