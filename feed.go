package pagecraft

import (
	"bytes"
	"encoding/xml"
	"net/http"
	"time"

	"github.com/averill/pagecraft/markdown"
	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// renderFeed writes an RSS 2.0 feed of recently updated pages. Item
// descriptions carry the rendered page body so feed readers get real HTML.
func (a *App) renderFeed(c echo.Context, pages []Page) error {
	base := a.Config.URL
	items := make([]rssItem, 0, len(pages))
	for _, p := range pages {
		pubDate := ""
		if t, err := time.Parse("2006-01-02", p.Updated); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		pageURL := BuildURL(base, "page", p.URL)
		var body bytes.Buffer
		if err := markdown.Markdown(Excerpt(p.Body, 500)).Render(c.Request().Context(), &body); err != nil {
			return err
		}
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        pageURL,
			Description: body.String(),
			PubDate:     pubDate,
			GUID:        pageURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base,
			Description: a.Config.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
