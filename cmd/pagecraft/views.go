package main

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/averill/pagecraft"
	"github.com/averill/pagecraft/markdown"
)

// defaultViews builds an unstyled HTML theme. Sites that care about looks
// supply their own templ components instead.
func defaultViews(cfg pagecraft.SiteConfig) pagecraft.ViewFuncs {
	return pagecraft.ViewFuncs{
		Home: func(pages []pagecraft.Page, libraries []string, siteURL string) templ.Component {
			return component(func(w io.Writer) error {
				writeHead(w, cfg.Name)
				fmt.Fprintf(w, "<h1>%s</h1>\n<ul>\n", html.EscapeString(cfg.Name))
				for _, lib := range libraries {
					fmt.Fprintf(w, `<li><a href="/pages/%s/">%s</a></li>`+"\n", html.EscapeString(lib), html.EscapeString(lib))
				}
				fmt.Fprint(w, "</ul>\n<ul>\n")
				for _, p := range pages {
					fmt.Fprintf(w, `<li><a href="%s/">%s</a></li>`+"\n", html.EscapeString(p.Link), html.EscapeString(p.Title))
				}
				fmt.Fprint(w, "</ul>\n</body></html>\n")
				return nil
			})
		},
		Page: func(page pagecraft.Page, siteURL string) templ.Component {
			return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
				writeHead(w, page.Title)
				fmt.Fprintf(w, "<article>\n<h1>%s</h1>\n", html.EscapeString(page.Title))
				if err := markdown.Markdown(page.Body).Render(ctx, w); err != nil {
					return err
				}
				fmt.Fprint(w, "</article>\n</body></html>\n")
				return nil
			})
		},
		LibraryIndex: func(pages []pagecraft.Page, library string, pageNum, totalPages int) templ.Component {
			return component(func(w io.Writer) error {
				writeHead(w, library)
				fmt.Fprintf(w, "<h1>%s</h1>\n<ul>\n", html.EscapeString(library))
				for _, p := range pages {
					fmt.Fprintf(w, `<li><a href="%s/">%s</a></li>`+"\n", html.EscapeString(p.Link), html.EscapeString(p.Title))
				}
				fmt.Fprint(w, "</ul>\n")
				if pageNum > 1 {
					fmt.Fprintf(w, `<a href="/pages/%s/?page=%d">Newer</a>`+"\n", html.EscapeString(library), pageNum-1)
				}
				if pageNum < totalPages {
					fmt.Fprintf(w, `<a href="/pages/%s/?page=%d">Older</a>`+"\n", html.EscapeString(library), pageNum+1)
				}
				fmt.Fprint(w, "</body></html>\n")
				return nil
			})
		},
		AdminLogin: func(showError bool, csrfToken string) templ.Component {
			return component(func(w io.Writer) error {
				writeHead(w, "Login")
				if showError {
					fmt.Fprint(w, "<p>Wrong password.</p>\n")
				}
				fmt.Fprintf(w, `<form method="post" action="/admin/login/"><input type="hidden" name="_csrf" value="%s"><input type="password" name="password"><button>Login</button></form>`+"\n</body></html>\n", html.EscapeString(csrfToken))
				return nil
			})
		},
		AdminDashboard: func(pages []pagecraft.Page, message string, csrfToken string) templ.Component {
			return component(func(w io.Writer) error {
				writeHead(w, "Dashboard")
				if message != "" {
					fmt.Fprintf(w, "<p>%s</p>\n", html.EscapeString(message))
				}
				fmt.Fprint(w, "<table>\n<tr><th>Title</th><th>Library</th><th>Views</th><th>Published</th></tr>\n")
				for _, p := range pages {
					fmt.Fprintf(w, `<tr><td><a href="/admin/page/%s/">%s</a></td><td>%s</td><td>%d</td><td>%t</td></tr>`+"\n",
						html.EscapeString(p.URL), html.EscapeString(p.Title), html.EscapeString(p.Library), p.Views, p.Published)
				}
				fmt.Fprint(w, "</table>\n</body></html>\n")
				return nil
			})
		},
		AdminFormPartial: func(page pagecraft.Page, csrfToken string) templ.Component {
			return component(func(w io.Writer) error {
				fmt.Fprintf(w, `<form method="post" action="/admin/save/"><input type="hidden" name="_csrf" value="%s"><input type="hidden" name="id" value="%d">`, html.EscapeString(csrfToken), page.ID)
				fmt.Fprintf(w, `<input name="title" value="%s"><input name="url" value="%s"><input name="library" value="%s"><input name="created" value="%s">`,
					html.EscapeString(page.Title), html.EscapeString(page.URL), html.EscapeString(page.Library), html.EscapeString(page.Created))
				fmt.Fprintf(w, `<textarea name="body">%s</textarea>`, html.EscapeString(page.Body))
				checked := ""
				if page.Published {
					checked = " checked"
				}
				fmt.Fprintf(w, `<input type="checkbox" name="published"%s><button>Save</button></form>`+"\n", checked)
				return nil
			})
		},
		AdminImages: func(images []pagecraft.Image, csrfToken string) templ.Component {
			return component(func(w io.Writer) error {
				writeHead(w, "Images")
				fmt.Fprint(w, "<ul>\n")
				for _, img := range images {
					fmt.Fprintf(w, `<li><img src="/public/uploads/%s" alt="%s"> %dx%d</li>`+"\n",
						html.EscapeString(img.Filename), html.EscapeString(img.OriginalName), img.Width, img.Height)
				}
				fmt.Fprint(w, "</ul>\n</body></html>\n")
				return nil
			})
		},
		NotFound: func() templ.Component {
			return component(func(w io.Writer) error {
				writeHead(w, "Not Found")
				fmt.Fprint(w, "<h1>404</h1>\n<p>Page not found.</p>\n</body></html>\n")
				return nil
			})
		},
		ServerError: func() templ.Component {
			return component(func(w io.Writer) error {
				writeHead(w, "Error")
				fmt.Fprint(w, "<h1>500</h1>\n<p>Something went wrong.</p>\n</body></html>\n")
				return nil
			})
		},
	}
}

func component(fn func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return fn(w)
	})
}

func writeHead(w io.Writer, title string) {
	fmt.Fprintf(w, "<!doctype html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head><body>\n", html.EscapeString(title))
}
