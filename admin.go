package pagecraft

import (
	"crypto/subtle"
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminPage(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	url := c.Param("url")
	page, err := a.Store.GetPageAny(url)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, a.Views.AdminFormPartial(page, CsrfToken(c)))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// handleAdminSave creates or updates a page. The requested slug (or one
// derived from the title) is passed through UniqueURL before persisting,
// with the page's own id excluded so an edit keeps its slug.
func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	title := strings.TrimSpace(c.FormValue("title"))
	url := strings.TrimSpace(c.FormValue("url"))
	if url == "" {
		url = Slugify(title)
	}
	if url == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Url+is+required.+Add+a+title+or+url.")
	}

	var id int64
	if v := strings.TrimSpace(c.FormValue("id")); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+page+id.")
		}
		id = parsed
	}

	candidate := SlugCandidate{URL: url}
	if id != 0 {
		candidate.ExcludeID = NumericID(id)
	}
	url, err := UniqueURL(candidate, a.Store)
	if err != nil {
		return err
	}

	created := strings.TrimSpace(c.FormValue("created"))
	if created == "" {
		created = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", created); err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+date+format.+Use+YYYY-MM-DD.")
	}

	page := Page{
		ID:        id,
		URL:       url,
		Title:     title,
		Library:   strings.TrimSpace(c.FormValue("library")),
		Body:      c.FormValue("body"),
		Created:   created,
		Updated:   time.Now().Format("2006-01-02"),
		Published: c.FormValue("published") != "",
	}
	if id == 0 {
		if _, err := a.Store.CreatePage(page); err != nil {
			return err
		}
	} else {
		if err := a.Store.UpdatePage(page); err != nil {
			return err
		}
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	url := c.Param("url")
	if err := a.Store.DeletePage(url); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	pages, err := a.Store.ListAllPages()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(pages, msg, CsrfToken(c)))
}
