package pagecraft

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	pages, err := a.Cache.ListPages("")
	if err != nil {
		return err
	}
	libraries, err := a.Cache.ListLibraries()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(pages, libraries, a.Config.URL))
}

func (a *App) handlePage(c echo.Context) error {
	url := c.Param("url")
	page, err := a.Cache.GetPage(url)
	if err != nil {
		if err == sql.ErrNoRows {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	// Best effort; a lost view count never fails the request.
	if err := a.Store.RecordView(url); err != nil {
		c.Logger().Warnf("record view for %s: %v", url, err)
	}
	return Render(c, a.Views.Page(page, a.Config.URL))
}

// handleLibraryIndex serves the paginated listing of one library.
// page and limit come in as query params; out-of-range values clamp to
// defaults rather than erroring.
func (a *App) handleLibraryIndex(c echo.Context) error {
	library := c.Param("library")
	pageNum := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", a.Config.IndexLimit)
	if limit > 100 {
		limit = 100
	}

	total, err := a.Store.CountPages(library)
	if err != nil {
		return err
	}
	if total == 0 {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	pages, err := a.Store.ListPages(library, pageNum, limit)
	if err != nil {
		return err
	}
	totalPages := (total + limit - 1) / limit
	return Render(c, a.Views.LibraryIndex(pages, library, pageNum, totalPages))
}

func (a *App) handleSitemap(c echo.Context) error {
	pages, err := a.Cache.ListPages("")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, pages)
}

func (a *App) handleFeed(c echo.Context) error {
	pages, err := a.Cache.ListPages("")
	if err != nil {
		return err
	}
	return a.renderFeed(c, pages)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func queryInt(c echo.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
