package pagecraft

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database and provides CRUD operations for pages
// and uploaded images.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and tune
	// performance: synchronous=NORMAL is safe with WAL and avoids an fsync
	// per transaction; larger cache and mmap reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS pages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    library TEXT NOT NULL DEFAULT 'pages',
    body TEXT NOT NULL,
    created TEXT NOT NULL,
    updated TEXT NOT NULL,
    published INTEGER NOT NULL DEFAULT 1,
    views INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_pages_library ON pages(library);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

const pageColumns = `id, url, title, library, body, created, updated, published, views`

func scanPage(scan func(dest ...any) error) (Page, error) {
	var p Page
	var published int
	if err := scan(&p.ID, &p.URL, &p.Title, &p.Library, &p.Body, &p.Created, &p.Updated, &published, &p.Views); err != nil {
		return Page{}, err
	}
	p.Published = published == 1
	p.Link = "/page/" + p.URL
	return p, nil
}

func (s *Store) queryPages(query string, args ...any) ([]Page, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		p, err := scanPage(rows.Scan)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// GetPage returns a single published page by url slug.
func (s *Store) GetPage(url string) (Page, error) {
	row := s.db.QueryRow(`SELECT `+pageColumns+` FROM pages WHERE url = ? AND published = 1`, url)
	return scanPage(row.Scan)
}

// GetPageAny returns a page by url slug regardless of published status (for admin).
func (s *Store) GetPageAny(url string) (Page, error) {
	row := s.db.QueryRow(`SELECT `+pageColumns+` FROM pages WHERE url = ?`, url)
	return scanPage(row.Scan)
}

// ListPages returns one page-window of published pages in the given
// library, newest first. pageNum is 1-based; limit caps the window size.
// An empty library means all libraries.
func (s *Store) ListPages(library string, pageNum, limit int) ([]Page, error) {
	if pageNum < 1 {
		pageNum = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (pageNum - 1) * limit
	if library == "" {
		return s.queryPages(`SELECT `+pageColumns+` FROM pages WHERE published = 1 ORDER BY updated DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
	}
	return s.queryPages(`SELECT `+pageColumns+` FROM pages WHERE published = 1 AND library = ? ORDER BY updated DESC, id DESC LIMIT ? OFFSET ?`, library, limit, offset)
}

// CountPages returns the number of published pages in library
// (all libraries when library is empty).
func (s *Store) CountPages(library string) (int, error) {
	var n int
	var err error
	if library == "" {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM pages WHERE published = 1`).Scan(&n)
	} else {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM pages WHERE published = 1 AND library = ?`, library).Scan(&n)
	}
	return n, err
}

// ListLibraries returns a sorted, deduplicated slice of library names that
// have at least one published page.
func (s *Store) ListLibraries() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT library FROM pages WHERE published = 1 ORDER BY library`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var libs []string
	for rows.Next() {
		var lib string
		if err := rows.Scan(&lib); err != nil {
			return nil, err
		}
		libs = append(libs, lib)
	}
	return libs, rows.Err()
}

// ListAllPages returns every page (published and drafts) ordered by last
// update descending.
func (s *Store) ListAllPages() ([]Page, error) {
	return s.queryPages(`SELECT ` + pageColumns + ` FROM pages ORDER BY updated DESC, id DESC`)
}

// FindByURLContains returns the id and url of every page whose url contains
// pattern as a substring. This is the RecordFinder capability consumed by
// UniqueURL.
func (s *Store) FindByURLContains(pattern string) ([]ExistingRecord, error) {
	rows, err := s.db.Query(`SELECT id, url FROM pages WHERE instr(url, ?) > 0`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ExistingRecord
	for rows.Next() {
		var id int64
		var url string
		if err := rows.Scan(&id, &url); err != nil {
			return nil, err
		}
		records = append(records, ExistingRecord{ID: NumericID(id), URL: url})
	}
	return records, rows.Err()
}

// CreatePage inserts a new page and returns it with its assigned id.
// The library defaults to "pages" when empty.
func (s *Store) CreatePage(p Page) (Page, error) {
	if strings.TrimSpace(p.Library) == "" {
		p.Library = "pages"
	}
	published := 0
	if p.Published {
		published = 1
	}
	res, err := s.db.Exec(`INSERT INTO pages (url, title, library, body, created, updated, published) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.URL, p.Title, p.Library, p.Body, p.Created, p.Updated, published)
	if err != nil {
		return Page{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Page{}, err
	}
	p.ID = id
	p.Link = "/page/" + p.URL
	return p, nil
}

// UpdatePage rewrites an existing page identified by its id. The view
// counter is left untouched.
func (s *Store) UpdatePage(p Page) error {
	published := 0
	if p.Published {
		published = 1
	}
	_, err := s.db.Exec(`UPDATE pages SET url = ?, title = ?, library = ?, body = ?, created = ?, updated = ?, published = ? WHERE id = ?`,
		p.URL, p.Title, p.Library, p.Body, p.Created, p.Updated, published, p.ID)
	return err
}

// DeletePage removes a page by url slug.
func (s *Store) DeletePage(url string) error {
	_, err := s.db.Exec(`DELETE FROM pages WHERE url = ?`, url)
	return err
}

// RecordView bumps the view counter for the page at url.
func (s *Store) RecordView(url string) error {
	_, err := s.db.Exec(`UPDATE pages SET views = views + 1 WHERE url = ?`, url)
	return err
}

// SaveImage upserts image metadata.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns all uploaded images, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}
