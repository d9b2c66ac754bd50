package pagecraft

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_pages.db")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
		os.Remove(path)
	})
	return s
}

func testPage(url, library string) Page {
	return Page{
		URL:       url,
		Title:     "Title " + url,
		Library:   library,
		Body:      "# Heading\n\nBody of " + url,
		Created:   "2024-01-15",
		Updated:   "2024-01-15",
		Published: true,
	}
}

func TestNewStore(t *testing.T) {
	s := setupTestStore(t)
	if s == nil {
		t.Fatal("store should not be nil")
	}
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestCreateAndGetPage(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreatePage(testPage("test-page", "docs"))
	if err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("CreatePage should assign an id")
	}

	got, err := s.GetPage("test-page")
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID = %d, want %d", got.ID, created.ID)
	}
	if got.Title != "Title test-page" {
		t.Errorf("Title = %q, want %q", got.Title, "Title test-page")
	}
	if got.Library != "docs" {
		t.Errorf("Library = %q, want %q", got.Library, "docs")
	}
	if got.Link != "/page/test-page" {
		t.Errorf("Link = %q, want %q", got.Link, "/page/test-page")
	}
	if !got.Published {
		t.Error("Published should be true")
	}
	if got.Views != 0 {
		t.Errorf("Views = %d, want 0", got.Views)
	}
}

func TestCreatePageDefaultsLibrary(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreatePage(testPage("orphan", "")); err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}
	got, err := s.GetPage("orphan")
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if got.Library != "pages" {
		t.Errorf("Library = %q, want default %q", got.Library, "pages")
	}
}

func TestUpdatePage(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreatePage(testPage("update-test", "docs"))
	if err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}

	created.Title = "Updated Title"
	created.URL = "updated-url"
	created.Updated = "2024-02-01"
	if err := s.UpdatePage(created); err != nil {
		t.Fatalf("UpdatePage failed: %v", err)
	}

	if _, err := s.GetPage("update-test"); err != sql.ErrNoRows {
		t.Errorf("old url should be gone, got err %v", err)
	}
	got, err := s.GetPage("updated-url")
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if got.Title != "Updated Title" {
		t.Errorf("Title = %q, want %q", got.Title, "Updated Title")
	}
	if got.ID != created.ID {
		t.Errorf("update must keep the id, got %d want %d", got.ID, created.ID)
	}
}

func TestDuplicateURLRejected(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreatePage(testPage("taken", "docs")); err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}
	if _, err := s.CreatePage(testPage("taken", "docs")); err == nil {
		t.Error("second CreatePage with same url should fail on the unique constraint")
	}
}

func TestGetPageNotFound(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.GetPage("nonexistent"); err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestGetPageUnpublished(t *testing.T) {
	s := setupTestStore(t)

	p := testPage("draft", "docs")
	p.Published = false
	if _, err := s.CreatePage(p); err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}

	if _, err := s.GetPage("draft"); err != sql.ErrNoRows {
		t.Errorf("GetPage should return ErrNoRows for unpublished, got %v", err)
	}
	got, err := s.GetPageAny("draft")
	if err != nil {
		t.Fatalf("GetPageAny failed: %v", err)
	}
	if got.Published {
		t.Error("Published should be false")
	}
}

func TestListPagesPagination(t *testing.T) {
	s := setupTestStore(t)

	for i := 1; i <= 7; i++ {
		p := testPage(fmt.Sprintf("doc-%d", i), "docs")
		p.Updated = fmt.Sprintf("2024-01-%02d", i)
		if _, err := s.CreatePage(p); err != nil {
			t.Fatalf("CreatePage failed: %v", err)
		}
	}
	p := testPage("other", "notes")
	if _, err := s.CreatePage(p); err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}

	first, err := s.ListPages("docs", 1, 3)
	if err != nil {
		t.Fatalf("ListPages failed: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("page 1 count = %d, want 3", len(first))
	}
	if first[0].URL != "doc-7" {
		t.Errorf("newest page should come first, got %s", first[0].URL)
	}

	third, err := s.ListPages("docs", 3, 3)
	if err != nil {
		t.Fatalf("ListPages failed: %v", err)
	}
	if len(third) != 1 {
		t.Errorf("page 3 count = %d, want 1", len(third))
	}
	if len(third) == 1 && third[0].URL != "doc-1" {
		t.Errorf("oldest page should come last, got %s", third[0].URL)
	}

	count, err := s.CountPages("docs")
	if err != nil {
		t.Fatalf("CountPages failed: %v", err)
	}
	if count != 7 {
		t.Errorf("CountPages(docs) = %d, want 7", count)
	}
	all, err := s.CountPages("")
	if err != nil {
		t.Fatalf("CountPages failed: %v", err)
	}
	if all != 8 {
		t.Errorf("CountPages() = %d, want 8", all)
	}
}

func TestListPagesClampsBadInput(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreatePage(testPage("solo", "docs")); err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}
	got, err := s.ListPages("docs", 0, -5)
	if err != nil {
		t.Fatalf("ListPages failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("clamped listing count = %d, want 1", len(got))
	}
}

func TestListLibraries(t *testing.T) {
	s := setupTestStore(t)

	for _, entry := range []struct {
		url, lib  string
		published bool
	}{
		{"a", "docs", true},
		{"b", "notes", true},
		{"c", "docs", true},
		{"d", "drafts", false},
	} {
		p := testPage(entry.url, entry.lib)
		p.Published = entry.published
		if _, err := s.CreatePage(p); err != nil {
			t.Fatalf("CreatePage failed: %v", err)
		}
	}

	libs, err := s.ListLibraries()
	if err != nil {
		t.Fatalf("ListLibraries failed: %v", err)
	}
	if len(libs) != 2 || libs[0] != "docs" || libs[1] != "notes" {
		t.Errorf("ListLibraries = %v, want [docs notes]", libs)
	}
}

func TestListAllPagesIncludesDrafts(t *testing.T) {
	s := setupTestStore(t)

	pub := testPage("published", "docs")
	draft := testPage("unpublished", "docs")
	draft.Published = false
	if _, err := s.CreatePage(pub); err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}
	if _, err := s.CreatePage(draft); err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}

	got, err := s.ListAllPages()
	if err != nil {
		t.Fatalf("ListAllPages failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ListAllPages count = %d, want 2 (including drafts)", len(got))
	}
}

func TestFindByURLContains(t *testing.T) {
	s := setupTestStore(t)

	for _, url := range []string{"home", "home-1", "homework", "about"} {
		if _, err := s.CreatePage(testPage(url, "docs")); err != nil {
			t.Fatalf("CreatePage failed: %v", err)
		}
	}

	records, err := s.FindByURLContains("home")
	if err != nil {
		t.Fatalf("FindByURLContains failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("record count = %d, want 3 (substring match)", len(records))
	}
	for _, r := range records {
		if r.ID == nil {
			t.Errorf("record %q has nil id", r.URL)
		}
		if r.URL == "about" {
			t.Errorf("about must not match a contains query for home")
		}
	}
}

func TestUniqueURLAgainstStore(t *testing.T) {
	s := setupTestStore(t)

	first, err := UniqueURL(SlugCandidate{URL: "Guide"}, s)
	if err != nil {
		t.Fatalf("UniqueURL failed: %v", err)
	}
	if first != "guide" {
		t.Fatalf("UniqueURL = %q, want %q", first, "guide")
	}
	created, err := s.CreatePage(testPage(first, "docs"))
	if err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}

	second, err := UniqueURL(SlugCandidate{URL: "Guide"}, s)
	if err != nil {
		t.Fatalf("UniqueURL failed: %v", err)
	}
	if second != "guide-1" {
		t.Errorf("UniqueURL = %q, want %q", second, "guide-1")
	}

	// Editing the original record keeps its slug.
	kept, err := UniqueURL(SlugCandidate{URL: "guide", ExcludeID: NumericID(created.ID)}, s)
	if err != nil {
		t.Fatalf("UniqueURL failed: %v", err)
	}
	if kept != "guide" {
		t.Errorf("UniqueURL on edit = %q, want %q", kept, "guide")
	}
}

func TestDeletePage(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreatePage(testPage("to-delete", "docs")); err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}
	if err := s.DeletePage("to-delete"); err != nil {
		t.Fatalf("DeletePage failed: %v", err)
	}
	if _, err := s.GetPage("to-delete"); err != sql.ErrNoRows {
		t.Errorf("page should not exist after delete, got err: %v", err)
	}

	// Deleting a missing page is a no-op.
	if err := s.DeletePage("nonexistent"); err != nil {
		t.Errorf("DeletePage on nonexistent should not error, got: %v", err)
	}
}

func TestRecordView(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.CreatePage(testPage("counted", "docs")); err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := s.RecordView("counted"); err != nil {
			t.Fatalf("RecordView failed: %v", err)
		}
	}
	got, err := s.GetPage("counted")
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if got.Views != 3 {
		t.Errorf("Views = %d, want 3", got.Views)
	}
}

func TestImageRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	img := Image{
		Filename:     "photo.jpg",
		OriginalName: "Photo Original.png",
		Width:        800,
		Height:       600,
		Size:         12345,
		UploadedAt:   "2024-01-15T10:00:00Z",
	}
	if err := s.SaveImage(img); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	images, err := s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 1 || images[0].Filename != "photo.jpg" || images[0].Width != 800 {
		t.Errorf("ListImages = %+v, want the saved image", images)
	}

	if err := s.DeleteImage("photo.jpg"); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}
	images, err = s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 0 {
		t.Errorf("image should be gone, got %+v", images)
	}
}
