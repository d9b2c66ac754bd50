package pagecraft

import (
	"strings"
	"testing"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"page", "home"}, "https://example.com/page/home/"},
		{"https://example.com/sub", []string{"page", "home"}, "https://example.com/sub/page/home/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{"a", "", "  ", "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("FilterEmpty = %v, want [a b]", got)
	}
}

func TestExcerpt(t *testing.T) {
	if got := Excerpt("short", 100); got != "short" {
		t.Errorf("Excerpt = %q, want unchanged input", got)
	}
	got := Excerpt("one two three four", 9)
	if got != "one two" {
		t.Errorf("Excerpt = %q, want cut at word boundary", got)
	}
}

func TestWebPageJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Site", URL: "https://example.com", Author: "Ann"}
	page := Page{URL: "home", Title: "Home", Library: "docs", Created: "2024-01-01", Updated: "2024-02-01"}

	got := WebPageJsonLD(page, cfg)
	for _, want := range []string{
		`"@type":"WebPage"`,
		`"name":"Home"`,
		`https://example.com/page/home/`,
		`"Ann"`,
		`"CollectionPage"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("WebPageJsonLD missing %q in %s", want, got)
		}
	}
}
