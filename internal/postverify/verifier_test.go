package postverify

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestInspectOpenGraph(t *testing.T) {
	html := `<html><head>
		<title>fallback title</title>
		<meta property="og:title" content=" Launch video by @creator ">
		<meta property="og:description" content="Watch the full launch.">
	</head><body></body></html>`

	result := Inspect(parseDoc(t, html))

	if result.Title != "Launch video by @creator" {
		t.Errorf("Title = %q, want og:title content", result.Title)
	}
	if result.Description != "Watch the full launch." {
		t.Errorf("Description = %q", result.Description)
	}
	if !result.Published {
		t.Error("expected Published = true")
	}
}

func TestInspectTitleFallback(t *testing.T) {
	html := `<html><head><title>  Plain page title </title></head><body></body></html>`

	result := Inspect(parseDoc(t, html))

	if result.Title != "Plain page title" {
		t.Errorf("Title = %q, want trimmed <title> text", result.Title)
	}
	if !result.Published {
		t.Error("expected Published = true")
	}
}

func TestInspectEmptyPage(t *testing.T) {
	result := Inspect(parseDoc(t, `<html><head></head><body><p>404</p></body></html>`))

	if result.Published {
		t.Error("expected Published = false for page without title")
	}
	if result.Title != "" {
		t.Errorf("Title = %q, want empty", result.Title)
	}
}

func TestInspectFirstOGTagWins(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="first">
		<meta property="og:title" content="second">
	</head></html>`

	result := Inspect(parseDoc(t, html))
	if result.Title != "first" {
		t.Errorf("Title = %q, want %q", result.Title, "first")
	}
}
