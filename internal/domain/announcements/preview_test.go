package announcements

import (
	"strings"
	"testing"
)

func TestResolvePreviewYouTubeWatchURL(t *testing.T) {
	p := ResolvePreview("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if p == nil {
		t.Fatal("preview nil")
	}
	if p.ImageURL != "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg" {
		t.Fatalf("image = %q", p.ImageURL)
	}
	if p.Domain != "youtube.com" {
		t.Fatalf("domain = %q", p.Domain)
	}
}

func TestResolvePreviewYouTubeShortURL(t *testing.T) {
	p := ResolvePreview("https://youtu.be/abc123")
	if p == nil || !strings.Contains(p.ImageURL, "abc123") {
		t.Fatalf("preview = %+v", p)
	}
}

func TestResolvePreviewDirectImage(t *testing.T) {
	p := ResolvePreview("https://example.com/photos/rabies-drive.jpg")
	if p == nil {
		t.Fatal("preview nil")
	}
	if p.ImageURL != "https://example.com/photos/rabies-drive.jpg" {
		t.Fatalf("image = %q", p.ImageURL)
	}
	if p.Title != "Shared Image" {
		t.Fatalf("title = %q", p.Title)
	}
}

func TestResolvePreviewFacebookFallback(t *testing.T) {
	p := ResolvePreview("https://www.facebook.com/barangay/posts/123")
	if p == nil || p.Title != "Facebook Post" || p.Domain != "facebook.com" {
		t.Fatalf("preview = %+v", p)
	}
}

func TestResolvePreviewDOH(t *testing.T) {
	p := ResolvePreview("https://doh.gov.ph/advisories/rabies")
	if p == nil || p.Title != "Department of Health Advisory" {
		t.Fatalf("preview = %+v", p)
	}
}

func TestResolvePreviewGenericFallback(t *testing.T) {
	p := ResolvePreview("https://news.example.org/article")
	if p == nil {
		t.Fatal("preview nil")
	}
	if p.Title != "Link: news.example.org" {
		t.Fatalf("title = %q", p.Title)
	}
}

func TestResolvePreviewBadURL(t *testing.T) {
	if p := ResolvePreview("not a url"); p != nil {
		t.Fatalf("preview = %+v, want nil", p)
	}
	if p := ResolvePreview(""); p != nil {
		t.Fatalf("preview = %+v, want nil", p)
	}
}
