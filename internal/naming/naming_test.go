package naming

import (
	"path/filepath"
	"testing"

	"github.com/backmassage/pixmaster/internal/config"
)

func TestDestinationPath(t *testing.T) {
	out := filepath.FromSlash("/out")
	tests := []struct {
		name   string
		rel    string
		format config.Format
		want   string
	}{
		{"nested upper-case ext", "a/b/pic.PNG", config.FormatWebP, "/out/a/b/pic.webp"},
		{"top level", "hero.jpg", config.FormatAVIF, "/out/hero.avif"},
		{"jpeg spelling kept", "x.png", config.FormatJPEG, "/out/x.jpeg"},
		{"jpg spelling", "x.png", config.FormatJPG, "/out/x.jpg"},
		{"skip keeps extension", "a/pic.PNG", config.FormatSkip, "/out/a/pic.PNG"},
		{"dotted stem", "a/my.photo.gif", config.FormatPNG, "/out/a/my.photo.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DestinationPath(out, filepath.FromSlash(tt.rel), tt.format)
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("DestinationPath(%q, %q) = %q, want %q", tt.rel, tt.format, got, tt.want)
			}
		})
	}
}

func TestRelativePath(t *testing.T) {
	root := filepath.FromSlash("/in")
	rel, err := RelativePath(root, filepath.FromSlash("/in/a/b/pic.png"))
	if err != nil {
		t.Fatal(err)
	}
	if rel != filepath.FromSlash("a/b/pic.png") {
		t.Errorf("RelativePath = %q", rel)
	}

	for _, outside := range []string{"/other/pic.png", "/in"} {
		if _, err := RelativePath(root, filepath.FromSlash(outside)); err == nil {
			t.Errorf("RelativePath(%q) should fail", outside)
		}
	}
}

func TestClaims(t *testing.T) {
	c := NewClaims()
	dest := filepath.FromSlash("/out/a/pic.webp")

	got, renamed := c.Claim("/in/a/pic.png", dest)
	if got != dest || renamed {
		t.Fatalf("first claim = %q renamed=%v", got, renamed)
	}

	// Same source asking again keeps its path.
	got, renamed = c.Claim("/in/a/pic.png", dest)
	if got != dest || renamed {
		t.Errorf("re-claim = %q renamed=%v", got, renamed)
	}

	got, renamed = c.Claim("/in/a/pic.jpg", dest)
	if want := filepath.FromSlash("/out/a/pic - dup1.webp"); got != want || !renamed {
		t.Errorf("second source = %q renamed=%v, want %q", got, renamed, want)
	}

	got, _ = c.Claim("/in/a/pic.gif", dest)
	if want := filepath.FromSlash("/out/a/pic - dup2.webp"); got != want {
		t.Errorf("third source = %q, want %q", got, want)
	}
	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}
}

func TestClaims_CaseInsensitive(t *testing.T) {
	c := NewClaims()
	c.Claim("/in/pic.png", filepath.FromSlash("/out/pic.webp"))

	got, renamed := c.Claim("/in/Pic.PNG", filepath.FromSlash("/out/Pic.webp"))
	if want := filepath.FromSlash("/out/Pic - dup1.webp"); got != want || !renamed {
		t.Errorf("case-variant claim = %q renamed=%v, want %q", got, renamed, want)
	}
}
