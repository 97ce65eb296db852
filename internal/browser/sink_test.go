package browser_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/raysh454/mycv/internal/browser"
)

func TestFileSink_WritesFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	sink := browser.NewFileSink(dir)

	loc, err := sink.Deliver(context.Background(), browser.Download{
		Filename:    "resume_acme.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4 test"),
	})
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if loc != filepath.Join(dir, "resume_acme.pdf") {
		t.Errorf("location = %q", loc)
	}
	got, err := os.ReadFile(loc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "%PDF-1.4 test" {
		t.Errorf("content = %q", got)
	}
}

func TestFileSink_DoesNotOverwrite(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	sink := browser.NewFileSink(dir)
	ctx := context.Background()

	var locs []string
	for _, body := range []string{"one", "two", "three"} {
		loc, err := sink.Deliver(ctx, browser.Download{Filename: "resume.pdf", Data: []byte(body)})
		if err != nil {
			t.Fatalf("Deliver(%s): %v", body, err)
		}
		locs = append(locs, loc)
	}

	want := []string{"resume.pdf", "resume (1).pdf", "resume (2).pdf"}
	for i, w := range want {
		if filepath.Base(locs[i]) != w {
			t.Errorf("delivery %d saved as %q, want %q", i, filepath.Base(locs[i]), w)
		}
	}
	first, _ := os.ReadFile(locs[0])
	if string(first) != "one" {
		t.Errorf("first file overwritten: %q", first)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 3 {
		t.Errorf("expected 3 files (no temp leftovers), got %d", len(entries))
	}
}

func TestFileSink_StripsDirectories(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	sink := browser.NewFileSink(dir)

	loc, err := sink.Deliver(context.Background(), browser.Download{Filename: "../../etc/passwd", Data: []byte("x")})
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if filepath.Dir(loc) != dir {
		t.Errorf("file escaped the download dir: %q", loc)
	}
}

func TestFileSink_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := browser.NewFileSink(t.TempDir()).Deliver(ctx, browser.Download{Filename: "a.pdf"}); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"resume.pdf":        "resume.pdf",
		"  spaced.pdf ":     "spaced.pdf",
		"a/b/c.pdf":         "c.pdf",
		`C:\Users\x\cv.pdf`: "cv.pdf",
		"":                  "download",
		"..":                "download",
		"/":                 "download",
	}
	for in, want := range cases {
		if got := browser.SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
