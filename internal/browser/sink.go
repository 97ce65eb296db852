package browser

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxDuplicates bounds the "name (n).ext" search.
const maxDuplicates = 1000

// FileSink writes downloads into a directory. Existing files are never
// overwritten: a second resume.pdf becomes "resume (1).pdf".
type FileSink struct {
	dir string
}

func NewFileSink(dir string) *FileSink {
	if dir == "" {
		dir = "."
	}
	return &FileSink{dir: dir}
}

func (s *FileSink) Dir() string { return s.dir }

func (s *FileSink) Deliver(ctx context.Context, d Download) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(d.Data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", tmpName, err)
	}

	name := SanitizeFilename(d.Filename)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i < maxDuplicates; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		dst := filepath.Join(s.dir, candidate)
		// Link fails if dst exists, which rename would silently replace.
		err := os.Link(tmpName, dst)
		if err == nil {
			return dst, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("save %s: %w", dst, err)
		}
	}
	return "", fmt.Errorf("save %s: too many files with the same name", name)
}

// SanitizeFilename strips directories and falls back to "download" for names
// that are empty or refer to a directory.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(strings.TrimSpace(name))
	switch name {
	case "", ".", "..", "/":
		return "download"
	}
	return name
}
