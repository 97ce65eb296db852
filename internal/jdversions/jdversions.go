// Package jdversions diffs stored versions of a job description so the
// changes between two edits can be reviewed before restoring one.
package jdversions

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/raysh454/mycv/internal/model"
)

var ErrVersionNotFound = errors.New("version not found")

// ChunkType is the kind of a diff chunk.
type ChunkType string

const (
	ChunkAdded   ChunkType = "added"
	ChunkRemoved ChunkType = "removed"
	ChunkEqual   ChunkType = "equal"
)

// Chunk is a run of whole lines with the same ChunkType.
type Chunk struct {
	Type    ChunkType `json:"type"`
	Content string    `json:"content"`
}

// Result is a line-level diff from Base to Head.
type Result struct {
	Base    int     `json:"base_version,omitempty"`
	Head    int     `json:"head_version,omitempty"`
	Chunks  []Chunk `json:"chunks"`
	Added   int     `json:"lines_added"`
	Removed int     `json:"lines_removed"`
}

// Changed reports whether the two texts differ.
func (r *Result) Changed() bool {
	return r.Added > 0 || r.Removed > 0
}

// Diff compares old and new line by line. Postings are edited a paragraph at
// a time, so lines read better than the character diff dmp produces by
// default.
func Diff(old, new string) *Result {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	res := &Result{Chunks: make([]Chunk, 0, len(diffs))}
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		var ct ChunkType
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			ct = ChunkAdded
			res.Added += countLines(d.Text)
		case diffmatchpatch.DiffDelete:
			ct = ChunkRemoved
			res.Removed += countLines(d.Text)
		default:
			ct = ChunkEqual
		}
		res.Chunks = append(res.Chunks, Chunk{Type: ct, Content: d.Text})
	}
	return res
}

// Compare diffs two versions of the same job description, looked up by
// version number.
func Compare(versions []model.JobDescriptionVersion, base, head int) (*Result, error) {
	var from, to *model.JobDescriptionVersion
	for i := range versions {
		if versions[i].VersionNumber == base {
			from = &versions[i]
		}
		if versions[i].VersionNumber == head {
			to = &versions[i]
		}
	}
	if from == nil {
		return nil, fmt.Errorf("%w: %d", ErrVersionNotFound, base)
	}
	if to == nil {
		return nil, fmt.Errorf("%w: %d", ErrVersionNotFound, head)
	}

	res := Diff(from.RawText, to.RawText)
	res.Base = base
	res.Head = head
	return res, nil
}

// Render writes the diff as text: "+ " for added lines, "- " for removed
// ones and "  " for context.
func (r *Result) Render(w io.Writer) error {
	if r.Base != 0 || r.Head != 0 {
		if _, err := fmt.Fprintf(w, "--- version %d\n+++ version %d\n", r.Base, r.Head); err != nil {
			return err
		}
	}
	for _, c := range r.Chunks {
		prefix := "  "
		switch c.Type {
		case ChunkAdded:
			prefix = "+ "
		case ChunkRemoved:
			prefix = "- "
		}
		for _, line := range splitLines(c.Content) {
			if _, err := io.WriteString(w, prefix+line+"\n"); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "%d added, %d removed\n", r.Added, r.Removed)
	return err
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func countLines(s string) int {
	return len(splitLines(s))
}
