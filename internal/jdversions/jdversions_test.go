package jdversions_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/raysh454/mycv/internal/jdversions"
	"github.com/raysh454/mycv/internal/model"
)

func TestDiff_Identical(t *testing.T) {
	t.Parallel()
	res := jdversions.Diff("Go engineer\nRemote\n", "Go engineer\nRemote\n")
	if res.Changed() {
		t.Fatalf("expected no change, got +%d -%d", res.Added, res.Removed)
	}
	for _, c := range res.Chunks {
		if c.Type != jdversions.ChunkEqual {
			t.Errorf("unexpected chunk %+v", c)
		}
	}
}

func TestDiff_LineChanges(t *testing.T) {
	t.Parallel()
	old := "Senior Go engineer\nBerlin\nPostgres\n"
	new := "Senior Go engineer\nRemote\nPostgres\nKafka\n"

	res := jdversions.Diff(old, new)
	if res.Added != 2 || res.Removed != 1 {
		t.Fatalf("got +%d -%d, want +2 -1", res.Added, res.Removed)
	}

	var added, removed []string
	for _, c := range res.Chunks {
		switch c.Type {
		case jdversions.ChunkAdded:
			added = append(added, c.Content)
		case jdversions.ChunkRemoved:
			removed = append(removed, c.Content)
		}
	}
	if strings.Join(removed, "") != "Berlin\n" {
		t.Errorf("removed = %q", removed)
	}
	if strings.Join(added, "") != "Remote\nKafka\n" {
		t.Errorf("added = %q", added)
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()
	versions := []model.JobDescriptionVersion{
		{ID: 10, VersionNumber: 1, RawText: "a\nb\n"},
		{ID: 11, VersionNumber: 2, RawText: "a\nc\n"},
	}

	res, err := jdversions.Compare(versions, 1, 2)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if res.Base != 1 || res.Head != 2 || res.Added != 1 || res.Removed != 1 {
		t.Errorf("unexpected result %+v", res)
	}

	var buf bytes.Buffer
	if err := res.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"--- version 1", "+++ version 2", "  a", "- b", "+ c", "1 added, 1 removed"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q:\n%s", want, out)
		}
	}
}

func TestCompare_UnknownVersion(t *testing.T) {
	t.Parallel()
	versions := []model.JobDescriptionVersion{{VersionNumber: 1, RawText: "x"}}
	if _, err := jdversions.Compare(versions, 1, 3); !errors.Is(err, jdversions.ErrVersionNotFound) {
		t.Fatalf("err = %v, want ErrVersionNotFound", err)
	}
	if _, err := jdversions.Compare(nil, 1, 1); !errors.Is(err, jdversions.ErrVersionNotFound) {
		t.Fatalf("err = %v, want ErrVersionNotFound", err)
	}
}
