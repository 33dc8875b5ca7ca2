package editor

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/mdtoc/internal/toc"
)

const guide = `# Guide

Intro.

## Setup

### Linux

## Usage

## Setup

Again.
`

var insertAt = strings.Index(guide, "## Setup")

func configs() map[string]toc.RenderConfig {
	def := toc.DefaultConfig()

	noEnd := def
	noEnd.EndMarker = ""

	heading := def
	heading.StartMarker = ""
	heading.EndMarker = ""
	heading.TitleLine = "## Contents"

	quoted := def
	quoted.QuoteLines = true
	quoted.ListMarker = "*"
	quoted.IndentUnit = 4

	return map[string]toc.RenderConfig{
		"default":       def,
		"no end marker": noEnd,
		"heading title": heading,
		"quoted":        quoted,
	}
}

func TestRefresh_Idempotent(t *testing.T) {
	for name, cfg := range configs() {
		e := New(cfg, nil)

		once, replaced, err := e.Refresh(guide, insertAt)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if replaced {
			t.Errorf("%s: first refresh should insert, not replace", name)
		}

		twice, replaced, err := e.Refresh(once, 0)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if !replaced {
			t.Errorf("%s: second refresh should find the block", name)
		}
		if twice != once {
			t.Errorf("%s: refresh is not idempotent\nonce:\n%s\ntwice:\n%s", name, once, twice)
		}
	}
}

func TestRefresh_UpdatesStaleBlock(t *testing.T) {
	e := New(toc.DefaultConfig(), nil)
	doc, err := e.Insert(guide, insertAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	edited := strings.Replace(doc, "## Usage", "## Running", 1)
	out, replaced, err := e.Refresh(edited, 0)
	if err != nil || !replaced {
		t.Fatalf("expected replacement, got replaced=%v err=%v", replaced, err)
	}
	if strings.Contains(out, "[Usage](#usage)") {
		t.Errorf("stale entry survived:\n%s", out)
	}
	if !strings.Contains(out, "  - [Running](#running)") {
		t.Errorf("missing refreshed entry:\n%s", out)
	}
	if strings.Count(out, toc.DefaultConfig().StartMarker) != 1 {
		t.Errorf("expected exactly one block:\n%s", out)
	}
}

func TestInsert_Contents(t *testing.T) {
	e := New(toc.DefaultConfig(), nil)
	out, err := e.Insert(guide, insertAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "- [Guide](#guide)\n  - [Setup](#setup)\n    - [Linux](#linux)\n  - [Usage](#usage)\n  - [Setup](#setup-1)\n"
	if !strings.Contains(out, want) {
		t.Errorf("expected entries\n%s\nin\n%s", want, out)
	}
	if !strings.HasPrefix(out, guide[:insertAt]+toc.DefaultConfig().StartMarker) {
		t.Errorf("block not inserted at offset %d:\n%s", insertAt, out)
	}
}

func TestInsert_BadOffset(t *testing.T) {
	e := New(toc.DefaultConfig(), nil)
	for _, off := range []int{-1, len(guide) + 1} {
		if _, err := e.Insert(guide, off); !errors.Is(err, ErrOffset) {
			t.Errorf("offset %d: expected ErrOffset, got %v", off, err)
		}
	}
}

func TestRefresh_MidLineOffset(t *testing.T) {
	e := New(toc.DefaultConfig(), nil)
	doc := "# A\n\ntext\n"
	once, replaced, err := e.Refresh(doc, 2)
	if err != nil || replaced {
		t.Fatalf("first refresh: replaced=%v err=%v", replaced, err)
	}
	if !strings.HasPrefix(once, toc.DefaultConfig().StartMarker) {
		t.Fatalf("block not moved to the line start:\n%s", once)
	}
	twice, replaced, err := e.Refresh(once, 2)
	if err != nil || !replaced {
		t.Fatalf("second refresh: replaced=%v err=%v", replaced, err)
	}
	if twice != once {
		t.Errorf("refresh not idempotent:\n%s\n---\n%s", once, twice)
	}
}

func TestInsert_InsideMultiByteRune(t *testing.T) {
	e := New(toc.DefaultConfig(), nil)
	out, err := e.Insert("# Émile\n", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, toc.DefaultConfig().StartMarker) || !strings.HasSuffix(out, "# Émile\n") {
		t.Errorf("block not inserted at the line start:\n%s", out)
	}
}

func TestDelete(t *testing.T) {
	for name, cfg := range configs() {
		e := New(cfg, nil)
		doc, err := e.Insert(guide, insertAt)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		out, ok := e.Delete(doc)
		if !ok {
			t.Fatalf("%s: expected block to be deleted", name)
		}
		if out != guide {
			t.Errorf("%s: delete did not restore the document:\n%s", name, out)
		}
		if _, ok := e.Delete(out); ok {
			t.Errorf("%s: second delete should find nothing", name)
		}
	}
}

func TestRefreshIfPresent_NoBlock(t *testing.T) {
	e := New(toc.DefaultConfig(), nil)
	out, ok := e.RefreshIfPresent(guide)
	if ok || out != guide {
		t.Errorf("document without a toc must be left alone")
	}
}

func TestFollow(t *testing.T) {
	e := New(toc.DefaultConfig(), nil)
	doc, err := e.Insert(guide, insertAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		target string
		want   int
	}{
		{"  - [Usage](#usage)", strings.Index(doc, "## Usage")},
		{"  - [Setup](#setup-1)", strings.LastIndex(doc, "## Setup")},
		{"    - [Linux](#linux)", strings.Index(doc, "### Linux")},
		{"#usage", strings.Index(doc, "## Usage")},
	}
	for _, tt := range tests {
		got, err := e.Follow(doc, tt.target)
		if err != nil {
			t.Errorf("Follow(%q) unexpected error: %v", tt.target, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Follow(%q) = %d, want %d", tt.target, got, tt.want)
		}
	}

	if _, err := e.Follow(doc, "just words"); !errors.Is(err, toc.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := e.Follow(doc, "   - [Usage](#usage)"); !errors.Is(err, toc.ErrInvalidIndentation) {
		t.Errorf("expected ErrInvalidIndentation, got %v", err)
	}
}

func TestFollowAt(t *testing.T) {
	e := New(toc.DefaultConfig(), nil)
	doc, err := e.Insert(guide, insertAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cursor := strings.Index(doc, "[Linux]") + 3
	got, err := e.FollowAt(doc, cursor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := strings.Index(doc, "### Linux"); got != want {
		t.Errorf("FollowAt = %d, want %d", got, want)
	}
	if _, err := e.FollowAt(doc, len(doc)+5); !errors.Is(err, ErrOffset) {
		t.Errorf("expected ErrOffset, got %v", err)
	}
}

func TestLineOf(t *testing.T) {
	doc := "a\nb\nc"
	tests := map[int]int{0: 1, 1: 1, 2: 2, 4: 3, 99: 3, -3: 1}
	for off, want := range tests {
		if got := LineOf(doc, off); got != want {
			t.Errorf("LineOf(%d) = %d, want %d", off, got, want)
		}
	}
}

func TestDiff(t *testing.T) {
	out, err := Diff("a.md", "x\nkeep\n", "y\nkeep\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"--- a/a.md", "+++ b/a.md", "-x", "+y"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in diff:\n%s", want, out)
		}
	}
	if out, _ := Diff("a.md", "same", "same"); out != "" {
		t.Errorf("expected empty diff, got %q", out)
	}
}
