package toc

import (
	"reflect"
	"testing"

	"github.com/dgallion1/mdtoc/internal/doctree"
)

func TestFlatten_DepthAndOrder(t *testing.T) {
	forest := []*doctree.Node{
		{Title: "X", Children: []*doctree.Node{
			{Title: "Y", Children: []*doctree.Node{{Title: "Y1"}}},
			{Title: "Z"},
		}},
		{Title: "W"},
	}
	got := Flatten(forest)
	want := []Entry{
		{Depth: 0, Title: "X"},
		{Depth: 1, Title: "Y"},
		{Depth: 2, Title: "Y1"},
		{Depth: 1, Title: "Z"},
		{Depth: 0, Title: "W"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten = %+v, want %+v", got, want)
	}
}

func TestFlatten_SingleChild(t *testing.T) {
	forest := []*doctree.Node{{Title: "X", Children: []*doctree.Node{{Title: "Y"}}}}
	got := Flatten(forest)
	want := []Entry{{0, "X"}, {1, "Y"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten = %+v, want %+v", got, want)
	}
}

func TestFlatten_Empty(t *testing.T) {
	if got := Flatten(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
}

func TestDisambiguate(t *testing.T) {
	entries := []Entry{{0, "A"}, {0, "B"}, {0, "A"}, {1, "A"}, {1, "a"}}
	got := Disambiguate(entries)
	wantOcc := []int{0, 0, 1, 2, 0}
	if len(got) != len(entries) {
		t.Fatalf("expected %d entries, got %d", len(entries), len(got))
	}
	for i, d := range got {
		if d.Entry != entries[i] {
			t.Errorf("entry %d changed: %+v", i, d.Entry)
		}
		if d.Occurrence != wantOcc[i] {
			t.Errorf("entry %d (%q): occurrence %d, want %d", i, d.Title, d.Occurrence, wantOcc[i])
		}
	}
}
