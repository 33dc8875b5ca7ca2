package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MDTOC_CONFIG", "")
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const readme = "# Project\n\nIntro.\n\n## Install\n\n## Usage\n"

func writeReadme(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "README.md")
	if err := os.WriteFile(path, []byte(readme), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRender_Stdin(t *testing.T) {
	out, err := run(t, readme, "render", "--list-marker", "*", "--indent", "4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "* [Project](#project)\n    * [Install](#install)\n") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestInsertRefreshDelete(t *testing.T) {
	path := writeReadme(t)

	if _, err := run(t, "", "insert", path, "--line", "3"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	inserted, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(inserted), "# Project\n\n<!-- toc start") {
		t.Fatalf("toc not inserted before line 3:\n%s", inserted)
	}

	if _, err := run(t, "", "refresh", filepath.Dir(path)); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	refreshed, _ := os.ReadFile(path)
	if string(refreshed) != string(inserted) {
		t.Errorf("refresh changed an up-to-date toc:\n%s", refreshed)
	}

	out, err := run(t, "", "follow", path, "--entry", "  - [Usage](#usage)")
	if err != nil {
		t.Fatalf("follow: %v", err)
	}
	lines := strings.Split(string(refreshed), "\n")
	want := 0
	for i, l := range lines {
		if l == "## Usage" {
			want = i + 1
		}
	}
	if got, wantOut := strings.TrimSpace(out), fmt.Sprintf("%s:%d", path, want); got != wantOut {
		t.Errorf("follow printed %q, want %q", got, wantOut)
	}

	if _, err := run(t, "", "delete", path); err != nil {
		t.Fatalf("delete: %v", err)
	}
	deleted, _ := os.ReadFile(path)
	if string(deleted) != readme {
		t.Errorf("delete did not restore the file:\n%s", deleted)
	}
}

func TestInsert_Diff(t *testing.T) {
	path := writeReadme(t)
	out, err := run(t, "", "insert", path, "--diff")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "+- [Project](#project)") {
		t.Errorf("expected diff output, got:\n%s", out)
	}
	data, _ := os.ReadFile(path)
	if string(data) != readme {
		t.Error("--diff must not write the file")
	}
}

func TestFollow_InvalidIndentation(t *testing.T) {
	path := writeReadme(t)
	if _, err := run(t, "", "follow", path, "--entry", "   - [Usage](#usage)"); err == nil {
		t.Error("expected an error for a misindented entry")
	}
}

func TestInvalidConfig(t *testing.T) {
	if _, err := run(t, readme, "render", "--indent=-2"); err == nil {
		t.Error("expected validation error")
	}
}

func TestLineOffset(t *testing.T) {
	doc := "a\nbb\nccc"
	tests := []struct {
		line    int
		want    int
		wantErr bool
	}{
		{1, 0, false},
		{2, 2, false},
		{3, 5, false},
		{4, 0, true},
		{0, 0, true},
	}
	for _, tt := range tests {
		got, err := lineOffset(doc, tt.line)
		if (err != nil) != tt.wantErr {
			t.Errorf("lineOffset(%d) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("lineOffset(%d) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestLogLevel(t *testing.T) {
	if got := logLevel(true); got != slog.LevelDebug {
		t.Errorf("verbose level = %v, want debug", got)
	}
	if got := logLevel(false); got != slog.LevelInfo {
		t.Errorf("default level = %v, want info", got)
	}
}
