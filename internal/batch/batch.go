package batch

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/mdtoc/internal/editor"
	"github.com/dgallion1/mdtoc/internal/outline"
	"golang.org/x/sync/errgroup"
)

// Status is the outcome for one file.
type Status string

const (
	StatusUpdated   Status = "updated"
	StatusInserted  Status = "inserted"
	StatusUnchanged Status = "unchanged"
	StatusNoTOC     Status = "no_toc"
	StatusFailed    Status = "failed"
)

// Result describes what happened to one file.
type Result struct {
	Path   string `json:"path"`
	Status Status `json:"status"`
	Diff   string `json:"diff,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Options controls a batch run.
type Options struct {
	Workers int
	// Insert adds a TOC at the top of files that have none.
	Insert bool
	// DryRun computes diffs without writing files.
	DryRun bool
}

// Runner refreshes the TOC of many files with bounded concurrency.
type Runner struct {
	editor *editor.Editor
	opts   Options
	log    *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(ed *editor.Editor, opts Options, log *slog.Logger) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Runner{editor: ed, opts: opts, log: log}
}

// Run processes paths and returns one Result per path, in input order. It
// only fails if ctx is cancelled; per-file errors are reported in Results.
func (r *Runner) Run(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.process(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (r *Runner) process(path string) Result {
	res := Result{Path: path}
	fail := func(err error) Result {
		res.Status = StatusFailed
		res.Error = err.Error()
		r.log.Warn("toc refresh failed", "path", path, "error", err)
		return res
	}

	info, err := os.Stat(path)
	if err != nil {
		return fail(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fail(err)
	}
	before := string(data)

	var after string
	if r.opts.Insert {
		var replaced bool
		after, replaced, err = r.editor.Refresh(before, 0)
		if err != nil {
			return fail(err)
		}
		res.Status = StatusInserted
		if replaced {
			res.Status = StatusUpdated
		}
	} else {
		var found bool
		after, found = r.editor.RefreshIfPresent(before)
		if !found {
			res.Status = StatusNoTOC
			return res
		}
		res.Status = StatusUpdated
	}

	if ContentHashHex([]byte(after)) == ContentHashHex(data) {
		res.Status = StatusUnchanged
		return res
	}

	if r.opts.DryRun {
		res.Diff, err = editor.Diff(filepath.ToSlash(path), before, after)
		if err != nil {
			return fail(err)
		}
		return res
	}

	if err := os.WriteFile(path, []byte(after), info.Mode().Perm()); err != nil {
		return fail(fmt.Errorf("write %s: %w", path, err))
	}
	r.log.Info("toc written", "path", path, "status", res.Status)
	return res
}

// Collect returns the Markdown files under root, skipping hidden directories
// and node_modules. A root that is a file is returned as-is.
func Collect(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if outline.IsMarkdown(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return paths, nil
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
