package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/mdtoc/internal/batch"
	"github.com/dgallion1/mdtoc/internal/editor"
	"github.com/dgallion1/mdtoc/internal/outline"
	"github.com/dgallion1/mdtoc/internal/toc"
	"github.com/spf13/cobra"
)

func newRenderCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render [file]",
		Short: "Print a TOC block for a Markdown, HTML, DOCX or PDF file (stdin if omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || args[0] == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), a.editor().Render(string(data)))
				return nil
			}

			path := args[0]
			provider, err := outline.ForFile(path)
			if err != nil {
				return err
			}
			if md, ok := provider.(*outline.MarkdownProvider); ok {
				md.SkipTitle = a.cfg.TitleLine
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			tree, err := provider.Outline(f, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			a.log.Debug("outline read", "path", path, "title", tree.Title)
			fmt.Fprint(cmd.OutOrStdout(), toc.Generate(tree.Children, a.cfg.Render()))
			return nil
		},
	}
}

// output writes the new document, prints it, or prints a diff.
type output struct {
	diff   bool
	stdout bool
}

func (o *output) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.diff, "diff", false, "Print a unified diff instead of writing the file")
	cmd.Flags().BoolVar(&o.stdout, "stdout", false, "Print the result instead of writing the file")
}

func (o *output) write(cmd *cobra.Command, path, before, after string) error {
	switch {
	case o.diff:
		d, err := editor.Diff(path, before, after)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), d)
		return nil
	case o.stdout:
		fmt.Fprint(cmd.OutOrStdout(), after)
		return nil
	case before == after:
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(after), info.Mode().Perm())
}

func readMarkdown(path string) (string, error) {
	if !outline.IsMarkdown(path) {
		return "", fmt.Errorf("%s: only Markdown files can be edited", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// lineOffset returns the offset of the start of 1-based line n.
func lineOffset(doc string, n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("line must be >= 1, got %d", n)
	}
	off := 0
	for i := 1; i < n; i++ {
		next := strings.IndexByte(doc[off:], '\n')
		if next < 0 {
			return 0, fmt.Errorf("line %d is past the end of the document", n)
		}
		off += next + 1
	}
	return off, nil
}

func newInsertCommand(a *app) *cobra.Command {
	var (
		out  output
		line int
	)
	cmd := &cobra.Command{
		Use:   "insert <file>",
		Short: "Insert a fresh TOC block before the given line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			doc, err := readMarkdown(path)
			if err != nil {
				return err
			}
			off, err := lineOffset(doc, line)
			if err != nil {
				return err
			}
			after, err := a.editor().Insert(doc, off)
			if err != nil {
				return err
			}
			return out.write(cmd, path, doc, after)
		},
	}
	cmd.Flags().IntVar(&line, "line", 1, "Line to insert the TOC before")
	out.register(cmd)
	return cmd
}

func newRefreshCommand(a *app) *cobra.Command {
	var (
		insert  bool
		diff    bool
		workers int
	)
	cmd := &cobra.Command{
		Use:   "refresh <path>...",
		Short: "Regenerate existing TOC blocks in files or directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var paths []string
			for _, arg := range args {
				found, err := batch.Collect(arg)
				if err != nil {
					return err
				}
				paths = append(paths, found...)
			}
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.WorkerCount
			}

			runner := batch.NewRunner(a.editor(), batch.Options{
				Workers: workers,
				Insert:  insert,
				DryRun:  diff,
			}, a.log)
			results, err := runner.Run(cmd.Context(), paths)
			if err != nil {
				return err
			}

			failed := 0
			for _, res := range results {
				switch {
				case res.Status == batch.StatusFailed:
					failed++
				case res.Diff != "":
					fmt.Fprint(cmd.OutOrStdout(), res.Diff)
				default:
					a.log.Debug("refresh", "path", res.Path, "status", res.Status)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&insert, "insert", "i", false, "Insert a TOC at the top of files that have none")
	cmd.Flags().BoolVar(&diff, "diff", false, "Print unified diffs instead of writing files")
	cmd.Flags().IntVar(&workers, "workers", 0, "Files processed concurrently (default $WORKER_COUNT)")
	return cmd
}

func newDeleteCommand(a *app) *cobra.Command {
	var out output
	cmd := &cobra.Command{
		Use:   "delete <file>",
		Short: "Remove the TOC block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			doc, err := readMarkdown(path)
			if err != nil {
				return err
			}
			after, ok := a.editor().Delete(doc)
			if !ok {
				a.log.Info("no toc found", "path", path)
				return nil
			}
			return out.write(cmd, path, doc, after)
		},
	}
	out.register(cmd)
	return cmd
}

func newFollowCommand(a *app) *cobra.Command {
	var (
		line  int
		entry string
	)
	cmd := &cobra.Command{
		Use:   "follow <file>",
		Short: "Print file:line of the heading a TOC entry points at",
		Long: `Resolve a TOC entry to its heading. The entry is either the text of
--entry (a rendered entry line or a raw "#fragment"), or the line of the file
given by --line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			doc, err := readMarkdown(path)
			if err != nil {
				return err
			}

			ed := a.editor()
			var off int
			switch {
			case entry != "":
				off, err = ed.Follow(doc, entry)
			case line > 0:
				start, lerr := lineOffset(doc, line)
				if lerr != nil {
					return lerr
				}
				off, err = ed.FollowAt(doc, start)
			default:
				return errors.New("one of --line or --entry is required")
			}
			if err != nil {
				return fmt.Errorf("no target: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s:%d\n", path, editor.LineOf(doc, off))
			return nil
		},
	}
	cmd.Flags().IntVar(&line, "line", 0, "Line of the TOC entry")
	cmd.Flags().StringVar(&entry, "entry", "", "TOC entry text or #fragment")
	return cmd
}
