package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/mdtoc/internal/config"
	"github.com/dgallion1/mdtoc/internal/editor"
	"github.com/spf13/cobra"
)

// app carries state shared by all subcommands.
type app struct {
	configPath string
	verbose    bool

	listMarker  string
	indentUnit  int
	quoteLines  bool
	startMarker string
	titleLine   string
	endMarker   string
	maxDepth    int

	cfg   config.Config
	level slog.Level
	log   *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "mdtoc",
		Short:         "Generate and maintain a table of contents in Markdown files",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file (default $MDTOC_CONFIG)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Verbose logging")
	pf.StringVar(&a.listMarker, "list-marker", "", "List marker for entries, e.g. - * 1.")
	pf.IntVar(&a.indentUnit, "indent", 0, "Spaces per nesting level")
	pf.BoolVar(&a.quoteLines, "quote", false, "Render entries as a block quote")
	pf.StringVar(&a.startMarker, "start-marker", "", "Line that opens the TOC block (empty to disable)")
	pf.StringVar(&a.titleLine, "title", "", "Title line of the TOC block")
	pf.StringVar(&a.endMarker, "end-marker", "", "Line that closes the TOC block (empty to disable)")
	pf.IntVar(&a.maxDepth, "max-depth", 0, "Deepest nesting level to list (0 for all)")

	root.AddCommand(
		newRenderCommand(a),
		newInsertCommand(a),
		newRefreshCommand(a),
		newDeleteCommand(a),
		newFollowCommand(a),
		newServeCommand(a),
	)
	return root
}

// setup loads configuration in increasing priority: defaults, YAML file,
// environment, flags.
func (a *app) setup(cmd *cobra.Command) error {
	a.level = logLevel(a.verbose)
	a.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: a.level}))

	path := a.configPath
	if path == "" {
		path = os.Getenv("MDTOC_CONFIG")
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("list-marker") {
		cfg.ListMarker = a.listMarker
	}
	if flags.Changed("indent") {
		cfg.IndentUnit = a.indentUnit
	}
	if flags.Changed("quote") {
		cfg.QuoteLines = a.quoteLines
	}
	if flags.Changed("start-marker") {
		cfg.StartMarker = a.startMarker
	}
	if flags.Changed("title") {
		cfg.TitleLine = a.titleLine
	}
	if flags.Changed("end-marker") {
		cfg.EndMarker = a.endMarker
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = a.maxDepth
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg
	return nil
}

func (a *app) editor() *editor.Editor {
	return editor.New(a.cfg.Render(), a.log)
}

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
