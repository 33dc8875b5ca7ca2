package toc

import "strings"

// Render produces the TOC block:
//
//	{StartMarker}
//
//	{TitleLine}
//
//	{entry lines}
//
//	{EndMarker}
//
// An empty marker still occupies its line so Locate sees the same shape
// every time.
func Render(entries []Disambiguated, cfg RenderConfig) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if cfg.MaxDepth > 0 && e.Depth >= cfg.MaxDepth {
			continue
		}
		lines = append(lines, ItemLine(e, cfg))
	}

	var b strings.Builder
	b.WriteString(cfg.StartMarker)
	b.WriteString("\n\n")
	b.WriteString(cfg.TitleLine)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")
	b.WriteString(cfg.EndMarker)
	b.WriteString("\n")
	return b.String()
}

// ItemLine renders a single entry.
func ItemLine(e Disambiguated, cfg RenderConfig) string {
	unit := max(cfg.IndentUnit, 0)

	var b strings.Builder
	if cfg.QuoteLines {
		b.WriteString(quotePrefix)
	}
	b.WriteString(strings.Repeat(" ", e.Depth*unit))
	b.WriteString(cfg.ListMarker)
	b.WriteByte(' ')
	b.WriteString(Link(e.Title, e.Occurrence))
	return b.String()
}
