package toc

import (
	"errors"
	"strings"
)

const quotePrefix = "> "

// Item is a parsed entry line.
type Item struct {
	Level  int    // indentation divided by the indent unit
	Title  string // link text
	Anchor string // fragment without the leading '#'
	Quoted bool
}

// ParseItem parses one rendered entry line. The accepted grammar is
//
//	line   = [ "> " ] { " " } marker " " "[" title "](#" anchor ")" { ws }
//	marker = "-" | "*" | "+" | digits ( "." | ")" ) | cfg.ListMarker
//
// where title is everything up to the last "](#" on the line. The number of
// leading spaces (after the quote prefix) must be a multiple of
// cfg.IndentUnit, otherwise ErrInvalidIndentation is returned. Tab
// indentation is always invalid.
func ParseItem(line string, cfg RenderConfig) (Item, error) {
	var item Item
	s := strings.TrimRight(line, " \t\r\n")

	if rest, ok := strings.CutPrefix(s, quotePrefix); ok {
		item.Quoted = true
		s = rest
	}

	spaces := countPrefix(s, ' ')
	s = s[spaces:]
	tabbed := strings.HasPrefix(s, "\t")
	s = strings.TrimLeft(s, " \t")

	n := markerLen(s, cfg.ListMarker)
	if n == 0 || len(s) <= n || s[n] != ' ' {
		return Item{}, ErrNotTocItem
	}
	s = s[n+1:]

	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, ")") {
		return Item{}, ErrNotTocItem
	}
	sep := strings.LastIndex(s, "](#")
	if sep < 0 {
		return Item{}, ErrNotTocItem
	}
	item.Title = s[1:sep]
	item.Anchor = s[sep+3 : len(s)-1]
	if strings.ContainsAny(item.Anchor, " \t") {
		return Item{}, ErrNotTocItem
	}

	switch {
	case tabbed:
		return Item{}, ErrInvalidIndentation
	case spaces == 0:
		item.Level = 0
	case cfg.IndentUnit <= 0 || spaces%cfg.IndentUnit != 0:
		return Item{}, ErrInvalidIndentation
	default:
		item.Level = spaces / cfg.IndentUnit
	}
	return item, nil
}

// isItemLine reports whether line has the shape of an entry, whatever its
// indentation.
func isItemLine(line string, cfg RenderConfig) bool {
	_, err := ParseItem(line, cfg)
	return err == nil || errors.Is(err, ErrInvalidIndentation)
}

// markerLen returns the byte length of the list marker at the start of s,
// or 0 if s does not start with one.
func markerLen(s, custom string) int {
	if custom != "" && strings.HasPrefix(s, custom) {
		return len(custom)
	}
	if s == "" {
		return 0
	}
	switch s[0] {
	case '-', '*', '+':
		return 1
	}
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(s) && (s[digits] == '.' || s[digits] == ')') {
		return digits + 1
	}
	return 0
}

func countPrefix(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}
