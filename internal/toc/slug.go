package toc

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Slug converts a heading title into its anchor fragment, GitHub style:
// trimmed, lower-cased, punctuation and symbols removed (hyphen and
// underscore kept), and each whitespace run replaced by a single hyphen.
func Slug(title string) string {
	// A Caser is stateful, so each call gets its own.
	lower := cases.Lower(language.Und).String(strings.TrimSpace(title))

	var b strings.Builder
	b.Grow(len(lower))
	inSpace := false
	for _, r := range lower {
		switch {
		case unicode.IsSpace(r):
			if !inSpace {
				b.WriteByte('-')
				inSpace = true
			}
			continue
		case r == '-' || r == '_':
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			// Removing a character must not split a whitespace run.
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// Anchor returns the fragment for the n-th occurrence (0-based) of title.
func Anchor(title string, n int) string {
	s := Slug(title)
	if n > 0 {
		s += "-" + strconv.Itoa(n)
	}
	return s
}

// Link renders title as a Markdown link to its anchor.
func Link(title string, n int) string {
	return "[" + title + "](#" + Anchor(title, n) + ")"
}
