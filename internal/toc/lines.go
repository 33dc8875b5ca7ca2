package toc

import "strings"

// line is one line of a document. text excludes the terminator and any
// trailing '\r'; next is the offset of the following line.
type line struct {
	start int
	next  int
	text  string
}

func splitLines(doc string) []line {
	var lines []line
	for start := 0; start < len(doc); {
		end := strings.IndexByte(doc[start:], '\n')
		next := len(doc)
		if end < 0 {
			end = len(doc)
		} else {
			end += start
			next = end + 1
		}
		lines = append(lines, line{
			start: start,
			next:  next,
			text:  strings.TrimSuffix(doc[start:end], "\r"),
		})
		start = next
	}
	return lines
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
