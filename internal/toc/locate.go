package toc

// Locate finds the TOC block previously written into doc.
//
// The block starts at the first line equal to cfg.StartMarker, or to
// cfg.TitleLine when there is no start marker. With an end marker the block
// runs through the first later line equal to it, terminator included; a
// missing end marker means the block is malformed and nothing is reported.
// Without an end marker the block extends over blank lines and entry lines
// and keeps as many trailing blank lines as Render emits, so that
// doc[:Start] + Render(...) + doc[End:] round-trips.
func Locate(doc string, cfg RenderConfig) (Bounds, bool) {
	anchor := cfg.StartMarker
	onTitle := false
	if anchor == "" {
		anchor = cfg.TitleLine
		onTitle = true
	}
	if anchor == "" {
		return Bounds{}, false
	}

	lines := splitLines(doc)
	first := -1
	for i, l := range lines {
		if l.text == anchor {
			first = i
			break
		}
	}
	if first < 0 {
		return Bounds{}, false
	}

	// The empty start marker and the blank line after it are part of the block.
	startIdx := first
	if onTitle {
		for k := 0; k < 2 && startIdx > 0 && isBlank(lines[startIdx-1].text); k++ {
			startIdx--
		}
	}
	start := lines[startIdx].start

	if cfg.EndMarker != "" {
		for _, l := range lines[first+1:] {
			if l.text == cfg.EndMarker {
				return Bounds{Start: start, End: l.next}, true
			}
		}
		return Bounds{}, false
	}

	last, items := first, 0
scan:
	for i := first + 1; i < len(lines); i++ {
		text := lines[i].text
		switch {
		case isBlank(text):
		case isItemLine(text, cfg):
			last = i
			items++
		case !onTitle && items == 0 && text == cfg.TitleLine:
			last = i
		default:
			break scan
		}
	}

	end := lines[last].next
	for k, i := 0, last+1; k < trailingBlanks(cfg, lines[last].text, items); k, i = k+1, i+1 {
		if i >= len(lines) || !isBlank(lines[i].text) {
			break
		}
		end = lines[i].next
	}
	return Bounds{Start: start, End: end}, true
}

// trailingBlanks is the number of blank lines Render writes after the last
// non-blank line of a block that has no end marker.
func trailingBlanks(cfg RenderConfig, lastText string, items int) int {
	switch {
	case items > 0:
		// separator, empty end marker
		return 2
	case lastText == cfg.TitleLine:
		// separator, empty body, separator, empty end marker
		return 4
	default:
		// separator and empty title before the above
		return 6
	}
}
