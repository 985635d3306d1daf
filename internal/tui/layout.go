package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane pads or cuts s to exactly width x height cells. height <= 0 keeps the line count.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i, ln := range lines {
		w := xansi.StringWidth(ln)
		if w > width {
			ln = truncateText(ln, width)
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

// truncateText cuts s to maxW cells, marking the cut with an ellipsis.
func truncateText(s string, maxW int) string {
	switch {
	case maxW <= 0:
		return ""
	case xansi.StringWidth(s) <= maxW:
		return s
	case maxW == 1:
		return xansi.Cut(s, 0, 1)
	default:
		return xansi.Cut(s, 0, maxW-1) + "…"
	}
}

// wrapText word-wraps plain text to maxW cells; words wider than a line are hard-cut.
func wrapText(s string, maxW int) []string {
	if maxW <= 0 {
		return []string{""}
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		cur := ""
		curW := 0
		for _, w := range strings.Fields(para) {
			wordW := xansi.StringWidth(w)
			if cur != "" && curW+1+wordW <= maxW {
				cur += " " + w
				curW += 1 + wordW
				continue
			}
			if cur != "" {
				lines = append(lines, cur)
			}
			for wordW > maxW {
				lines = append(lines, xansi.Cut(w, 0, maxW))
				w = xansi.Cut(w, maxW, wordW)
				wordW = xansi.StringWidth(w)
			}
			cur, curW = w, wordW
		}
		lines = append(lines, cur)
	}
	return lines
}
