package convert

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/dgallion1/doc2xhtml/internal/doctree"
	"golang.org/x/text/unicode/norm"
)

// Fractions of the font size used to infer boundaries between positioned runs.
const (
	lineTolerance      = 0.5  // baseline shift that starts a new line
	paragraphGap       = 2.0  // downward jump that starts a new paragraph
	wordGap            = 0.15 // horizontal gap that separates words
	duplicateTolerance = 0.15 // offset under which equal runs count as overdraw
)

// textHandler receives the callbacks a page's runs are turned into.
type textHandler interface {
	WriteText(text string) error
	WordSeparator() error
	LineSeparator() error
	StartParagraph() error
	EndParagraph() error
}

type boundary uint8

const (
	noBoundary boundary = iota
	wordBoundary
	lineBoundary
	paragraphBoundary
)

// streamRuns feeds one page of runs to h, applying the position policies and
// inferring separators between positioned runs.
func streamRuns(runs []doctree.TextRun, opts Options, h textHandler) error {
	if opts.SuppressDuplicateOverlappingText {
		runs = suppressOverlaps(runs)
	}
	if opts.SortByPosition {
		runs = sortByPosition(runs)
	}

	var prev doctree.TextRun
	havePrev := false
	for _, r := range runs {
		var err error
		switch r.Kind {
		case doctree.RunWordBreak:
			err = h.WordSeparator()
			havePrev = false
		case doctree.RunLineBreak:
			err = h.LineSeparator()
			havePrev = false
		case doctree.RunParagraphBreak:
			if err = h.EndParagraph(); err == nil {
				err = h.StartParagraph()
			}
			havePrev = false
		case doctree.RunText:
			if havePrev && r.Positioned() {
				switch between(prev, r) {
				case wordBoundary:
					err = h.WordSeparator()
				case lineBoundary:
					err = h.LineSeparator()
				case paragraphBoundary:
					if err = h.EndParagraph(); err == nil {
						err = h.StartParagraph()
					}
				}
				if err != nil {
					return err
				}
			}
			err = h.WriteText(normalizeText(r.Text))
			prev, havePrev = r, r.Positioned()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func between(prev, cur doctree.TextRun) boundary {
	size := max(prev.FontSize, cur.FontSize)
	dy := prev.Y - cur.Y
	if math.Abs(dy) > size*lineTolerance {
		if dy > size*paragraphGap {
			return paragraphBoundary
		}
		return lineBoundary
	}
	gap := cur.X - (prev.X + prev.Width)
	if gap > size*wordGap && !endsWithSpace(prev.Text) && !startsWithSpace(cur.Text) {
		return wordBoundary
	}
	return noBoundary
}

// suppressOverlaps drops positioned runs that repeat an earlier run at almost
// the same spot. Some producers fake bold text by drawing it twice.
func suppressOverlaps(runs []doctree.TextRun) []doctree.TextRun {
	seen := make(map[string][]doctree.TextRun)
	out := make([]doctree.TextRun, 0, len(runs))
	for _, r := range runs {
		if !r.Positioned() {
			out = append(out, r)
			continue
		}
		tol := r.FontSize * duplicateTolerance
		dup := false
		for _, s := range seen[r.Text] {
			if math.Abs(s.X-r.X) <= tol && math.Abs(s.Y-r.Y) <= tol {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen[r.Text] = append(seen[r.Text], r)
		out = append(out, r)
	}
	return out
}

// sortByPosition orders runs top to bottom, then left to right. Pages mixing
// positioned text with explicit separators keep their source order.
func sortByPosition(runs []doctree.TextRun) []doctree.TextRun {
	for _, r := range runs {
		if !r.Positioned() {
			return runs
		}
	}
	sorted := slices.Clone(runs)
	slices.SortStableFunc(sorted, func(a, b doctree.TextRun) int {
		return cmp.Compare(b.Y, a.Y)
	})

	// Bucket baselines into lines so the second sort is a total order.
	lines := make([]int, len(sorted))
	line, top := 0, 0.0
	for i, r := range sorted {
		if i == 0 {
			top = r.Y
		} else if top-r.Y > r.FontSize*lineTolerance {
			line++
			top = r.Y
		}
		lines[i] = line
	}

	idx := make([]int, len(sorted))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		if c := cmp.Compare(lines[a], lines[b]); c != 0 {
			return c
		}
		return cmp.Compare(sorted[a].X, sorted[b].X)
	})
	out := make([]doctree.TextRun, len(sorted))
	for i, j := range idx {
		out[i] = sorted[j]
	}
	return out
}

// normalizeText expands presentation forms such as the "fi" ligature.
func normalizeText(s string) string {
	for _, c := range s {
		if c >= 0xFB00 && c <= 0xFB4F {
			return norm.NFKC.String(s)
		}
	}
	return s
}

func endsWithSpace(s string) bool {
	return s != "" && unicode.IsSpace(rune(s[len(s)-1]))
}

func startsWithSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) == 0
}
