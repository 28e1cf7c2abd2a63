package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Span is a piece of a rendered line. Emphasized spans are the part of a
// replaced line that actually changed.
type Span struct {
	Text       string
	Emphasized bool
}

// Line is one rendered row of a hunk. Old and New are 1-based line numbers,
// 0 when the line does not exist on that side. Spans carry no line terminator.
type Line struct {
	Tag   Tag
	Old   int
	New   int
	Spans []Span
}

// Text joins the spans of the line
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// hunkLines turns a hunk into rendered rows. Inside each run of changes the
// deleted lines come first, then the inserted ones, and the i-th deleted line
// is diffed inline against the i-th inserted line.
func hunkLines(hunk []Edit) []Line {
	lines := make([]Line, 0, len(hunk))
	for i := 0; i < len(hunk); {
		if hunk[i].Tag == Equal {
			lines = append(lines, newLine(hunk[i], []Span{{Text: trimEOL(hunk[i].Line)}}))
			i++
			continue
		}

		var deletes, inserts []Edit
		for ; i < len(hunk) && hunk[i].Tag != Equal; i++ {
			if hunk[i].Tag == Delete {
				deletes = append(deletes, hunk[i])
			} else {
				inserts = append(inserts, hunk[i])
			}
		}

		delSpans := make([][]Span, len(deletes))
		insSpans := make([][]Span, len(inserts))
		for k := range deletes {
			if k < len(inserts) {
				delSpans[k], insSpans[k] = inlineSpans(trimEOL(deletes[k].Line), trimEOL(inserts[k].Line))
			} else {
				delSpans[k] = []Span{{Text: trimEOL(deletes[k].Line)}}
			}
		}
		for k := len(deletes); k < len(inserts); k++ {
			insSpans[k] = []Span{{Text: trimEOL(inserts[k].Line)}}
		}

		for k, e := range deletes {
			lines = append(lines, newLine(e, delSpans[k]))
		}
		for k, e := range inserts {
			lines = append(lines, newLine(e, insSpans[k]))
		}
	}
	return lines
}

func newLine(e Edit, spans []Span) Line {
	return Line{Tag: e.Tag, Old: e.Old + 1, New: e.New + 1, Spans: spans}
}

// inlineSpans diffs a replaced line against its replacement
func inlineSpans(oldText, newText string) (oldSpans, newSpans []Span) {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(oldText, newText, false))

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldSpans = appendSpan(oldSpans, d.Text, false)
			newSpans = appendSpan(newSpans, d.Text, false)
		case diffmatchpatch.DiffDelete:
			oldSpans = appendSpan(oldSpans, d.Text, true)
		case diffmatchpatch.DiffInsert:
			newSpans = appendSpan(newSpans, d.Text, true)
		}
	}
	return oldSpans, newSpans
}

// appendSpan merges adjacent spans with the same emphasis
func appendSpan(spans []Span, text string, emphasized bool) []Span {
	if text == "" {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].Emphasized == emphasized {
		spans[n-1].Text += text
		return spans
	}
	return append(spans, Span{Text: text, Emphasized: emphasized})
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
