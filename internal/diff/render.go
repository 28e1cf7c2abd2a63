package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/diffreq/internal/types"
)

// RuleWidth is the width of the rule printed between hunks
const RuleWidth = 80

// Renderer formats rendered rows and the rule between hunks. Both results
// include their trailing newline.
type Renderer interface {
	Line(l Line) string
	Rule() string
}

// Text diffs a against b and renders every hunk. Identical inputs render "".
func Text(a, b string, r Renderer) string {
	edits := Lines(a, b)
	if !HasChanges(edits) {
		return ""
	}
	var sb strings.Builder
	// strings.Builder never fails
	_ = Write(&sb, Group(edits, DefaultContext), r)
	return sb.String()
}

// Write renders hunks to w, separating them with r.Rule()
func Write(w io.Writer, hunks [][]Edit, r Renderer) error {
	for i, hunk := range hunks {
		if i > 0 {
			if _, err := io.WriteString(w, r.Rule()); err != nil {
				return fmt.Errorf("%w: %w", types.ErrDiffRender, err)
			}
		}
		for _, line := range hunkLines(hunk) {
			if _, err := io.WriteString(w, r.Line(line)); err != nil {
				return fmt.Errorf("%w: %w", types.ErrDiffRender, err)
			}
		}
	}
	return nil
}

// Gutter renders the line number columns: old and new numbers left-aligned
// in four columns each, blank when absent, followed by " |".
func Gutter(l Line) string {
	return lineNumber(l.Old) + lineNumber(l.New) + " |"
}

func lineNumber(n int) string {
	if n <= 0 {
		return "    "
	}
	return fmt.Sprintf("%-4d", n)
}

// Plain marks emphasized spans with [-...-] on deleted lines and {+...+} on
// inserted lines
type Plain struct{}

func (Plain) Line(l Line) string {
	var b strings.Builder
	b.WriteString(Gutter(l))
	b.WriteString(l.Tag.Sign())
	for _, s := range l.Spans {
		switch {
		case s.Emphasized && l.Tag == Delete:
			b.WriteString("[-" + s.Text + "-]")
		case s.Emphasized && l.Tag == Insert:
			b.WriteString("{+" + s.Text + "+}")
		default:
			b.WriteString(s.Text)
		}
	}
	b.WriteByte('\n')
	return b.String()
}

func (Plain) Rule() string {
	return strings.Repeat("-", RuleWidth) + "\n"
}

// NoMarks prints line content without any emphasis markers
type NoMarks struct{}

func (NoMarks) Line(l Line) string {
	return Gutter(l) + l.Tag.Sign() + l.Text() + "\n"
}

func (NoMarks) Rule() string {
	return strings.Repeat("-", RuleWidth) + "\n"
}

// Terminal colors deleted lines red and inserted lines green, underlines
// emphasized spans and dims the gutter
type Terminal struct {
	gutter     lipgloss.Style
	rule       lipgloss.Style
	delete     lipgloss.Style
	insert     lipgloss.Style
	deleteEmph lipgloss.Style
	insertEmph lipgloss.Style
}

// NewTerminal builds a Terminal renderer. A nil renderer uses lipgloss'
// default, which detects the color support of stdout.
func NewTerminal(r *lipgloss.Renderer) *Terminal {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	red := lipgloss.Color("1")
	green := lipgloss.Color("2")
	return &Terminal{
		gutter:     r.NewStyle().Faint(true),
		rule:       r.NewStyle().Faint(true),
		delete:     r.NewStyle().Foreground(red),
		insert:     r.NewStyle().Foreground(green),
		deleteEmph: r.NewStyle().Foreground(red).Underline(true),
		insertEmph: r.NewStyle().Foreground(green).Underline(true),
	}
}

func (t *Terminal) Line(l Line) string {
	plain, emph := lipgloss.NewStyle(), lipgloss.NewStyle()
	switch l.Tag {
	case Delete:
		plain, emph = t.delete, t.deleteEmph
	case Insert:
		plain, emph = t.insert, t.insertEmph
	}

	var b strings.Builder
	b.WriteString(t.gutter.Render(Gutter(l)))
	b.WriteString(plain.Render(l.Tag.Sign()))
	for _, s := range l.Spans {
		if s.Emphasized {
			b.WriteString(emph.Render(s.Text))
		} else {
			b.WriteString(plain.Render(s.Text))
		}
	}
	b.WriteByte('\n')
	return b.String()
}

func (t *Terminal) Rule() string {
	return t.rule.Render(strings.Repeat("-", RuleWidth)) + "\n"
}
