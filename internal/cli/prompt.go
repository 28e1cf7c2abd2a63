package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1).MarginLeft(2)
)

// ErrCancelled is returned when the user aborts a prompt
var ErrCancelled = errors.New("selection cancelled")

// Prompter asks the user for values the flags did not provide
type Prompter interface {
	// Input asks for a single line of text
	Input(title, placeholder string, validate func(string) error) (string, error)
	// PickHeaders lets the user choose any number of header names
	PickHeaders(title string, names []string) ([]string, error)
}

// TerminalPrompter prompts on the controlling terminal
type TerminalPrompter struct{}

// Input runs a huh input field
func (TerminalPrompter) Input(title, placeholder string, validate func(string) error) (string, error) {
	var v string
	field := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&v)
	if validate != nil {
		field = field.Validate(validate)
	}
	if err := huh.NewForm(huh.NewGroup(field)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(v), nil
}

// PickHeaders shows a multi-select list of header names
func (TerminalPrompter) PickHeaders(title string, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	p := tea.NewProgram(newHeaderPicker(title, names))
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(headerPicker)
	if result.cancelled {
		return nil, ErrCancelled
	}
	return result.chosen(), nil
}

type headerItem string

func (i headerItem) FilterValue() string { return string(i) }

// headerPicker is a list where space toggles the current header and
// enter confirms the whole selection
type headerPicker struct {
	list      list.Model
	names     []string
	selected  map[string]bool
	done      bool
	cancelled bool
}

func newHeaderPicker(title string, names []string) headerPicker {
	const defaultWidth = 80
	const listHeight = 16

	selected := make(map[string]bool, len(names))
	items := make([]list.Item, 0, len(names))
	for _, name := range names {
		items = append(items, headerItem(name))
	}

	l := list.New(items, itemDelegate{selected: selected}, defaultWidth, listHeight)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return headerPicker{list: l, names: names, selected: selected}
}

func (m headerPicker) Init() tea.Cmd {
	return nil
}

func (m headerPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}
		// typed keys belong to the filter while it is open
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "q", "esc":
			m.cancelled = true
			return m, tea.Quit

		case " ", "x":
			if i, ok := m.list.SelectedItem().(headerItem); ok {
				m.selected[string(i)] = !m.selected[string(i)]
			}
			return m, nil

		case "a":
			all := len(m.chosen()) < len(m.names)
			for _, name := range m.names {
				m.selected[name] = all
			}
			return m, nil

		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m headerPicker) View() string {
	if m.done || m.cancelled {
		return ""
	}

	help := helpStyle.Render("↑/↓: navigate • space: toggle • a: all/none • /: filter • enter: confirm • q: cancel")
	return fmt.Sprintf("%s\n\n%s", m.list.View(), help)
}

// chosen returns the selected names in list order
func (m headerPicker) chosen() []string {
	var out []string
	for _, name := range m.names {
		if m.selected[name] {
			out = append(out, name)
		}
	}
	return out
}

// itemDelegate renders a header with its check mark
type itemDelegate struct {
	selected map[string]bool
}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(headerItem)
	if !ok {
		return
	}

	mark := "[ ]"
	if d.selected[string(i)] {
		mark = "[x]"
	}
	str := fmt.Sprintf("%s %s", mark, i)

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}
