package review

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	fenceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

var fenceRe = regexp.MustCompile("```[^\n]*")

// Terminal is the bubbletea-backed Prompter. When editor is set, Edit opens it on a
// temporary file instead of the built-in text area.
type Terminal struct {
	in     io.Reader
	out    io.Writer
	editor string
}

func NewTerminal(in io.Reader, out io.Writer, editor string) *Terminal {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Terminal{in: in, out: out, editor: strings.TrimSpace(editor)}
}

func (t *Terminal) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(t.in), tea.WithOutput(t.out))
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return final, nil
}

func (t *Terminal) Choose(ctx context.Context, message string, choices []Choice) (string, error) {
	final, err := t.run(ctx, newChooseModel(message, choices))
	if err != nil {
		return "", err
	}
	m := final.(chooseModel)
	if m.aborted {
		return "", ErrAborted
	}
	return m.chosen, nil
}

func (t *Terminal) Order(ctx context.Context, message string, items []string) ([]int, error) {
	final, err := t.run(ctx, newOrderModel(message, items))
	if err != nil {
		return nil, err
	}
	m := final.(orderModel)
	if m.aborted {
		return nil, ErrAborted
	}
	return m.picked, nil
}

func (t *Terminal) Edit(ctx context.Context, message, seed string) (string, error) {
	if t.editor != "" {
		return t.editExternal(ctx, seed)
	}
	final, err := t.run(ctx, newEditModel(message, seed))
	if err != nil {
		return "", err
	}
	m := final.(editModel)
	if m.aborted {
		return "", ErrAborted
	}
	return m.result, nil
}

// editExternal round-trips seed through $EDITOR on a temporary .md file.
func (t *Terminal) editExternal(ctx context.Context, seed string) (string, error) {
	f, err := os.CreateTemp("", "readme-section-*.md")
	if err != nil {
		return "", fmt.Errorf("editor: create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)
	if _, err := f.WriteString(seed); err != nil {
		f.Close()
		return "", fmt.Errorf("editor: write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("editor: close temp file: %w", err)
	}

	args := strings.Fields(t.editor)
	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %s: %w", args[0], err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("editor: read temp file: %w", err)
	}
	return string(data), nil
}

func (t *Terminal) Preview(title, body string) {
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, titleStyle.Render(title))
	fmt.Fprintln(t.out, boxStyle.Render(highlightFences(body)))
}

func (t *Terminal) Notify(message string) {
	fmt.Fprintln(t.out, noticeStyle.Render(message))
}

// highlightFences dims the section text and colours code fence lines.
func highlightFences(body string) string {
	var sb strings.Builder
	last := 0
	for _, loc := range fenceRe.FindAllStringIndex(body, -1) {
		sb.WriteString(bodyStyle.Render(body[last:loc[0]]))
		sb.WriteString(fenceStyle.Render(body[loc[0]:loc[1]]))
		last = loc[1]
	}
	sb.WriteString(bodyStyle.Render(body[last:]))
	return sb.String()
}

// choiceItem implements list.Item for single-choice prompts.
type choiceItem struct {
	choice Choice
}

func (i choiceItem) Title() string       { return i.choice.Label }
func (i choiceItem) Description() string { return "" }
func (i choiceItem) FilterValue() string { return i.choice.Label }

type chooseModel struct {
	list    list.Model
	chosen  string
	aborted bool
}

func newChooseModel(message string, choices []Choice) chooseModel {
	items := make([]list.Item, len(choices))
	for i, c := range choices {
		items[i] = choiceItem{choice: c}
	}
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	l := list.New(items, delegate, 72, len(choices)+6)
	l.Title = message
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	return chooseModel{list: l}
}

func (m chooseModel) Init() tea.Cmd { return nil }

func (m chooseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(choiceItem); ok {
				m.chosen = item.choice.Value
				return m, tea.Quit
			}
		case "ctrl+c", "esc", "q":
			m.aborted = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m chooseModel) View() string {
	if m.chosen != "" || m.aborted {
		return ""
	}
	return m.list.View()
}

// orderModel is a checkbox list that remembers the order in which items were ticked.
type orderModel struct {
	message string
	items   []string
	cursor  int
	picked  []int
	done    bool
	aborted bool
}

func newOrderModel(message string, items []string) orderModel {
	return orderModel{message: message, items: items}
}

func (m orderModel) Init() tea.Cmd { return nil }

func (m orderModel) position(idx int) int {
	for i, p := range m.picked {
		if p == idx {
			return i
		}
	}
	return -1
}

func (m orderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ":
		if len(m.items) == 0 {
			break
		}
		if pos := m.position(m.cursor); pos >= 0 {
			m.picked = append(m.picked[:pos:pos], m.picked[pos+1:]...)
		} else {
			m.picked = append(m.picked, m.cursor)
		}
	case "enter":
		m.done = true
		return m, tea.Quit
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m orderModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.message))
	sb.WriteString("\n")
	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		box := "[ ]"
		if pos := m.position(i); pos >= 0 {
			box = fmt.Sprintf("[%d]", pos+1)
		}
		sb.WriteString(fmt.Sprintf("%s%s %s\n", cursor, box, item))
	}
	sb.WriteString(hintStyle.Render("space: pick in new order · enter: confirm (nothing picked keeps the draft order)"))
	return sb.String()
}

// editModel is the built-in editor used when no $EDITOR is configured. The textarea
// normalizes tabs on input, so saving without changes hands back the original seed.
type editModel struct {
	message  string
	textarea textarea.Model
	seed     string
	loaded   string
	result   string
	done     bool
	aborted  bool
}

func newEditModel(message, seed string) editModel {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(80)
	ta.SetHeight(min(24, strings.Count(seed, "\n")+3))
	ta.SetValue(seed)
	ta.Focus()
	return editModel{message: message, textarea: ta, seed: seed, loaded: ta.Value()}
}

func (m editModel) Init() tea.Cmd { return textarea.Blink }

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+s":
			m.result = m.textarea.Value()
			if m.result == m.loaded {
				m.result = m.seed
			}
			m.done = true
			return m, tea.Quit
		case "esc":
			// Leaving without saving keeps the section as it was.
			m.result = m.seed
			m.done = true
			return m, tea.Quit
		case "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m editModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.message),
		m.textarea.View(),
		hintStyle.Render("ctrl+s: save · esc: keep original"),
	)
}

// AskSecret reads one masked line, used by the first-run credential setup.
func (t *Terminal) AskSecret(ctx context.Context, message string) (string, error) {
	final, err := t.run(ctx, newSecretModel(message))
	if err != nil {
		return "", err
	}
	m := final.(secretModel)
	if m.aborted {
		return "", ErrAborted
	}
	return m.input.Value(), nil
}

type secretModel struct {
	message string
	input   textinput.Model
	done    bool
	aborted bool
}

func newSecretModel(message string) secretModel {
	ti := textinput.New()
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Width = 60
	ti.Focus()
	return secretModel{message: message, input: ti}
}

func (m secretModel) Init() tea.Cmd { return textinput.Blink }

func (m secretModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m secretModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(m.message), m.input.View())
}

var _ Prompter = (*Terminal)(nil)

// IsAborted reports whether err came from the user quitting a prompt.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}
