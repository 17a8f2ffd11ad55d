package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/image-interop/decode"
	"github.com/wippyai/image-interop/pixbuf"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateBrowse modelState = iota
	stateFilter
)

type interactiveModel struct {
	err      error
	dec      *decode.Decoder
	buf      *pixbuf.Buffer
	filter   textinput.Model
	paths    []string
	visible  []string
	current  string
	info     decode.Info
	selected int
	width    int
	height   int
	state    modelState
}

type loadedMsg struct {
	err  error
	buf  *pixbuf.Buffer
	path string
	info decode.Info
}

func newInteractiveModel(dec *decode.Decoder, paths []string) *interactiveModel {
	ti := textinput.New()
	ti.Prompt = "filter: "
	ti.Placeholder = "name"
	ti.Width = 40
	return &interactiveModel{
		dec:     dec,
		paths:   paths,
		visible: paths,
		filter:  ti,
		width:   80,
		height:  24,
		state:   stateBrowse,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadSelected()
}

func (m *interactiveModel) loadSelected() tea.Cmd {
	if len(m.visible) == 0 {
		return nil
	}
	path := m.visible[m.selected]
	dec := m.dec
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return loadedMsg{path: path, err: err}
		}
		info, err := dec.Info(data)
		if err != nil {
			return loadedMsg{path: path, err: err}
		}
		buf, err := dec.Decode(data)
		if err != nil {
			return loadedMsg{path: path, info: info, err: err}
		}
		return loadedMsg{path: path, info: info, buf: buf}
	}
}

func (m *interactiveModel) release() {
	if m.buf != nil {
		_ = m.buf.Release()
		m.buf = nil
	}
}

func (m *interactiveModel) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if q == "" {
		m.visible = m.paths
	} else {
		m.visible = nil
		for _, p := range m.paths {
			if strings.Contains(strings.ToLower(filepath.Base(p)), q) {
				m.visible = append(m.visible, p)
			}
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		if m.state == stateFilter {
			switch msg.String() {
			case "ctrl+c":
				m.release()
				return m, tea.Quit
			case "enter", "esc":
				m.state = stateBrowse
				m.filter.Blur()
				return m, m.loadSelected()
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.release()
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
				return m, m.loadSelected()
			}

		case "down", "j":
			if m.selected < len(m.visible)-1 {
				m.selected++
				return m, m.loadSelected()
			}

		case "/":
			m.state = stateFilter
			return m, m.filter.Focus()
		}

	case loadedMsg:
		if len(m.visible) == 0 || msg.path != m.visible[m.selected] {
			if msg.buf != nil {
				_ = msg.buf.Release()
			}
			return m, nil
		}
		m.release()
		m.current = msg.path
		m.info = msg.info
		m.buf = msg.buf
		m.err = msg.err
	}

	return m, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Image Inspector"))
	b.WriteString(fmt.Sprintf(" %d images\n\n", len(m.paths)))

	if m.state == stateFilter || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	if len(m.visible) == 0 {
		b.WriteString("No matching images.\n")
	}
	for i, p := range m.visible {
		line := "  " + filepath.Base(p)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + filepath.Base(p)))
		} else {
			b.WriteString(nameStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.current != "" {
		switch {
		case m.err != nil:
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n")
		case m.buf != nil:
			b.WriteString(infoStyle.Render(strings.TrimSpace(describe(m.current, m.info, m.buf))))
			b.WriteString("\n\n")
			b.WriteString(renderPreview(m.buf, m.width, 2*max(m.height-len(m.visible)-14, 4)))
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • / filter • q quit"))
	return b.String()
}

func runInteractive(dec *decode.Decoder, paths []string) error {
	p := tea.NewProgram(newInteractiveModel(dec, paths), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
