package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/coltab/coltab/internal/logging"
	"github.com/coltab/coltab/internal/resource"
	"github.com/coltab/coltab/internal/sample"
	"github.com/coltab/coltab/internal/tui/keys"
	"github.com/coltab/coltab/internal/tui/table"
	"github.com/coltab/coltab/internal/width"
	"github.com/davecgh/go-spew/spew"
)

const statusHeight = 1

var (
	statusStyle = lipgloss.NewStyle().Padding(0, 1)
	widthsStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.AdaptiveColor{
		Light: "#909090",
		Dark:  "#626262",
	})
	errorStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("9"))
)

type modelOptions struct {
	users   []sample.User
	sizings map[string]width.Sizing
	styles  table.Styles[sample.User]
	limits  width.Limits
	logger  logging.Interface
	dump    io.Writer
}

type model struct {
	table   table.Model[sample.User]
	help    help.Model
	sizings map[string]width.Sizing

	// first column visibility; toggling it bumps the content version.
	showID  bool
	version uint64

	// latest reported widths and log message, rendered in the status line.
	widths table.WidthsChangedMsg
	info   string

	// dump receives every message when debugging.
	dump io.Writer

	width  int
	height int
}

func newModel(opts modelOptions) model {
	m := model{
		help:    help.New(),
		sizings: opts.sizings,
		showID:  true,
		dump:    opts.dump,
	}
	m.table = table.New(
		sample.Content(m.showID, m.sizings),
		opts.users,
		table.WithStyles(opts.styles),
		table.WithLimits[sample.User](opts.limits),
		table.WithLogger[sample.User](opts.logger),
	)
	return m
}

func (m model) Init() tea.Cmd {
	return m.table.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.dump != nil {
		spew.Fdump(m.dump, msg)
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.resizeTable()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Global.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Global.Help):
			// '?' toggles help
			m.help.ShowAll = !m.help.ShowAll
			return m, m.resizeTable()
		case key.Matches(msg, keys.Global.ToggleColumn):
			m.showID = !m.showID
			m.version++
			m.table.SetContent(m.version, sample.Content(m.showID, m.sizings))
			m.widths = table.WidthsChangedMsg{
				Keys:   m.table.Columns().Keys(),
				Widths: m.table.Widths(),
			}
			return m, nil
		}
	case table.WidthsChangedMsg:
		m.widths = msg
		return m, nil
	case resource.Event[logging.Message]:
		m.info = msg.Payload.String()
		return m, nil
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// resizeTable gives the table whatever height the footer leaves.
func (m *model) resizeTable() tea.Cmd {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(tea.WindowSizeMsg{
		Width:  m.width,
		Height: max(0, m.height-m.footerHeight()),
	})
	return cmd
}

func (m model) footerHeight() int {
	return statusHeight + lipgloss.Height(m.helpView())
}

func (m model) helpView() string {
	m.help.Width = m.width
	return m.help.View(helpKeys{table: table.DefaultKeyMap()})
}

func (m model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.table.View(),
		m.statusView(),
		m.helpView(),
	)
}

// statusView renders the latest log message on the left and the column
// widths on the right.
func (m model) statusView() string {
	widths := widthsStyle.Render(formatWidths(m.widths))
	left := statusStyle
	msg := m.info
	if err := m.table.Err(); err != nil {
		left = errorStyle
		msg = "Error: " + err.Error()
	}
	avail := m.width - lipgloss.Width(widths)
	if avail <= 0 {
		return widths
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		left.Inline(true).Width(avail).MaxWidth(avail).Render(msg),
		widths,
	)
}

func formatWidths(msg table.WidthsChangedMsg) string {
	parts := make([]string, 0, len(msg.Keys))
	for i, key := range msg.Keys {
		if i < len(msg.Widths) {
			parts = append(parts, fmt.Sprintf("%s=%.1f", key, msg.Widths[i]))
		}
	}
	return strings.Join(parts, " ")
}

// widthReport maps each column key to its width.
func (m model) widthReport() map[string]float64 {
	var (
		report = make(map[string]float64)
		widths = m.table.Widths()
	)
	for i, key := range m.table.Columns().Keys() {
		if i < len(widths) {
			report[key] = widths[i]
		}
	}
	return report
}

// helpKeys combines the table's bindings with the global bindings.
type helpKeys struct {
	table table.KeyMap
}

func (k helpKeys) ShortHelp() []key.Binding {
	return append(k.table.ShortHelp(), keys.KeyMapToSlice(keys.Global)...)
}

func (k helpKeys) FullHelp() [][]key.Binding {
	return append(k.table.FullHelp(), keys.KeyMapToSlice(keys.Global))
}
