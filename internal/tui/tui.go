package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/thecompernolles/citylist/internal/ctxutil"
	"github.com/thecompernolles/citylist/internal/state"
)

const (
	Title       = "City List App"
	Placeholder = "Search cities or states..."
	LoadingText = "Loading cities..."
)

var (
	BodyStyle   = lipgloss.NewStyle().Padding(1)
	FooterStyle = lipgloss.NewStyle().Align(lipgloss.Center)

	TextStyle       = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#4c4f69", Dark: "#cdd6f4"})
	SubtextStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#a6adc8"})
	AltTextStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5c5f77", Dark: "#bac2de"})
	AccentTextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#04a5e5", Dark: "#89dceb"})

	TitleStyle = AccentTextStyle.Bold(true)
)

// title, blank, search box, blank
const headerHeight = 4

type Tui struct {
	spinner spinner.Model
	search  textinput.Model
	list    list.Model
	width   *int
	height  *int

	ctx    context.Context
	output chan Msg
	state  state.AppState
}

// New creates the view. The single load result is read from output.
func New(ctx context.Context, output chan Msg) Tui {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))

	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.TextStyle = TextStyle
	ti.PlaceholderStyle = SubtextStyle
	ti.Focus()

	return Tui{
		spinner: s,
		search:  ti,
		list:    newCityList(0, 0),

		ctx:    ctx,
		output: output,
		state:  state.New(),
	}
}

// State returns the current application state.
func (m Tui) State() state.AppState {
	return m.state
}

func (m Tui) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		textinput.Blink,
		m.waitForLoad,
	)
}

func (m Tui) waitForLoad() tea.Msg {
	msg, ok := ctxutil.Next(m.ctx, m.output)
	if !ok {
		return nil
	}

	return msg
}

func (m Tui) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	cmds := []tea.Cmd{}

	switch msg := msg.(type) {

	case Msg:
		switch msg.Type {

		case MsgLoaded:
			m.state = m.state.Loaded(msg.Cities)

		case MsgFailed:
			m.state = m.state.Failed(msg.Text)
		}

		m.refreshList()

	case tea.KeyMsg:
		switch msg.String() {

		case "esc", "ctrl+c":
			return m, tea.Quit

		case "up", "down", "pgup", "pgdown":
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}

		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)

		// Only a changed term re-filters
		if term := m.search.Value(); term != m.state.Term {
			m.state = m.state.WithTerm(term)
			m.refreshList()
		}

	case tea.WindowSizeMsg:
		m.width = &msg.Width
		m.height = &msg.Height
		m.list.SetSize(msg.Width-2, max(msg.Height-headerHeight-3, 1))

	case spinner.TickMsg:
		// Stop ticking once the load has resolved
		if m.state.Load.Status == state.Loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	default:
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Tui) refreshList() {
	m.list.SetItems(toItems(m.state.Visible()))
	m.list.ResetSelected()
}

func (m Tui) View() string {
	header := TitleStyle.Render(Title) + "\n\n" + m.search.View() + "\n\n"

	switch m.state.Load.Status {

	case state.Loading:
		return m.render(renderParams{
			body: header + m.spinner.View() + " " + SubtextStyle.Render(LoadingText),
		})

	case state.Failed:
		return m.render(renderParams{
			body:   header + ErrTextStyle.Render(m.state.Load.Message),
			footer: AltTextStyle.Render("esc quit"),
		})

	default:
		count := fmt.Sprintf("%d/%d cities", len(m.list.Items()), len(m.state.Load.Cities))

		// No match leaves the list region empty
		body := header
		if len(m.list.Items()) > 0 {
			body += m.list.View()
		}

		return m.render(renderParams{
			body:   body,
			footer: AltTextStyle.Render(count + " • ↑/↓ move • esc quit"),
		})
	}
}

type renderParams struct {
	body   string
	footer string
}

func (m Tui) render(p renderParams) string {
	if m.width == nil || m.height == nil {
		return ""
	}

	bodyStyle := BodyStyle.Width(*m.width).Height(*m.height - 1)
	footerStyle := FooterStyle.Width(*m.width)

	return lipgloss.JoinVertical(lipgloss.Top, bodyStyle.Render(p.body), footerStyle.Render(p.footer))
}
