package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/webshell/internal/shell"
)

const refreshInterval = 2 * time.Second

// windowItem implements list.Item for one live window.
type windowItem struct {
	info shell.WindowInfo
}

func (i windowItem) Title() string {
	return fmt.Sprintf("#%d  %s", i.info.ID, i.info.Title)
}

func (i windowItem) Description() string {
	if i.info.Created.IsZero() {
		return ""
	}
	return "opened " + i.info.Created.Format("15:04:05")
}

func (i windowItem) FilterValue() string { return i.info.Title }

// windowsMsg carries the result of a ListWindows round trip.
type windowsMsg struct {
	windows []shell.WindowInfo
	err     error
}

// statusMsg is sent after a control action completes.
type statusMsg struct {
	text string
}

type tickMsg struct{}

// model is the root bubbletea model for the TUI.
type model struct {
	client Client
	list   list.Model

	connected  bool
	statusText string

	// Rename form
	renaming bool
	renameID shell.WindowID
	form     *huh.Form

	width  int
	height int
}

func newModel(client Client) model {
	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Windows"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return model{client: client, list: l}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m model) refresh() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ws, err := client.ListWindows()
		return windowsMsg{windows: ws, err: err}
	}
}

// action runs f off the UI goroutine and reports the outcome as a statusMsg.
func action(done string, f func() error) tea.Cmd {
	return func() tea.Msg {
		if err := f(); err != nil {
			return statusMsg{text: "error: " + err.Error()}
		}
		return statusMsg{text: done}
	}
}

func (m model) selected() (shell.WindowInfo, bool) {
	item, ok := m.list.SelectedItem().(windowItem)
	if !ok {
		return shell.WindowInfo{}, false
	}
	return item.info, true
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case windowsMsg:
		if msg.err != nil {
			m.connected = false
			return m, m.list.SetItems(nil)
		}
		m.connected = true
		items := make([]list.Item, 0, len(msg.windows))
		for _, w := range msg.windows {
			items = append(items, windowItem{info: w})
		}
		return m, m.list.SetItems(items)

	case tickMsg:
		return m, tea.Batch(m.refresh(), tick())

	case statusMsg:
		m.statusText = msg.text
		return m, m.refresh()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.listHeight())
		return m, nil
	}

	if m.renaming {
		return m.updateRenaming(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		client := m.client
		switch km.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "n":
			return m, action("new window requested", client.NewWindow)

		case "d", "x":
			w, ok := m.selected()
			if !ok {
				return m, nil
			}
			return m, action(fmt.Sprintf("close requested for window %d", w.ID), func() error {
				return client.CloseWindow(w.ID)
			})

		case "r":
			w, ok := m.selected()
			if !ok {
				return m, nil
			}
			m.startRename(w)
			return m, m.form.Init()

		case "g":
			return m, m.refresh()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) startRename(w shell.WindowInfo) {
	m.renaming = true
	m.renameID = w.ID
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title(fmt.Sprintf("Title for window %d", w.ID)).
				Value(&w.Title),
		),
	)
}

func (m model) updateRenaming(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.renaming = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		id := m.renameID
		title := strings.TrimSpace(m.form.GetString("title"))
		m.renaming = false
		m.form = nil
		if title == "" {
			return m, nil
		}
		client := m.client
		return m, action(fmt.Sprintf("window %d renamed", id), func() error {
			return client.SetTitle(id, title)
		})
	case huh.StateAborted:
		m.renaming = false
		m.form = nil
		return m, nil
	}
	return m, cmd
}

// listHeight returns the rows left for the list after the status and help bars.
func (m model) listHeight() int {
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.connected, len(m.list.Items()), m.statusText, m.width)
	helpBar := renderHelpBar(m.renaming, m.width)

	var content string
	if m.renaming && m.form != nil {
		content = lipgloss.NewStyle().
			Width(m.width).
			Height(m.listHeight()).
			Padding(1, 2).
			Render(m.form.View())
	} else if !m.connected {
		content = renderPlaceholder("webshell is not running", m.width, m.listHeight())
	} else {
		content = m.list.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, statusBar, content, helpBar)
}
