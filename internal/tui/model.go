package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitaminmoo/m18-tool/internal/m18"
	"github.com/vitaminmoo/m18-tool/internal/store"
	"github.com/vitaminmoo/m18-tool/internal/uart"
)

// View represents the current screen.
type View int

const (
	ViewPorts View = iota
	ViewMenu
	ViewReport
	ViewSimulate
	ViewStore
	ViewStoreDetail
)

// MenuItem represents an action on the main menu.
type MenuItem struct {
	Title       string
	Description string
	View        View
	Action      func(m *Model) tea.Cmd
}

// Options configures the TUI.
type Options struct {
	// Port is opened immediately when set; otherwise the port list is shown.
	Port          string
	ClientOptions []m18.Option
	StoreDir      string
	// SimulateDuration bounds the charger simulation started from the menu.
	SimulateDuration time.Duration
	// PickOnly quits as soon as a port is chosen.
	PickOnly bool
}

type opener func(port string, opts ...m18.Option) (*m18.Client, error)

// Model is the main TUI model.
type Model struct {
	opts Options
	open opener

	view          View
	cursor        int
	cursorHistory map[View]int

	ports    []uart.PortInfo
	scanning bool
	port     string
	client   *m18.Client
	picked   string

	menuItems []MenuItem
	busy      string

	reportTitle string
	viewport    viewport.Model

	storeEntries []store.Listing
	storeLoading bool
	detail       *store.Metadata

	simCancel context.CancelFunc
	simStart  time.Time
	progress  ProgressState

	width  int
	height int

	errorMsg  string
	statusMsg string

	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	styles  Styles
}

// NewModel creates the initial model.
func NewModel(opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		opts:          opts,
		open:          m18.Open,
		view:          ViewPorts,
		cursorHistory: make(map[View]int),
		viewport:      viewport.New(80, 20),
		progress:      NewProgressState(),
		keys:          DefaultKeyMap(),
		help:          help.New(),
		spinner:       s,
		styles:        DefaultStyles(),
	}
	m.menuItems = []MenuItem{
		{Title: "Health report", Description: "Identity, state and usage history", View: ViewReport, Action: (*Model).startHealth},
		{Title: "Read registers", Description: "Every known register, labelled", View: ViewReport, Action: (*Model).startReadAll},
		{Title: "Dump memory", Description: "Read all regions and save to the store", View: ViewReport, Action: (*Model).startDump},
		{Title: "Simulate charger", Description: "Keep the pack in charge mode", View: ViewSimulate, Action: (*Model).startSimulate},
		{Title: "Stored dumps", Description: "Browse dumps saved locally", View: ViewStore, Action: (*Model).loadStore},
	}
	return m
}

// Init starts the spinner and either opens the configured port or scans
// for ports.
func (m Model) Init() tea.Cmd {
	if m.opts.Port != "" && !m.opts.PickOnly {
		return tea.Batch(m.spinner.Tick, m.connectCmd(m.opts.Port))
	}
	return tea.Batch(m.spinner.Tick, scanPortsCmd())
}

// Picked returns the port chosen in PickOnly mode.
func (m Model) Picked() string {
	return m.picked
}

// Client returns the open client, if any.
func (m Model) Client() *m18.Client {
	return m.client
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = max(msg.Width-6, 20)
		m.viewport.Height = max(msg.Height-8, 5)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case portsMsg:
		m.scanning = false
		if msg.err != nil {
			m.errorMsg = msg.err.Error()
			return m, nil
		}
		m.ports = msg.ports
		m.cursor = min(m.cursor, max(len(m.ports)-1, 0))
		if len(m.ports) == 0 {
			m.statusMsg = "No serial ports found"
		} else {
			m.statusMsg = ""
		}
		return m, nil

	case connectedMsg:
		m.busy = ""
		if msg.err != nil {
			m.errorMsg = "Failed to open " + msg.port + ": " + msg.err.Error()
			m.view = ViewPorts
			return m, scanPortsCmd()
		}
		if m.client != nil {
			m.client.Close()
		}
		m.client = msg.client
		m.port = msg.port
		m.errorMsg = ""
		m.statusMsg = "Opened " + msg.port
		m.view = ViewMenu
		m.cursor = m.cursorHistory[ViewMenu]
		return m, nil

	case outputMsg:
		m.busy = ""
		m.reportTitle = msg.title
		text := msg.text
		if msg.err != nil {
			m.errorMsg = msg.err.Error()
			if m18.IsConnectivity(msg.err) {
				text += "\n" + wiringHelp
			}
		} else {
			m.errorMsg = ""
		}
		m.viewport.SetContent(strings.TrimRight(text, "\n"))
		m.viewport.GotoTop()
		return m, nil

	case storeListMsg:
		m.storeLoading = false
		if msg.err != nil {
			m.errorMsg = msg.err.Error()
			return m, nil
		}
		m.storeEntries = msg.entries
		m.cursor = min(m.cursor, max(len(m.storeEntries)-1, 0))
		return m, nil

	case storeDetailMsg:
		if msg.err != nil {
			m.errorMsg = msg.err.Error()
			m.view = ViewStore
			return m, nil
		}
		m.detail = msg.meta
		m.viewport.SetContent(m.renderDetail(msg.meta))
		m.viewport.GotoTop()
		return m, nil

	case simulateTickMsg:
		if !m.progress.IsActive() {
			return m, nil
		}
		elapsed := time.Time(msg).Sub(m.simStart)
		m.progress.Update(elapsed.Seconds()/m.opts.SimulateDuration.Seconds(),
			"Charging for "+elapsed.Round(time.Second).String())
		return m, simulateTickCmd()

	case simulateDoneMsg:
		m.busy = ""
		m.simCancel = nil
		if msg.err != nil {
			m.progress.Cancel()
			m.errorMsg = msg.err.Error()
		} else {
			m.progress.Complete()
			m.statusMsg = strings.TrimSpace(msg.text)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.simCancel != nil {
			m.simCancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	// Nothing but quit interrupts a running pack operation.
	if m.busy != "" && m.view != ViewSimulate {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Left):
		return m.goBack()

	case key.Matches(msg, m.keys.Port):
		if m.opts.PickOnly || m.view == ViewSimulate {
			return m, nil
		}
		m.cursorHistory[m.view] = m.cursor
		m.view = ViewPorts
		m.cursor = 0
		m.scanning = true
		return m, scanPortsCmd()

	case key.Matches(msg, m.keys.Refresh):
		switch m.view {
		case ViewPorts:
			m.scanning = true
			return m, scanPortsCmd()
		case ViewStore:
			m.storeLoading = true
			return m, m.storeListCmd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.view == ViewReport || m.view == ViewStoreDetail {
			m.viewport.LineUp(1)
			return m, nil
		}
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.view == ViewReport || m.view == ViewStoreDetail {
			m.viewport.LineDown(1)
			return m, nil
		}
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Right):
		return m.handleSelect()
	}

	if m.view == ViewReport || m.view == ViewStoreDetail {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) listLen() int {
	switch m.view {
	case ViewPorts:
		return len(m.ports)
	case ViewMenu:
		return len(m.menuItems)
	case ViewStore:
		return len(m.storeEntries)
	}
	return 0
}

func (m Model) handleSelect() (tea.Model, tea.Cmd) {
	m.errorMsg = ""
	switch m.view {
	case ViewPorts:
		if m.cursor >= len(m.ports) {
			return m, nil
		}
		port := m.ports[m.cursor].Name
		if m.opts.PickOnly {
			m.picked = port
			return m, tea.Quit
		}
		m.busy = "Opening " + port
		return m, m.connectCmd(port)

	case ViewMenu:
		if m.cursor >= len(m.menuItems) {
			return m, nil
		}
		item := m.menuItems[m.cursor]
		m.cursorHistory[ViewMenu] = m.cursor
		m.view = item.View
		m.cursor = 0
		cmd := item.Action(&m)
		return m, cmd

	case ViewStore:
		if m.cursor >= len(m.storeEntries) {
			return m, nil
		}
		m.cursorHistory[ViewStore] = m.cursor
		m.view = ViewStoreDetail
		m.detail = nil
		m.viewport.SetContent("")
		return m, m.storeDetailCmd(m.storeEntries[m.cursor].Hash)
	}
	return m, nil
}

func (m Model) goBack() (tea.Model, tea.Cmd) {
	m.errorMsg = ""
	switch m.view {
	case ViewSimulate:
		if m.simCancel != nil {
			m.simCancel()
			return m, nil
		}
		m.view = ViewMenu
	case ViewReport, ViewStore:
		m.view = ViewMenu
	case ViewStoreDetail:
		m.view = ViewStore
	case ViewPorts:
		if m.client == nil {
			return m, nil
		}
		m.view = ViewMenu
	default:
		return m, nil
	}
	m.cursor = m.cursorHistory[m.view]
	return m, nil
}

func (m *Model) startHealth() tea.Cmd {
	m.busy = "Reading health registers"
	return healthCmd(m.client, m.port, m.opts.StoreDir)
}

func (m *Model) startReadAll() tea.Cmd {
	m.busy = "Reading registers"
	return readAllCmd(m.client)
}

func (m *Model) startDump() tea.Cmd {
	m.busy = "Dumping memory"
	return dumpCmd(m.client, m.port, m.opts.StoreDir)
}

func (m *Model) startSimulate() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.simCancel = cancel
	m.simStart = time.Now()
	m.busy = "Simulating charger"
	m.statusMsg = ""
	m.progress.Start("Starting charge")
	return tea.Batch(simulateCmd(ctx, m.client, m.opts.SimulateDuration), simulateTickCmd())
}

func (m *Model) loadStore() tea.Cmd {
	m.storeLoading = true
	return m.storeListCmd()
}
