package tui

import (
	"bytes"
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitaminmoo/m18-tool/internal/commands"
	"github.com/vitaminmoo/m18-tool/internal/m18"
	"github.com/vitaminmoo/m18-tool/internal/registers"
	"github.com/vitaminmoo/m18-tool/internal/render"
	"github.com/vitaminmoo/m18-tool/internal/store"
	"github.com/vitaminmoo/m18-tool/internal/uart"
)

const wiringHelp = "Check the wiring: UART-TX → M18-J2, UART-RX → M18-J1, UART-GND → M18-GND"

// Messages for async operations

type portsMsg struct {
	ports []uart.PortInfo
	err   error
}

type connectedMsg struct {
	client *m18.Client
	port   string
	err    error
}

type outputMsg struct {
	title string
	text  string
	err   error
}

type storeListMsg struct {
	entries []store.Listing
	err     error
}

type storeDetailMsg struct {
	meta *store.Metadata
	err  error
}

type simulateTickMsg time.Time

type simulateDoneMsg struct {
	text string
	err  error
}

func scanPortsCmd() tea.Cmd {
	return func() tea.Msg {
		ports, err := uart.ListPorts()
		return portsMsg{ports: ports, err: err}
	}
}

func (m Model) connectCmd(port string) tea.Cmd {
	open, opts := m.open, m.opts.ClientOptions
	return func() tea.Msg {
		c, err := open(port, opts...)
		return connectedMsg{client: c, port: port, err: err}
	}
}

func healthCmd(c *m18.Client, port, storeDir string) tea.Cmd {
	return func() tea.Msg {
		var buf bytes.Buffer
		report, err := commands.Health(c, &buf, false)
		if err != nil {
			return outputMsg{title: "Health report", text: buf.String(), err: err}
		}
		img, err := c.ReadAllRaw()
		if err == nil && len(img) > 0 {
			buf.WriteString("\n")
			err = archive(&buf, c, img, port, storeDir, "health", report)
		}
		return outputMsg{title: "Health report", text: buf.String(), err: err}
	}
}

func readAllCmd(c *m18.Client) tea.Cmd {
	return func() tea.Msg {
		var buf bytes.Buffer
		err := commands.ReadRegisters(c, &buf, nil, render.Label, true)
		return outputMsg{title: "Registers", text: buf.String(), err: err}
	}
}

func dumpCmd(c *m18.Client, port, storeDir string) tea.Cmd {
	return func() tea.Msg {
		var buf bytes.Buffer
		img, err := commands.Dump(c, &buf)
		if err == nil {
			err = archive(&buf, c, img, port, storeDir, "dump", nil)
		}
		return outputMsg{title: "Memory dump", text: buf.String(), err: err}
	}
}

func archive(buf *bytes.Buffer, c *m18.Client, img registers.Image, port, storeDir, method string, report *m18.HealthReport) error {
	st, err := store.OpenDefault(storeDir)
	if err != nil {
		return err
	}
	src := store.Source{Port: port, Timestamp: time.Now(), Method: method}
	_, err = commands.Archive(st, buf, img, c.Tables(), src, report)
	return err
}

func simulateCmd(ctx context.Context, c *m18.Client, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		var buf bytes.Buffer
		err := commands.Simulate(ctx, c, &buf, d)
		return simulateDoneMsg{text: buf.String(), err: err}
	}
}

func simulateTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return simulateTickMsg(t)
	})
}

func (m Model) storeListCmd() tea.Cmd {
	dir := m.opts.StoreDir
	return func() tea.Msg {
		st, err := store.OpenDefault(dir)
		if err != nil {
			return storeListMsg{err: err}
		}
		entries, err := st.List()
		return storeListMsg{entries: entries, err: err}
	}
}

func (m Model) storeDetailCmd(hash string) tea.Cmd {
	dir := m.opts.StoreDir
	return func() tea.Msg {
		st, err := store.OpenDefault(dir)
		if err != nil {
			return storeDetailMsg{err: err}
		}
		meta, err := st.GetMetadata(hash)
		return storeDetailMsg{meta: meta, err: err}
	}
}
