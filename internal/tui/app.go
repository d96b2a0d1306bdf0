package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vitaminmoo/m18-tool/internal/config"
)

// Run starts the TUI application. The client opened inside is closed, and
// its line idled, on exit.
func Run(opts Options) error {
	defer quietLogs()()

	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	final, err := p.Run()
	if m, ok := final.(Model); ok && m.client != nil {
		m.client.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		return err
	}
	return nil
}

// PickPort shows the port list and returns the chosen port, or "" if the
// user quit without choosing.
func PickPort() (string, error) {
	p := tea.NewProgram(NewModel(Options{PickOnly: true}))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	return final.(Model).Picked(), nil
}

// quietLogs keeps log lines off the alternate screen. With -v they go to a
// file in the temp dir instead. The returned func restores the logger.
func quietLogs() func() {
	prev := log.Logger
	restore := func() { log.Logger = prev }

	if !config.Verbose {
		log.Logger = zerolog.Nop()
		return restore
	}
	path := filepath.Join(os.TempDir(), "m18-tui.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Logger = zerolog.Nop()
		return restore
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	return func() {
		restore()
		f.Close()
	}
}
