package render

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/vitaminmoo/m18-tool/internal/store"
	"github.com/vitaminmoo/m18-tool/internal/uart"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Border).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			return styles.Cell
		})
}

// Ports prints the serial devices found on the system.
func Ports(w io.Writer, ports []uart.PortInfo) error {
	if len(ports) == 0 {
		_, err := fmt.Fprintln(w, "No serial ports found.")
		return err
	}
	t := newTable("PORT", "TYPE", "PRODUCT", "SERIAL")
	for _, p := range ports {
		kind := "serial"
		if p.IsUSB {
			kind = fmt.Sprintf("USB %s:%s", p.VID, p.PID)
		}
		t.Row(p.Name, kind, p.Product, p.SerialNumber)
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

// StoreListing prints stored dumps, with ages relative to now.
func StoreListing(w io.Writer, entries []store.Listing, now time.Time) error {
	t := newTable("HASH", "TYPE", "SERIAL", "DESCRIPTION", "REPORT", "SAVED")
	for _, e := range entries {
		report := ""
		if e.HasReport {
			report = "yes"
		}
		t.Row(
			store.ShortHash(e.Hash),
			fmt.Sprint(e.BatteryType),
			fmt.Sprint(e.Serial),
			e.Description,
			report,
			humanize.RelTime(e.CreatedAt, now, "ago", "from now"),
		)
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}
