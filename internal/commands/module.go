package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/vitaminmoo/m18-tool/internal/m18"
	"github.com/vitaminmoo/m18-tool/internal/registers"
	"github.com/vitaminmoo/m18-tool/internal/render"
)

// Health reads and prints the health report.
func Health(c *m18.Client, w io.Writer, asJSON bool) (*m18.HealthReport, error) {
	report, err := c.HealthReport()
	if err != nil {
		return nil, fmt.Errorf("failed to build health report: %w", err)
	}
	if asJSON {
		return report, render.HealthJSON(w, report)
	}
	return report, render.HealthReport(w, report)
}

// ReadRegisters reads the given registers, or all of them when ids is
// empty, and prints them in format f.
func ReadRegisters(c *m18.Client, w io.Writer, ids []int, f render.Format, refresh bool) error {
	if len(ids) == 0 {
		ids = make([]int, len(c.Tables().Registers))
		for i := range ids {
			ids[i] = i
		}
	}
	readings, err := c.ReadRegisters(ids, refresh)
	if err != nil {
		return fmt.Errorf("failed to read registers: %w", err)
	}
	if len(readings) == 0 {
		return fmt.Errorf("no registers could be read: %w", m18.ErrNoResponse)
	}
	return render.Registers(w, readings, f, time.Now())
}

// ReadAddress reads and prints the single register starting at addr.
func ReadAddress(c *m18.Client, w io.Writer, addr uint16) error {
	reading, err := c.ReadAddress(addr)
	if err != nil {
		return err
	}
	return render.Registers(w, []registers.Reading{reading}, render.Label, time.Now())
}
